package benchmarks

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeu5/mdp-rl/learn"
)

// Variant is one learning curve: a method with a fixed exploration rate
type Variant struct {
	Method  learn.Method `yaml:"method"`
	Epsilon float64      `yaml:"epsilon"`
	Name    string       `yaml:"name,omitempty"`
}

func (v Variant) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("%.2f-greedy %s", v.Epsilon, v.Method)
}

// ExperimentFile lists the variants compared by the learn command. Zero
// valued fields keep the value given on the command line.
type ExperimentFile struct {
	Variants        []Variant `yaml:"variants"`
	Discount        float64   `yaml:"discount,omitempty"`
	LearningRate    float64   `yaml:"lrate,omitempty"`
	Epochs          int       `yaml:"epochs,omitempty"`
	Episode         int       `yaml:"episode,omitempty"`
	Trials          int       `yaml:"trials,omitempty"`
	CheckpointEvery int       `yaml:"every,omitempty"`
}

// DefaultVariants compares every method at a high and a low exploration rate
func DefaultVariants() []Variant {
	variants := make([]Variant, 0, 2*len(learn.Methods))
	for _, epsilon := range []float64{0.30, 0.05} {
		for _, m := range learn.Methods {
			variants = append(variants, Variant{Method: m, Epsilon: epsilon})
		}
	}
	return variants
}

func ParseExperiment(data []byte) (*ExperimentFile, error) {
	exp := &ExperimentFile{}
	if err := yaml.Unmarshal(data, exp); err != nil {
		return nil, fmt.Errorf("parsing experiment file: %w", err)
	}
	if len(exp.Variants) == 0 {
		exp.Variants = DefaultVariants()
	}
	return exp, nil
}

func LoadExperiment(path string) (*ExperimentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseExperiment(data)
}
