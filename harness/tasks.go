package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zeu5/mdp-rl/learn"
	"github.com/zeu5/mdp-rl/mdp"
)

// ErrInvalidTask wraps every parameter problem found before a trial starts.
var ErrInvalidTask = errors.New("invalid task")

var taskValidate *validator.Validate

func init() {
	taskValidate = validator.New()
	_ = taskValidate.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		m, ok := fl.Field().Interface().(learn.Method)
		return ok && m.Valid()
	})
}

// EvaluationTask simulates Runs episodes of a fixed stochastic policy.
type EvaluationTask struct {
	Model    *mdp.MDP             `validate:"required"`
	Policy   mdp.StochasticPolicy `validate:"required"`
	Runs     int                  `validate:"gte=0"`
	Length   int                  `validate:"gte=1"`
	Discount float64              `validate:"gt=0,lte=1"`
	Initial  int                  `validate:"gte=0"`
	Seed     uint64
}

// Validate checks the parameters and the policy against the model.
func (t EvaluationTask) Validate() error {
	if err := structErrors(t); err != nil {
		return err
	}
	problems := make([]string, 0)
	if t.Initial >= t.Model.States() {
		problems = append(problems, fmt.Sprintf("initial state %d out of range [0, %d)", t.Initial, t.Model.States()))
	}
	problems = append(problems, t.Policy.Validate(t.Model.States(), t.Model.Actions(), t.Model.Tolerance())...)
	return invalid(problems)
}

// LearningTask trains one learner for Epochs episodes and evaluates it
// greedily every CheckpointEvery epochs, starting with epoch 0.
type LearningTask struct {
	Model           *mdp.MDP     `validate:"required"`
	Method          learn.Method `validate:"method"`
	Epochs          int          `validate:"gte=1"`
	Length          int          `validate:"gte=1"`
	Discount        float64      `validate:"gt=0,lt=1"`
	LearningRate    float64      `validate:"gt=0,lte=1"`
	Epsilon         float64      `validate:"gte=0,lte=1"`
	Initial         int          `validate:"gte=0"`
	CheckpointEvery int          `validate:"gte=1"`
	Seed            uint64
}

func (t LearningTask) Validate() error {
	if err := structErrors(t); err != nil {
		return err
	}
	if t.Initial >= t.Model.States() {
		return invalid([]string{fmt.Sprintf("initial state %d out of range [0, %d)", t.Initial, t.Model.States())})
	}
	return nil
}

// Checkpoints is the number of evaluation points one task produces
func (t LearningTask) Checkpoints() int {
	return (t.Epochs + t.CheckpointEvery - 1) / t.CheckpointEvery
}

func structErrors(task interface{}) error {
	err := taskValidate.Struct(task)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s=%v fails %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s=%v fails %s", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return invalid(problems)
}

func invalid(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTask, strings.Join(problems, "; "))
}
