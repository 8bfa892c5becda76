package mdp

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// StochasticPolicy holds per-state action probabilities, n rows of m entries.
type StochasticPolicy [][]float64

// DeterministicPolicy lifts a stationary policy (one action per state) into
// one-hot probability rows over m actions.
func DeterministicPolicy(actions []int, m int) (StochasticPolicy, error) {
	policy := make(StochasticPolicy, len(actions))
	for s, a := range actions {
		if a < 0 || a >= m {
			return nil, fmt.Errorf("state %d: action %d out of range [0, %d)", s, a, m)
		}
		policy[s] = make([]float64, m)
		policy[s][a] = 1
	}
	return policy, nil
}

// Validate checks the policy against a model of n states and m actions.
func (p StochasticPolicy) Validate(n, m int, tolerance float64) []string {
	diags := make([]string, 0)
	if len(p) != n {
		diags = append(diags, fmt.Sprintf("policy with %d rows, not %d", len(p), n))
	}
	for s, row := range p {
		if len(row) != m {
			diags = append(diags, fmt.Sprintf("policy state %d with length %d, not %d", s, len(row), m))
		}
		sum := 0.0
		for a, prob := range row {
			if prob < 0 || prob > 1 {
				diags = append(diags, fmt.Sprintf("policy state %d, action %d: probability %f outside [0, 1]", s, a, prob))
			}
			sum += prob
		}
		if !(math.Abs(sum-1.0) <= tolerance) {
			diags = append(diags, fmt.Sprintf("policy state %d: probabilities sum to %f, not 1 (tolerance %g)", s, sum, tolerance))
		}
	}
	return diags
}

// ReadPolicy reads comma separated probability rows, one per state.
func ReadPolicy(r io.Reader) (StochasticPolicy, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading policy: %w", err)
	}
	policy := make(StochasticPolicy, 0, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("policy row %d, entry %d: %w", i, j, err)
			}
			row[j] = v
		}
		policy = append(policy, row)
	}
	return policy, nil
}
