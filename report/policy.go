package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeu5/mdp-rl/mdp"
	"github.com/zeu5/mdp-rl/util"
)

// StepLines prints one "%2d: ..." line per iteration
func StepLines[T any](rows [][]T, format func([]T) string) []string {
	lines := make([]string, len(rows))
	for k, row := range rows {
		lines[k] = fmt.Sprintf("%2d: %s", k, format(row))
	}
	return lines
}

// Actions joins action indices with spaces
func Actions(policy []int) string {
	parts := make([]string, len(policy))
	for i, a := range policy {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, " ")
}

// PolicyCSV renders a stationary policy as one-hot rows readable by
// mdp.ReadPolicy.
func PolicyCSV(policy []int, actions int) ([]string, error) {
	stochastic, err := mdp.DeterministicPolicy(policy, actions)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(stochastic))
	for s, row := range stochastic {
		parts := make([]string, len(row))
		for a, p := range row {
			parts[a] = strconv.FormatFloat(p, 'g', -1, 64)
		}
		lines[s] = strings.Join(parts, ",")
	}
	return lines, nil
}

// WritePolicy saves a stationary policy in the stochastic policy file format.
func WritePolicy(path string, policy []int, actions int) error {
	lines, err := PolicyCSV(policy, actions)
	if err != nil {
		return fmt.Errorf("writing policy %s: %w", path, err)
	}
	return util.WriteLines(path, lines...)
}
