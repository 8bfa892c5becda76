package learn

import (
	"fmt"
	"strings"
)

// Method selects the update rule a Learner applies.
type Method int

const (
	// QLearning bootstraps on the greedy value of the next state
	QLearning Method = iota
	// SARSA bootstraps on the action the epsilon-greedy policy picks next
	SARSA
	// MonteCarlo averages observed episode returns
	MonteCarlo
)

// Methods lists every method in declaration order
var Methods = []Method{QLearning, SARSA, MonteCarlo}

func (m Method) String() string {
	switch m {
	case QLearning:
		return "Q"
	case SARSA:
		return "SARSA"
	case MonteCarlo:
		return "MC"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the short names printed by String, case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "Q", "Q-LEARNING", "QLEARNING":
		return QLearning, nil
	case "SARSA":
		return SARSA, nil
	case "MC", "MONTE-CARLO", "MONTECARLO":
		return MonteCarlo, nil
	}
	return 0, fmt.Errorf("unknown learning method %q", name)
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Valid reports whether m is one of the declared methods
func (m Method) Valid() bool {
	return m >= QLearning && m <= MonteCarlo
}

func (m Method) rule() updateRule {
	switch m {
	case SARSA:
		return sarsa{}
	case MonteCarlo:
		return monteCarlo{}
	default:
		return qLearning{}
	}
}
