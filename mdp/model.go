package mdp

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTolerance is the probability-sum tolerance used by the commands
// unless overridden.
const DefaultTolerance = 0.001

// Tables are the raw, unchecked contents of an MDP as read from input.
// T is indexed by action, source state and destination state, R by state and action.
type Tables struct {
	N int
	M int
	T [][][]float64
	R [][]float64
}

// Validate checks every structural invariant and returns one diagnostic per
// violation. An empty result means the tables describe a valid MDP.
func (t Tables) Validate(tolerance float64) []string {
	diags := make([]string, 0)
	if t.N <= 0 {
		diags = append(diags, fmt.Sprintf("state count %d is not positive", t.N))
	}
	if t.M <= 0 {
		diags = append(diags, fmt.Sprintf("action count %d is not positive", t.M))
	}

	if len(t.T) != t.M {
		diags = append(diags, fmt.Sprintf("table 'T' with length %d, not %d", len(t.T), t.M))
	}
	for a, action := range t.T {
		if len(action) != t.N {
			diags = append(diags, fmt.Sprintf("action %d with length %d, not %d", a, len(action), t.N))
		}
		for s, row := range action {
			if len(row) != t.N {
				diags = append(diags, fmt.Sprintf("action %d, state %d with length %d, not %d", a, s, len(row), t.N))
			}
			if diag := rowProblem(row, tolerance); diag != "" {
				diags = append(diags, fmt.Sprintf("action %d, state %d: %s", a, s, diag))
			}
		}
	}

	if len(t.R) != t.N {
		diags = append(diags, fmt.Sprintf("table 'R' with length %d, not %d", len(t.R), t.N))
	}
	for s, row := range t.R {
		if len(row) != t.M {
			diags = append(diags, fmt.Sprintf("state %d with reward length %d, not %d", s, len(row), t.M))
		}
		for a, r := range row {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				diags = append(diags, fmt.Sprintf("state %d, action %d: reward %f is not finite", s, a, r))
			}
		}
	}
	return diags
}

// rowProblem describes everything wrong with one transition row in a single
// message, or returns "" for a valid row.
func rowProblem(row []float64, tolerance float64) string {
	sum := 0.0
	outside := make([]string, 0)
	for sn, p := range row {
		if p < 0 || p > 1 {
			outside = append(outside, fmt.Sprintf("next state %d (%f)", sn, p))
		}
		sum += p
	}
	// written so that a NaN sum is rejected
	badSum := !(math.Abs(sum-1.0) <= tolerance)
	if !badSum && len(outside) == 0 {
		return ""
	}
	msg := fmt.Sprintf("probabilities sum to %f", sum)
	if badSum {
		msg += fmt.Sprintf(", not 1 (tolerance %g)", tolerance)
	}
	if len(outside) > 0 {
		msg += "; outside [0, 1]: " + strings.Join(outside, ", ")
	}
	return msg
}

// ValidationError carries the complete list of violated invariants.
type ValidationError struct {
	Diagnostics []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid MDP (%d problems): %s", len(e.Diagnostics), strings.Join(e.Diagnostics, "; "))
}

// MDP is a validated, read-only finite Markov decision process.
type MDP struct {
	n         int
	m         int
	t         [][][]float64
	r         [][]float64
	tolerance float64
}

// New validates the tables and returns the model, or a *ValidationError with
// all diagnostics.
func New(tables Tables, tolerance float64) (*MDP, error) {
	if diags := tables.Validate(tolerance); len(diags) > 0 {
		return nil, &ValidationError{Diagnostics: diags}
	}
	t := tables.clone()
	return &MDP{
		n:         t.N,
		m:         t.M,
		t:         t.T,
		r:         t.R,
		tolerance: tolerance,
	}, nil
}

// States returns the number of states n
func (m *MDP) States() int { return m.n }

// Actions returns the number of actions m
func (m *MDP) Actions() int { return m.m }

// Tolerance the model was validated with
func (m *MDP) Tolerance() float64 { return m.tolerance }

// T returns the probability of moving from s to sn under a.
// Indices are not checked; callers guarantee they are in range.
func (m *MDP) T(s, a, sn int) float64 {
	return m.t[a][s][sn]
}

// R returns the reward for taking a in s. Indices are not checked.
func (m *MDP) R(s, a int) float64 {
	return m.r[s][a]
}

// Row returns the transition distribution over next states for (s, a).
// The slice is shared with the model and must not be modified.
func (m *MDP) Row(s, a int) []float64 {
	return m.t[a][s]
}

// Transition is the checked form of T, ok is false when any index is out of range.
func (m *MDP) Transition(s, a, sn int) (float64, bool) {
	if !m.validState(s) || !m.validAction(a) || !m.validState(sn) {
		return 0, false
	}
	return m.t[a][s][sn], true
}

// Reward is the checked form of R.
func (m *MDP) Reward(s, a int) (float64, bool) {
	if !m.validState(s) || !m.validAction(a) {
		return 0, false
	}
	return m.r[s][a], true
}

func (m *MDP) validState(s int) bool  { return s >= 0 && s < m.n }
func (m *MDP) validAction(a int) bool { return a >= 0 && a < m.m }

// Tables returns a deep copy of the model contents.
func (m *MDP) Tables() Tables {
	return Tables{N: m.n, M: m.m, T: m.t, R: m.r}.clone()
}

func (t Tables) clone() Tables {
	tt := make([][][]float64, len(t.T))
	for a := range t.T {
		tt[a] = make([][]float64, len(t.T[a]))
		for s := range t.T[a] {
			tt[a][s] = append([]float64(nil), t.T[a][s]...)
		}
	}
	r := make([][]float64, len(t.R))
	for s := range t.R {
		r[s] = append([]float64(nil), t.R[s]...)
	}
	return Tables{N: t.N, M: t.M, T: tt, R: r}
}

// Clone returns an independent copy of the model, one per worker.
func (m *MDP) Clone() *MDP {
	t := m.Tables()
	return &MDP{n: t.N, m: t.M, t: t.T, r: t.R, tolerance: m.tolerance}
}

// decimals derived from the tolerance, 0.001 prints three digits
func (m *MDP) decimals() int {
	if m.tolerance <= 0 || m.tolerance >= 1 {
		return 3
	}
	return int(math.Round(math.Log10(1 / m.tolerance)))
}

// FormatRow renders values with the model's print precision.
func (m *MDP) FormatRow(values []float64) string {
	dec := m.decimals()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%*.*f", dec+3, dec, v)
	}
	return strings.Join(parts, " ")
}

func (m *MDP) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of States (n): %d\n", m.n)
	fmt.Fprintf(&b, "Number of Actions (m): %d\n\n", m.m)
	for a, table := range m.t {
		fmt.Fprintf(&b, "Action %d:\n", a)
		for _, row := range table {
			b.WriteString(m.FormatRow(row))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Rewards:\n")
	for _, row := range m.r {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = fmt.Sprintf("%f", v)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return b.String()
}
