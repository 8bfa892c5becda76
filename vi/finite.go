package vi

import (
	"fmt"

	"github.com/zeu5/mdp-rl/mdp"
)

// FiniteSolution is the non-stationary optimum of a finite-horizon problem.
type FiniteSolution struct {
	// Policy[k][s] is the action chosen in state s at iteration k,
	// the decision with k steps to go is Policy[k-1].
	Policy [][]int
	// History[k] is the value function after iteration k
	History [][]float64
	// Values is the last value function, all zeros when the horizon is 0
	Values []float64
}

// SolveFinite runs undiscounted backward induction for exactly horizon
// iterations.
func SolveFinite(model *mdp.MDP, horizon int) (*FiniteSolution, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("horizon %d is negative", horizon)
	}
	n := model.States()
	solution := &FiniteSolution{
		Policy:  make([][]int, 0, horizon),
		History: make([][]float64, 0, horizon),
		Values:  make([]float64, n),
	}
	q := make([]float64, model.Actions())
	v := solution.Values
	for k := 0; k < horizon; k++ {
		next := make([]float64, n)
		policy := make([]int, n)
		backup(model, v, 1, q, next, policy)
		solution.Policy = append(solution.Policy, policy)
		solution.History = append(solution.History, next)
		v = next
	}
	solution.Values = v
	return solution, nil
}
