// Package vi computes optimal values and policies of a finite MDP by value
// iteration, over a finite horizon or discounted over an infinite one.
package vi

import (
	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/mdp-rl/mdp"
)

// backup performs one Bellman-optimal backup of v into next, writing the
// greedy action of every state into policy. q is scratch space of length m.
// Ties go to the lowest action index.
func backup(model *mdp.MDP, v []float64, discount float64, q, next []float64, policy []int) {
	n, m := model.States(), model.Actions()
	for s := 0; s < n; s++ {
		for a := 0; a < m; a++ {
			expected := floats.Dot(model.Row(s, a), v)
			q[a] = model.R(s, a) + discount*expected
		}
		best := floats.MaxIdx(q)
		policy[s] = best
		next[s] = q[best]
	}
}
