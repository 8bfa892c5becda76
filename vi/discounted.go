package vi

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/mdp-rl/mdp"
)

var (
	ErrInvalidDiscount = errors.New("discount must lie strictly between 0 and 1")
	ErrInvalidBound    = errors.New("error bound must be positive and finite")
	ErrNotConverged    = errors.New("value iteration did not converge")
)

// maxIterations caps the loop when the threshold sits below the rounding
// noise of the values.
const maxIterations = 10_000_000

// DiscountedSolution is the stationary greedy policy and value function at
// the point the iteration stopped.
type DiscountedSolution struct {
	Policy     []int
	Values     []float64
	Iterations int
	// Threshold is the max-norm change below which the iteration stopped
	Threshold float64
}

// StoppingThreshold returns bound*(1-discount)^2/(2*discount^2). Once two
// successive value functions are closer than this in max-norm, the greedy
// policy is within bound of the optimal return.
//
// Below a discount of 1/3 that threshold no longer keeps the values
// themselves within bound, so it is capped at bound*(1-discount)/discount.
func StoppingThreshold(discount, bound float64) (float64, error) {
	if !(discount > 0 && discount < 1) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidDiscount, discount)
	}
	if !(bound > 0) || math.IsInf(bound, 1) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidBound, bound)
	}
	threshold := bound * (1 - discount) * (1 - discount) / (2 * discount * discount)
	threshold = math.Min(threshold, bound*(1-discount)/discount)
	if !(threshold > 0) {
		return 0, fmt.Errorf("%w: bound %v with discount %v leaves no representable threshold", ErrInvalidBound, bound, discount)
	}
	return threshold, nil
}

// SolveDiscounted iterates discounted Bellman backups from V = 0 until the
// max-norm change drops below StoppingThreshold(discount, bound).
func SolveDiscounted(model *mdp.MDP, discount, bound float64) (*DiscountedSolution, error) {
	threshold, err := StoppingThreshold(discount, bound)
	if err != nil {
		return nil, err
	}
	n := model.States()
	v := make([]float64, n)
	next := make([]float64, n)
	policy := make([]int, n)
	q := make([]float64, model.Actions())

	iterations := 0
	for {
		backup(model, v, discount, q, next, policy)
		iterations++
		delta := floats.Distance(next, v, math.Inf(1))
		v, next = next, v
		if delta < threshold {
			break
		}
		if iterations >= maxIterations {
			return nil, fmt.Errorf("%w after %d iterations: change %g, threshold %g", ErrNotConverged, iterations, delta, threshold)
		}
	}
	return &DiscountedSolution{
		Policy:     policy,
		Values:     v,
		Iterations: iterations,
		Threshold:  threshold,
	}, nil
}
