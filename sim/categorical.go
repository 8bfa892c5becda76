package sim

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Categorical draws an index from probs by inverting the cumulative
// distribution against one uniform draw. cdf is scratch space of the same
// length as probs. The draw is scaled by the total mass so rows that sum to 1
// only within tolerance never fall off the end.
func Categorical(rng *rand.Rand, probs, cdf []float64) int {
	floats.CumSum(cdf, probs)
	total := cdf[len(cdf)-1]
	u := rng.Float64() * total
	i := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
	if i == len(cdf) {
		// u rounded up to total
		i = len(cdf) - 1
		for i > 0 && probs[i] == 0 {
			i--
		}
	}
	return i
}
