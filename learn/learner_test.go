package learn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/zeu5/mdp-rl/mdp"
	"github.com/zeu5/mdp-rl/sim"
)

func newLearner(method Method, seed uint64) *Learner {
	return New(Config{
		States:       2,
		Actions:      2,
		Discount:     0.9,
		LearningRate: 0.5,
		Method:       method,
	}, rand.New(rand.NewSource(seed)))
}

// step forces action a so the update rules can be checked in isolation
func step(l *Learner, a int, r float64, next int, epsilon float64) {
	l.action = a
	l.Observe(r, next, epsilon)
}

func TestGreedyTieBreak(t *testing.T) {
	l := newLearner(QLearning, 1)
	l.Begin(0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, 0, l.Greedy(0))
	}
	l.q.Set(0, 1, 1)
	l.q.Set(0, 0, 1)
	assert.Equal(t, 0, l.Greedy(0))
}

func TestGreedyExplores(t *testing.T) {
	l := newLearner(QLearning, 2)
	l.Begin(0)
	l.q.Set(0, 0, 10)
	counts := make([]int, 2)
	for i := 0; i < 1000; i++ {
		counts[l.Greedy(1)]++
	}
	assert.Greater(t, counts[0], 0)
	assert.Greater(t, counts[1], 0)
}

func TestQLearningUpdate(t *testing.T) {
	l := newLearner(QLearning, 3)
	l.Begin(0)
	l.q.Set(1, 0, -1)
	l.q.Set(1, 1, 2)

	// bootstraps on max Q(1, .) = 2 even with full exploration
	step(l, 0, 1, 1, 1)
	assert.InDelta(t, 0.5*(1+0.9*2), l.Value(0, 0), 1e-12)
	assert.Equal(t, 1, l.State())
	assert.Equal(t, -1, l.pending)
}

func TestSARSAUpdateIsOnPolicy(t *testing.T) {
	l := newLearner(SARSA, 4)
	for i := 0; i < 50; i++ {
		l.Begin(0)
		l.q.Set(0, 0, 0)
		l.q.Set(1, 0, -1)
		l.q.Set(1, 1, 2)

		step(l, 0, 1, 1, 1)
		next := l.pending
		require.True(t, next == 0 || next == 1)
		assert.InDelta(t, 0.5*(1+0.9*l.Value(1, next)), l.Value(0, 0), 1e-12)
		// the bootstrapped action is the one taken next
		assert.Equal(t, next, l.Greedy(0))
	}
}

func TestSARSAGreedyMatchesQLearning(t *testing.T) {
	l := newLearner(SARSA, 5)
	l.Begin(0)
	l.q.Set(1, 1, 2)
	step(l, 0, 1, 1, 0)
	assert.InDelta(t, 0.5*(1+0.9*2), l.Value(0, 0), 1e-12)
}

func TestMonteCarloLastVisit(t *testing.T) {
	l := newLearner(MonteCarlo, 6)
	l.Begin(0)
	step(l, 0, 0, 0, 0)
	step(l, 0, 0, 1, 0)
	step(l, 1, 0, 1, 0)
	l.EndEpisode(3)

	assert.Equal(t, []float64{3}, l.Returns(0, 0))
	assert.Equal(t, []float64{3}, l.Returns(1, 1))
	assert.Empty(t, l.Returns(0, 1))
	assert.Empty(t, l.Returns(1, 0))
	assert.Equal(t, 3.0, l.Value(0, 0))
	assert.Zero(t, l.trajectory.Len())

	l.Begin(0)
	step(l, 0, 0, 0, 0)
	step(l, 0, 0, 0, 0)
	step(l, 0, 0, 0, 0)
	l.EndEpisode(5)

	assert.Equal(t, []float64{3, 5}, l.Returns(0, 0))
	assert.Equal(t, 4.0, l.Value(0, 0))
	assert.Equal(t, 3.0, l.Value(1, 1))
}

func TestMonteCarloIgnoresOnlineUpdates(t *testing.T) {
	l := newLearner(MonteCarlo, 7)
	l.Begin(0)
	step(l, 0, 10, 1, 0)
	assert.Zero(t, l.Value(0, 0))
	assert.Equal(t, 1, l.trajectory.Len())

	// a new episode drops the unfinished trajectory
	l.Begin(0)
	assert.Zero(t, l.trajectory.Len())
}

func TestSingleStateSingleAction(t *testing.T) {
	for _, method := range Methods {
		l := New(Config{States: 1, Actions: 1, Discount: 0.5, LearningRate: 1, Method: method},
			rand.New(rand.NewSource(8)))
		l.Begin(0)
		for i := 0; i < 3; i++ {
			a := l.Greedy(0.5)
			require.Equal(t, 0, a)
			l.Observe(1, 0, 0.5)
		}
		l.EndEpisode(1.75)
		assert.Equal(t, []int{0}, l.Policy())
		switch method {
		case MonteCarlo:
			assert.Equal(t, 1.75, l.Value(0, 0))
		default:
			// learning rate 1: 1, 1.5, 1.75
			assert.InDelta(t, 1.75, l.Value(0, 0), 1e-12)
		}
	}
}

// action 0 stays, action 1 switches state. Optimal: switch from 0, stay in 1.
func switchModel(t *testing.T) *mdp.MDP {
	model, err := mdp.New(mdp.Tables{
		N: 2,
		M: 2,
		T: [][][]float64{
			{{1, 0}, {0, 1}},
			{{0, 1}, {1, 0}},
		},
		R: [][]float64{
			{0, 1},
			{2, 0},
		},
	}, mdp.DefaultTolerance)
	require.NoError(t, err)
	return model
}

func TestTemporalDifferenceConverges(t *testing.T) {
	cases := []struct {
		method  Method
		epsilon float64
	}{
		{QLearning, 0.3},
		{SARSA, 0.1},
	}
	for _, c := range cases {
		t.Run(c.method.String(), func(t *testing.T) {
			model := switchModel(t)
			rng := rand.New(rand.NewSource(11))
			simulator := sim.New(model, rng)
			l := New(Config{States: 2, Actions: 2, Discount: 0.9, LearningRate: 0.1, Method: c.method}, rng)

			for episode := 0; episode < 3000; episode++ {
				simulator.Reset(0.9, 0)
				l.Begin(0)
				for i := 0; i < 20; i++ {
					a := l.Greedy(c.epsilon)
					r, next := simulator.Act(a)
					l.Observe(r, next, c.epsilon)
				}
				l.EndEpisode(simulator.NetReward())
			}
			assert.Equal(t, []int{1, 0}, l.Policy())
			assert.Greater(t, l.Value(0, 1), l.Value(0, 0))
			assert.Greater(t, l.Value(1, 0), l.Value(1, 1))
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
		assert.True(t, m.Valid())
	}
	m, err := ParseMethod("sarsa")
	require.NoError(t, err)
	assert.Equal(t, SARSA, m)

	_, err = ParseMethod("td-lambda")
	assert.Error(t, err)
	assert.False(t, Method(7).Valid())
}

func TestTrajectory(t *testing.T) {
	tr := NewTrajectory()
	tr.Append(0, 1)
	tr.Append(2, 0)
	tr.Close(4)
	tr.Append(1, 1)

	s, a, ret, ok := tr.Get(1)
	assert.True(t, ok)
	assert.Equal(t, []any{2, 0, 4.0}, []any{s, a, ret})

	_, _, ret, _ = tr.Get(2)
	assert.Zero(t, ret)
	_, _, _, ok = tr.Get(3)
	assert.False(t, ok)

	tr.Reset()
	assert.Zero(t, tr.Len())
}
