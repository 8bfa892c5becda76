// Package learn implements tabular model-free control: Q-learning, SARSA and
// last-visit Monte-Carlo control over a dense action-value table.
package learn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Config of a Learner. Discount and LearningRate are not checked here,
// out of range values make the table diverge silently.
type Config struct {
	States       int
	Actions      int
	Discount     float64
	LearningRate float64
	Method       Method
}

// Learner owns an n x m action-value table and the state of the episode in
// progress. One Learner per worker, it is not safe for concurrent use.
type Learner struct {
	cfg  Config
	rule updateRule
	rng  *rand.Rand

	q *mat.Dense
	// observed returns per pair, indexed s*m+a, used by MonteCarlo
	returns    [][]float64
	trajectory *Trajectory

	state  int
	action int
	// action already chosen for the current state by a SARSA update, -1 if none
	pending int
}

func New(cfg Config, rng *rand.Rand) *Learner {
	return &Learner{
		cfg:        cfg,
		rule:       cfg.Method.rule(),
		rng:        rng,
		q:          mat.NewDense(cfg.States, cfg.Actions, nil),
		returns:    make([][]float64, cfg.States*cfg.Actions),
		trajectory: NewTrajectory(),
		pending:    -1,
	}
}

// Begin starts an episode in the initial state, discarding any partial trajectory
func (l *Learner) Begin(initial int) {
	l.state = initial
	l.pending = -1
	l.trajectory.Reset()
}

// Greedy picks the action for the current state: the greedy one with
// probability 1-epsilon, a uniformly random one otherwise.
func (l *Learner) Greedy(epsilon float64) int {
	a := l.pending
	if a < 0 {
		a = l.choose(l.state, epsilon)
	}
	l.pending = -1
	l.action = a
	return a
}

// Observe applies the update rule to the transition from the current state
// under the last chosen action, then moves to next.
func (l *Learner) Observe(reward float64, next int, epsilon float64) {
	l.rule.transition(l, l.state, l.action, reward, next, epsilon)
	l.state = next
}

// Move advances to next without learning, for evaluation episodes
func (l *Learner) Move(next int) {
	l.state = next
}

// EndEpisode hands the episode's discounted return to the update rule
func (l *Learner) EndEpisode(netReward float64) {
	l.rule.episodeEnd(l, netReward)
}

func (l *Learner) choose(s int, epsilon float64) int {
	if l.rng.Float64() >= epsilon {
		return l.argmax(s)
	}
	return l.rng.Intn(l.cfg.Actions)
}

// lowest index wins ties
func (l *Learner) argmax(s int) int {
	return floats.MaxIdx(l.q.RawRowView(s))
}

func (l *Learner) temporalDifference(s, a int, target float64) {
	current := l.q.At(s, a)
	l.q.Set(s, a, current+l.cfg.LearningRate*(target-current))
}

// State is the current state of the episode
func (l *Learner) State() int { return l.state }

// Value returns Q(s, a)
func (l *Learner) Value(s, a int) float64 {
	return l.q.At(s, a)
}

// Q returns a copy of the action-value table
func (l *Learner) Q() *mat.Dense {
	return mat.DenseCopyOf(l.q)
}

// Returns lists the return samples recorded for (s, a) by Monte-Carlo updates
func (l *Learner) Returns(s, a int) []float64 {
	return append([]float64(nil), l.returns[s*l.cfg.Actions+a]...)
}

// Policy is the greedy action of every state
func (l *Learner) Policy() []int {
	policy := make([]int, l.cfg.States)
	for s := range policy {
		policy[s] = l.argmax(s)
	}
	return policy
}
