package learn

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// updateRule is implemented by the three methods only.
type updateRule interface {
	// transition is called after every step (s, a) -> (r, sn)
	transition(l *Learner, s, a int, r float64, sn int, epsilon float64)
	// episodeEnd is called once with the episode's discounted return
	episodeEnd(l *Learner, netReward float64)
}

type qLearning struct{}

func (qLearning) transition(l *Learner, s, a int, r float64, sn int, _ float64) {
	l.temporalDifference(s, a, r+l.cfg.Discount*floats.Max(l.q.RawRowView(sn)))
}

func (qLearning) episodeEnd(*Learner, float64) {}

type sarsa struct{}

// the sampled next action is the one Greedy returns next, keeping the update on-policy
func (sarsa) transition(l *Learner, s, a int, r float64, sn int, epsilon float64) {
	next := l.choose(sn, epsilon)
	l.pending = next
	l.temporalDifference(s, a, r+l.cfg.Discount*l.q.At(sn, next))
}

func (sarsa) episodeEnd(*Learner, float64) {}

type monteCarlo struct{}

func (monteCarlo) transition(l *Learner, s, a int, _ float64, _ int, _ float64) {
	l.trajectory.Append(s, a)
}

// Each pair seen in the episode gets one return sample. Walking backwards,
// only the first occurrence counts, which is the chronologically last visit.
func (monteCarlo) episodeEnd(l *Learner, netReward float64) {
	l.trajectory.Close(netReward)
	seen := make(map[int]bool)
	for i := l.trajectory.Len() - 1; i >= 0; i-- {
		s, a, ret, _ := l.trajectory.Get(i)
		key := s*l.cfg.Actions + a
		if seen[key] {
			continue
		}
		seen[key] = true
		l.returns[key] = append(l.returns[key], ret)
		l.q.Set(s, a, stat.Mean(l.returns[key], nil))
	}
	l.trajectory.Reset()
}
