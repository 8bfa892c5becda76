// Package sim steps through episodes of an MDP, sampling transitions and
// accumulating the discounted return.
package sim

import (
	"golang.org/x/exp/rand"

	"github.com/zeu5/mdp-rl/mdp"
)

// Simulator owns the episode state for one model. It is not safe for
// concurrent use, each worker holds its own.
type Simulator struct {
	model *mdp.MDP
	rng   *rand.Rand
	cdf   []float64

	state    int
	discount float64
	// discount^steps
	weight float64
	net    float64
	steps  int
}

// New binds a simulator to a model and a random stream. Reset must be called
// before the first Act.
func New(model *mdp.MDP, rng *rand.Rand) *Simulator {
	return &Simulator{
		model:  model,
		rng:    rng,
		cdf:    make([]float64, model.States()),
		weight: 1,
	}
}

// Reset starts a new episode in initial and returns it.
func (s *Simulator) Reset(discount float64, initial int) int {
	s.state = initial
	s.discount = discount
	s.weight = 1
	s.net = 0
	s.steps = 0
	return initial
}

// Act takes action a in the current state. It returns the immediate reward
// and the sampled next state, which becomes the current state.
func (s *Simulator) Act(a int) (float64, int) {
	reward := s.model.R(s.state, a)
	next := Categorical(s.rng, s.model.Row(s.state, a), s.cdf)

	s.net += s.weight * reward
	s.weight *= s.discount
	s.steps++
	s.state = next
	return reward, next
}

// NetReward is the discounted return accumulated since the last Reset.
func (s *Simulator) NetReward() float64 {
	return s.net
}

// State is the current state
func (s *Simulator) State() int {
	return s.state
}

// Steps taken since the last Reset
func (s *Simulator) Steps() int {
	return s.steps
}
