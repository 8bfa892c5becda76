package harness

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/zeu5/mdp-rl/learn"
	"github.com/zeu5/mdp-rl/sim"
)

// Evaluate simulates the task's episodes and returns one discounted return
// per run. The task owns its model and random stream for its lifetime.
func Evaluate(ctx context.Context, task EvaluationTask) ([]float64, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(task.Seed))
	simulator := sim.New(task.Model, rng)
	cdf := make([]float64, task.Model.Actions())

	returns := make([]float64, 0, task.Runs)
	for run := 0; run < task.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := simulator.Reset(task.Discount, task.Initial)
		for i := 0; i < task.Length; i++ {
			a := sim.Categorical(rng, task.Policy[s], cdf)
			_, s = simulator.Act(a)
		}
		returns = append(returns, simulator.NetReward())
	}
	return returns, nil
}

// Learn trains a fresh learner and returns the greedy return measured at
// every checkpoint epoch, in epoch order.
func Learn(ctx context.Context, task LearningTask) ([]float64, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(task.Seed))
	simulator := sim.New(task.Model, rng)
	learner := learn.New(learn.Config{
		States:       task.Model.States(),
		Actions:      task.Model.Actions(),
		Discount:     task.Discount,
		LearningRate: task.LearningRate,
		Method:       task.Method,
	}, rng)

	checkpoints := make([]float64, 0, task.Checkpoints())
	for epoch := 0; epoch < task.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		simulator.Reset(task.Discount, task.Initial)
		learner.Begin(task.Initial)
		for i := 0; i < task.Length; i++ {
			a := learner.Greedy(task.Epsilon)
			r, next := simulator.Act(a)
			learner.Observe(r, next, task.Epsilon)
		}
		learner.EndEpisode(simulator.NetReward())

		if epoch%task.CheckpointEvery == 0 {
			simulator.Reset(task.Discount, task.Initial)
			learner.Begin(task.Initial)
			for i := 0; i < task.Length; i++ {
				_, next := simulator.Act(learner.Greedy(0))
				learner.Move(next)
			}
			checkpoints = append(checkpoints, simulator.NetReward())
		}
	}
	return checkpoints, nil
}
