package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeu5/mdp-rl/learn"
	"github.com/zeu5/mdp-rl/mdp"
)

// EvaluationConfig describes a parallel evaluation of one stochastic policy.
type EvaluationConfig struct {
	Model    *mdp.MDP
	Policy   mdp.StochasticPolicy
	Runs     int // total episodes, spread over the workers
	Workers  int
	Length   int
	Discount float64
	Initial  int
	Seed     uint64
	Logger   *slog.Logger
}

// EvaluatePolicy builds one task per worker, each with its own model copy
// and seed, and aggregates all returns into a single estimate.
func EvaluatePolicy(ctx context.Context, cfg EvaluationConfig) (Estimate, error) {
	logger := loggerOrDefault(cfg.Logger)
	if cfg.Workers < 1 {
		return Estimate{}, fmt.Errorf("%w: workers=%d, need at least 1", ErrInvalidTask, cfg.Workers)
	}
	if cfg.Runs < 1 {
		return Estimate{}, fmt.Errorf("%w: runs=%d, need at least 1", ErrInvalidTask, cfg.Runs)
	}
	if cfg.Model == nil {
		return Estimate{}, fmt.Errorf("%w: no model", ErrInvalidTask)
	}
	runs := SplitRuns(cfg.Runs, cfg.Workers)
	seeds := Seeds(cfg.Seed, cfg.Workers)
	tasks := make([]EvaluationTask, cfg.Workers)
	for i := range tasks {
		tasks[i] = EvaluationTask{
			Model:    cfg.Model.Clone(),
			Policy:   cfg.Policy,
			Runs:     runs[i],
			Length:   cfg.Length,
			Discount: cfg.Discount,
			Initial:  cfg.Initial,
			Seed:     seeds[i],
		}
		if err := tasks[i].Validate(); err != nil {
			return Estimate{}, err
		}
	}

	start := time.Now()
	logger.Info("evaluating policy", "runs", cfg.Runs, "workers", cfg.Workers, "length", cfg.Length)
	results, err := Map(ctx, cfg.Workers, tasks, func(ctx context.Context, task EvaluationTask) ([]float64, error) {
		logger.Debug("worker started", "runs", task.Runs, "seed", task.Seed)
		workerStart := time.Now()
		returns, err := Evaluate(ctx, task)
		if err == nil {
			logger.Debug("worker done", "seed", task.Seed, "returns", len(returns), "duration", time.Since(workerStart))
		}
		return returns, err
	})
	if err != nil {
		return Estimate{}, err
	}
	estimate := Summarize(Flatten(results))
	logger.Info("policy evaluated", "mean", estimate.Mean, "half_width", estimate.HalfWidth, "duration", time.Since(start))
	return estimate, nil
}

// LearningConfig describes Trials independent learning runs of one method.
type LearningConfig struct {
	Model           *mdp.MDP
	Method          learn.Method
	Epsilon         float64
	Trials          int
	Workers         int // pool size, Trials when zero
	Epochs          int
	Length          int
	Discount        float64
	LearningRate    float64
	Initial         int
	CheckpointEvery int
	Seed            uint64
	Logger          *slog.Logger
}

// LearningCurve trains Trials learners in parallel and aggregates their
// checkpoint returns column-wise into one point per checkpoint epoch.
func LearningCurve(ctx context.Context, cfg LearningConfig) ([]Point, error) {
	logger := loggerOrDefault(cfg.Logger).With("method", cfg.Method.String(), "epsilon", cfg.Epsilon)
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("%w: trials=%d, need at least 1", ErrInvalidTask, cfg.Trials)
	}
	if cfg.Model == nil {
		return nil, fmt.Errorf("%w: no model", ErrInvalidTask)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = cfg.Trials
	}
	seeds := Seeds(cfg.Seed, cfg.Trials)
	tasks := make([]LearningTask, cfg.Trials)
	for i := range tasks {
		tasks[i] = LearningTask{
			Model:           cfg.Model.Clone(),
			Method:          cfg.Method,
			Epochs:          cfg.Epochs,
			Length:          cfg.Length,
			Discount:        cfg.Discount,
			LearningRate:    cfg.LearningRate,
			Epsilon:         cfg.Epsilon,
			Initial:         cfg.Initial,
			CheckpointEvery: cfg.CheckpointEvery,
			Seed:            seeds[i],
		}
		if err := tasks[i].Validate(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	logger.Info("learning", "trials", cfg.Trials, "workers", workers, "epochs", cfg.Epochs)
	results, err := Map(ctx, workers, tasks, func(ctx context.Context, task LearningTask) ([]float64, error) {
		logger.Debug("trial started", "seed", task.Seed)
		trialStart := time.Now()
		checkpoints, err := Learn(ctx, task)
		if err == nil {
			logger.Debug("trial done", "seed", task.Seed, "checkpoints", len(checkpoints), "duration", time.Since(trialStart))
		}
		return checkpoints, err
	})
	if err != nil {
		return nil, err
	}
	points, err := Curve(results, cfg.CheckpointEvery)
	if err != nil {
		return nil, err
	}
	logger.Info("learning done", "checkpoints", len(points), "duration", time.Since(start))
	return points, nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
