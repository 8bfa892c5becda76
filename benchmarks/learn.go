package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/zeu5/mdp-rl/harness"
	"github.com/zeu5/mdp-rl/report"
	"github.com/zeu5/mdp-rl/util"
)

func LearnCommand() *cobra.Command {
	var plotFile string
	var csvFile string
	var configFile string
	var summaryFile string
	var initial int
	var discount float64
	var episode int
	var epochs int
	var lrate float64
	var threads int
	var workers int
	var every int

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Compare learning curves of Q-learning, SARSA and Monte-Carlo control",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(cmd)
			if err != nil {
				return err
			}

			exp := &ExperimentFile{Variants: DefaultVariants()}
			if configFile != "" {
				exp, err = LoadExperiment(configFile)
				if err != nil {
					return err
				}
			}
			override(&discount, exp.Discount)
			override(&lrate, exp.LearningRate)
			override(&epochs, exp.Epochs)
			override(&episode, exp.Episode)
			override(&threads, exp.Trials)
			override(&every, exp.CheckpointEvery)

			series := make([]report.Series, 0, len(exp.Variants))
			for i, variant := range exp.Variants {
				points, err := harness.LearningCurve(context.Background(), harness.LearningConfig{
					Model:           model,
					Method:          variant.Method,
					Epsilon:         variant.Epsilon,
					Trials:          threads,
					Workers:         workers,
					Epochs:          epochs,
					Length:          episode,
					Discount:        discount,
					LearningRate:    lrate,
					Initial:         initial,
					CheckpointEvery: every,
					// each variant gets its own family of streams
					Seed:   seed + uint64(i),
					Logger: slog.Default().With("variant", variant.Label()),
				})
				if err != nil {
					return fmt.Errorf("%s: %w", variant.Label(), err)
				}
				series = append(series, report.Series{Name: variant.Label(), Points: points})

				last := points[len(points)-1]
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s epoch %5d: %f +- %f\n", variant.Label(), last.Epoch, last.Mean, last.HalfWidth)
				if summaryFile != "" {
					line := fmt.Sprintf("%s,%d,%g,%g,%d", variant.Label(), last.Epoch, last.Mean, last.HalfWidth, last.Count)
					if err := util.AppendLines(summaryFile, line); err != nil {
						return err
					}
				}
			}

			if csvFile != "" {
				f, err := os.Create(csvFile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteCurvesCSV(f, series); err != nil {
					return err
				}
			}
			if plotFile != "" {
				return report.PlotCurves(plotFile, series)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&plotFile, "plot", "p", "", "Plot output file name (.png, .svg, .pdf)")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the learning curves as CSV")
	cmd.Flags().StringVar(&summaryFile, "summary", "", "Append the final estimate of every variant to this file")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML experiment file listing the method variants")
	cmd.Flags().IntVarP(&initial, "initial", "o", 0, "The initial state")
	cmd.Flags().Float64VarP(&discount, "discount", "d", 0.9, "The discount value")
	cmd.Flags().IntVarP(&episode, "episode", "e", 20, "Episode length")
	cmd.Flags().IntVarP(&epochs, "epochs", "s", 100, "Number of learning epochs (number of episodes)")
	cmd.Flags().Float64VarP(&lrate, "lrate", "l", 0.01, "The learning rate")
	cmd.Flags().IntVarP(&threads, "threads", "t", 100, "Number of independent learning trials per variant")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of trials running at once")
	cmd.Flags().IntVar(&every, "every", 10, "Evaluate the greedy policy every this many epochs")
	return cmd
}

func override[T int | float64](dst *T, value T) {
	if value != 0 {
		*dst = value
	}
}
