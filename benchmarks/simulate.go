package benchmarks

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeu5/mdp-rl/harness"
	"github.com/zeu5/mdp-rl/mdp"
)

func SimulateCommand() *cobra.Command {
	var policyFile string
	var runs int
	var threads int
	var length int
	var discount float64
	var initial int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate the discounted return of a stochastic policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(cmd)
			if err != nil {
				return err
			}
			policy, err := loadPolicy(policyFile)
			if err != nil {
				return err
			}
			if diags := policy.Validate(model.States(), model.Actions(), tolerance); len(diags) > 0 {
				return &mdp.ValidationError{Diagnostics: diags}
			}

			estimate, err := harness.EvaluatePolicy(context.Background(), harness.EvaluationConfig{
				Model:    model,
				Policy:   policy,
				Runs:     runs,
				Workers:  threads,
				Length:   length,
				Discount: discount,
				Initial:  initial,
				Seed:     seed,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), estimate.Mean, estimate.HalfWidth)
			return nil
		},
	}
	cmd.Flags().StringVarP(&policyFile, "policy", "p", "", "Policy file to simulate")
	cmd.Flags().IntVarP(&runs, "runs", "r", 10000, "Number of statistical runs")
	cmd.Flags().IntVarP(&threads, "threads", "t", 10, "Number of parallel workers")
	cmd.Flags().IntVarP(&length, "length", "l", 100, "Episode length")
	cmd.Flags().Float64VarP(&discount, "discount", "d", 0.9, "The discount value")
	cmd.Flags().IntVarP(&initial, "initial", "s", 0, "The initial state")
	cmd.MarkFlagRequired("policy")
	return cmd
}

func loadPolicy(path string) (mdp.StochasticPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mdp.ReadPolicy(f)
}
