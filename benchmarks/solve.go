package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeu5/mdp-rl/report"
	"github.com/zeu5/mdp-rl/vi"
)

func FiniteCommand() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "finite",
		Short: "Non-stationary optimal policy over a finite horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(cmd)
			if err != nil {
				return err
			}
			solution, err := vi.SolveFinite(model, horizon)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintln(out, model)
			}
			fmt.Fprintln(out, "Non-Stationary Value Function:")
			printLines(out, report.StepLines(solution.History, model.FormatRow))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Solution:")
			printLines(out, report.StepLines(solution.Policy, report.Actions))
			return nil
		},
	}
	cmd.Flags().IntVarP(&horizon, "horizon", "t", 10, "Time horizon")
	return cmd
}

func DiscountedCommand() *cobra.Command {
	var discount float64
	var bound float64
	var policyOut string

	cmd := &cobra.Command{
		Use:   "discounted",
		Short: "Stationary policy within a bound of the optimal discounted return",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(cmd)
			if err != nil {
				return err
			}
			solution, err := vi.SolveDiscounted(model, discount, bound)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintln(out, model)
				fmt.Fprintf(out, "Converged after %d iterations (threshold %g)\n\n", solution.Iterations, solution.Threshold)
			}
			fmt.Fprintln(out, "Value Function:")
			fmt.Fprintln(out, model.FormatRow(solution.Values))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Policy:")
			fmt.Fprintln(out, report.Actions(solution.Policy))

			if policyOut != "" {
				return report.WritePolicy(policyOut, solution.Policy, model.Actions())
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&discount, "discount", "d", 0.9, "Discount factor, strictly between 0 and 1")
	cmd.Flags().Float64VarP(&bound, "bound", "b", 0.01, "Bound on the distance from the optimal return")
	cmd.Flags().StringVarP(&policyOut, "policy-out", "o", "", "Save the policy in the stochastic policy format")
	return cmd
}
