package benchmarks

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zeu5/mdp-rl/mdp"
)

// loadModel reads and validates the model named by --input
func loadModel(cmd *cobra.Command) (*mdp.MDP, error) {
	f, err := openInput(cmd)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	model, err := mdp.Read(f, tolerance)
	if err != nil {
		return nil, err
	}
	slog.Debug("model loaded", "input", inputFile, "states", model.States(), "actions", model.Actions())
	return model, nil
}

func ValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check an MDP file and print every problem found",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintln(out, model)
			}
			fmt.Fprintf(out, "valid: %d states, %d actions\n", model.States(), model.Actions())
			return nil
		},
	}
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
