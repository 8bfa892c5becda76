package benchmarks

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/mdp-rl/mdp"
)

var (
	inputFile  string
	tolerance  float64
	seed       uint64
	verbose    bool
	cpuprofile string
	memprofile string

	stopProfiling func()
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "mdp-rl",
		Short:         "Solve, learn and evaluate policies of finite MDPs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd)
			stop, err := startProfiling()
			if err != nil {
				return err
			}
			stopProfiling = stop
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			finishProfiling()
		},
	}
	rootCommand.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Input MDP file name")
	rootCommand.PersistentFlags().Float64Var(&tolerance, "tolerance", mdp.DefaultTolerance, "Tolerance on transition probability row sums")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Base seed the per-worker random streams derive from")
	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile to this file")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a heap profile to this file on exit")
	// adding the subcommands here
	rootCommand.AddCommand(ValidateCommand())
	rootCommand.AddCommand(FiniteCommand())
	rootCommand.AddCommand(DiscountedCommand())
	rootCommand.AddCommand(SimulateCommand())
	rootCommand.AddCommand(LearnCommand())
	return rootCommand
}

// Execute runs the command tree. Profiles are flushed even when the
// command fails, cobra skips the post-run hooks in that case.
func Execute(cmd *cobra.Command) error {
	defer finishProfiling()
	return cmd.Execute()
}

func finishProfiling() {
	if stopProfiling != nil {
		stopProfiling()
		stopProfiling = nil
	}
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

func openInput(cmd *cobra.Command) (io.ReadCloser, error) {
	if inputFile == "" || inputFile == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(inputFile)
}
