package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zeu5/mdp-rl/benchmarks"
	"github.com/zeu5/mdp-rl/mdp"
)

// main entry point to all the commands
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := benchmarks.Execute(rootCommand); err != nil {
		var verr *mdp.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, "Error Reading File.")
			for _, d := range verr.Diagnostics {
				fmt.Fprintln(os.Stderr, d)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
