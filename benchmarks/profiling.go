package benchmarks

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

// startProfiling starts the CPU profile right away and returns the function
// that stops it and writes the heap profile.
func startProfiling() (func(), error) {
	var cpuFile *os.File
	if cpuprofile != "" {
		slog.Info("profiling CPU", "path", cpuprofile)
		f, err := os.Create(cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
		cpuFile = f
	}

	return func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if memprofile == "" {
			return
		}
		slog.Info("profiling memory", "path", memprofile)
		f, err := os.Create(memprofile)
		if err != nil {
			slog.Error("could not create memory profile", "err", err)
			return
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			slog.Error("could not write memory profile", "err", err)
		}
	}, nil
}
