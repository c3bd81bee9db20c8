package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/freshstock/freshsim/sim/experiment"
)

var (
	// CLI flags for the run command
	configPath  string // Experiment config file (YAML or JSON); empty uses defaults
	seedList    string // Comma-separated seeds, one episode per seed
	outPath     string // JSONL output path
	parallelism int    // Number of seeds run concurrently
	traceDir    string // Directory for per-seed day traces (disabled when empty)
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "freshsim",
	Short: "Perishable-inventory simulator for replenishment policy evaluation",
}

// runCmd runs one experiment over every seed and writes one record per seed
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an experiment over a list of seeds",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if err := runExperiment(cmd.Context(), configPath, seedList, outPath, parallelism, traceDir); err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		logrus.Info("Experiment complete.")
	},
}

// setLogLevel applies a --log value to the standard logger.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// loadExperimentConfig reads path, or returns the defaults when path is empty.
func loadExperimentConfig(path string) (experiment.Config, error) {
	if path == "" {
		logrus.Infof("No --config given, using defaults")
		return experiment.DefaultConfig(), nil
	}
	return experiment.LoadConfig(path)
}

// runExperiment loads and validates the config, runs every seed and writes
// the records. No output file is written if any seed fails.
func runExperiment(ctx context.Context, cfgPath, seeds, out string, workers int, traces string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadExperimentConfig(cfgPath)
	if err != nil {
		return err
	}
	parsed, err := experiment.ParseSeeds(seeds)
	if err != nil {
		return err
	}

	opts := []experiment.HarnessOption{experiment.WithParallelism(workers)}
	if traces != "" {
		opts = append(opts, experiment.WithTraceDir(traces))
	}
	h, err := experiment.NewHarness(cfg, opts...)
	if err != nil {
		return err
	}

	records, err := h.Run(ctx, parsed)
	if err != nil {
		return err
	}
	if err := experiment.WriteJSONL(out, records); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logrus.Infof("Wrote %d records to %s", len(records), out)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to experiment config (YAML or JSON); defaults are used when empty")
	runCmd.Flags().StringVar(&seedList, "seeds", experiment.DefaultSeeds, "Comma-separated list of seeds")
	runCmd.Flags().StringVar(&outPath, "out", "results/run.jsonl", "Output JSONL path (overwritten)")
	runCmd.Flags().IntVar(&parallelism, "parallel", 1, "Number of seeds run concurrently")
	runCmd.Flags().StringVar(&traceDir, "trace-dir", "", "Write a per-day CSV trace for each seed into this directory")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
