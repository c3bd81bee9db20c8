package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/freshstock/freshsim/sim/experiment"
)

var summarizeInPath string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Aggregate a results file across seeds",
	Long:  "Read a JSONL results file written by `run` and print per-metric mean, std dev, min, max, p50 and p95 across seeds as JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		if err := summarizeResults(os.Stdout, summarizeInPath); err != nil {
			logrus.Fatalf("Summarize failed: %v", err)
		}
	},
}

// summarizeResults prints the cross-seed summary of the records in path.
func summarizeResults(w io.Writer, path string) error {
	records, err := experiment.ReadJSONL(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no records", path)
	}
	summary := experiment.Aggregate(records)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if _, err := fmt.Fprintln(w, "=== Experiment Summary ==="); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeInPath, "in", "results/run.jsonl", "Path to a JSONL results file")

	rootCmd.AddCommand(summarizeCmd)
}
