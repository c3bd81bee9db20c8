package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/freshstock/freshsim/sim/experiment"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate an experiment config without running it",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		if err := validateConfig(os.Stdout, validateConfigPath); err != nil {
			logrus.Fatalf("Invalid config %s: %v", validateConfigPath, err)
		}
	},
}

// validateConfig runs the same checks as `run` up to harness construction
// and reports the resolved policy and demand model.
func validateConfig(w io.Writer, path string) error {
	cfg, err := experiment.LoadConfig(path)
	if err != nil {
		return err
	}
	h, err := experiment.NewHarness(cfg)
	if err != nil {
		return err
	}
	sc := h.SimConfig()
	_, err = fmt.Fprintf(w, "%s: ok (policy=%s demand=%s horizon=%d warmup=%d shelf_life=%d lead_time=%d)\n",
		path, h.Policy().Name(), cfg.DemandModel.Type, sc.HorizonDays, sc.WarmupDays, sc.ShelfLifeDays, sc.LeadTimeDays)
	return err
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to experiment config (YAML or JSON)")
	_ = validateCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(validateCmd)
}
