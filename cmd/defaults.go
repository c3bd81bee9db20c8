package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/freshstock/freshsim/sim/experiment"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default experiment config as YAML",
	Long:  "Write the configuration applied to every omitted field to stdout. The output is a valid --config file.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeConfigYAML(os.Stdout, experiment.DefaultConfig()); err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
	},
}

func writeConfigYAML(w io.Writer, cfg experiment.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}
