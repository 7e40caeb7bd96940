package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "calorietracker",
		Short: "Calorie tracker backend and health calculators",
		Long: `calorietracker serves the calorie-tracking API (calculators, auth and
dashboard) and exposes the same calculators on the command line.

Example:
  calorietracker calc bmi --age 30 --gender female --height 175 --weight 70`,
		SilenceUsage: true,
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "Path to the YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newCalcCmd(),
	)
	return root
}
