package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	metricsFile       string
	metricsGeneration int

	improvementRun string
)

func init() {
	metricsCmd.Flags().StringVarP(&metricsFile, "file", "f", "", "population file (YAML or JSON)")
	metricsCmd.Flags().IntVar(&metricsGeneration, "generation", -1, "restrict averaging to one generation (-1 = all alive)")
	rootCmd.AddCommand(metricsCmd)

	improvementCmd.Flags().StringVar(&improvementRun, "run", "", "run id to compare")
	rootCmd.AddCommand(improvementCmd)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Average fitness dimensions across the alive population",
	RunE:  runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(metricsFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	var generation *int
	if metricsGeneration >= 0 {
		generation = &metricsGeneration
	}
	return printJSON(client.Metrics(entities, generation))
}

var improvementCmd = &cobra.Command{
	Use:   "improvement",
	Short: "Compare the run's last two persisted metric samples",
	RunE:  runImprovement,
}

func runImprovement(cmd *cobra.Command, args []string) error {
	if improvementRun == "" {
		return fmt.Errorf("run id required (--run)")
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	result, ok, err := client.Improvement(cmd.Context(), improvementRun)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s has fewer than two metric samples", improvementRun)
	}
	return printJSON(result)
}
