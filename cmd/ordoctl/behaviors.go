package main

import (
	"github.com/spf13/cobra"
)

var (
	behaviorsFile string
	behaviorsRun  string
)

func init() {
	behaviorsCmd.Flags().StringVarP(&behaviorsFile, "file", "f", "", "population file (YAML or JSON)")
	behaviorsCmd.Flags().StringVar(&behaviorsRun, "run", "", "run id whose behavior registry to compare against")
	rootCmd.AddCommand(behaviorsCmd)
}

var behaviorsCmd = &cobra.Command{
	Use:   "behaviors",
	Short: "Preview novel behaviors without recording them",
	Long: `Behaviors lists the strategies the population exhibits that the run's
registry has not seen yet, with discoverer and adoption rate. Nothing is
persisted; the snapshot command records behaviors as part of a tick.`,
	RunE: runBehaviors,
}

func runBehaviors(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(behaviorsFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	behaviors, err := client.NovelBehaviors(cmd.Context(), behaviorsRun, entities)
	if err != nil {
		return err
	}
	return printJSON(behaviors)
}
