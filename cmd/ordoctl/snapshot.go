package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	snapshotFile       string
	snapshotRun        string
	snapshotPeriodDays int
)

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotFile, "file", "f", "", "population file (YAML or JSON)")
	snapshotCmd.Flags().StringVar(&snapshotRun, "run", "", "run id the snapshot chain belongs to")
	snapshotCmd.Flags().IntVar(&snapshotPeriodDays, "period-days", 1, "lookback window for birth and death counts")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record a population tick: snapshot, generational metrics, novel behaviors",
	Long: `Snapshot appends one observation to the run's snapshot chain. Birth and
death counts cover the lookback window and are zero on the first snapshot of
a run. Generational metrics and newly observed novel behaviors are persisted
alongside the snapshot.`,
	RunE: runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if snapshotRun == "" {
		return fmt.Errorf("run id required (--run)")
	}
	entities, err := loadPopulation(snapshotFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Tick(cmd.Context(), snapshotRun, entities, snapshotPeriodDays)
	if err != nil {
		return err
	}
	return printJSON(result)
}
