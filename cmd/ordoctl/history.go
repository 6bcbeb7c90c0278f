package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyRun string
	exportRun  string
)

func init() {
	historyCmd.Flags().StringVar(&historyRun, "run", "", "run id to inspect")
	rootCmd.AddCommand(historyCmd)

	exportCmd.Flags().StringVar(&exportRun, "run", "", "run id to export")
	rootCmd.AddCommand(exportCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print a run's persisted snapshots, metrics, speciations, and behaviors",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyRun == "" {
		return fmt.Errorf("run id required (--run)")
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	history, err := client.History(cmd.Context(), historyRun)
	if err != nil {
		return err
	}
	return printJSON(history)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a run's history as CSV and JSON artifacts",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportRun == "" {
		return fmt.Errorf("run id required (--run)")
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	dir, err := client.Export(cmd.Context(), exportRun)
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
