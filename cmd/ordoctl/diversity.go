package main

import (
	"github.com/spf13/cobra"
)

var diversityFile string

func init() {
	diversityCmd.Flags().StringVarP(&diversityFile, "file", "f", "", "population file (YAML or JSON)")
	rootCmd.AddCommand(diversityCmd)
}

var diversityCmd = &cobra.Command{
	Use:   "diversity",
	Short: "Report strategy variation, specialization spread, and genetic diversity",
	RunE:  runDiversity,
}

func runDiversity(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(diversityFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	return printJSON(client.Diversity(entities))
}
