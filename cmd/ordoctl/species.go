package main

import (
	"github.com/spf13/cobra"
)

var (
	speciesFile string
	speciesRun  string
)

func init() {
	speciesCmd.Flags().StringVarP(&speciesFile, "file", "f", "", "population file (YAML or JSON)")
	speciesCmd.Flags().StringVar(&speciesRun, "run", "", "run id to persist the result under (optional)")
	rootCmd.AddCommand(speciesCmd)
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Partition the alive population into species by trait similarity",
	RunE:  runSpecies,
}

func runSpecies(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(speciesFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Speciate(cmd.Context(), speciesRun, entities)
	if err != nil {
		return err
	}
	return printJSON(result)
}
