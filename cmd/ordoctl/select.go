package main

import (
	"github.com/spf13/cobra"

	"ordo/internal/evo"
)

var (
	selectFile           string
	selectCount          int
	selectMethod         string
	selectTournamentSize int
	selectEliteCount     int
)

func init() {
	selectCmd.Flags().StringVarP(&selectFile, "file", "f", "", "population file (YAML or JSON)")
	selectCmd.Flags().IntVarP(&selectCount, "count", "n", 2, "number of entities to select")
	selectCmd.Flags().StringVar(&selectMethod, "method", evo.MethodTournament, "selection method: tournament|roulette|elite")
	selectCmd.Flags().IntVar(&selectTournamentSize, "tournament-size", 0, "tournament size (0 = default)")
	selectCmd.Flags().IntVar(&selectEliteCount, "elite-count", 0, "entities carried over unconditionally before stochastic selection")
	rootCmd.AddCommand(selectCmd)
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick entities for reproduction",
	RunE:  runSelect,
}

func runSelect(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(selectFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Select(entities, selectCount, evo.SelectionConfig{
		Method:         selectMethod,
		TournamentSize: selectTournamentSize,
		EliteCount:     selectEliteCount,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}
