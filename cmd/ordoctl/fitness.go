package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ordo/internal/model"
)

var (
	fitnessFile string
	fitnessID   string
)

func init() {
	fitnessCmd.Flags().StringVarP(&fitnessFile, "file", "f", "", "population file (YAML or JSON)")
	fitnessCmd.Flags().StringVar(&fitnessID, "id", "", "score a single entity by id")
	rootCmd.AddCommand(fitnessCmd)
}

var fitnessCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Score a population along the five fitness dimensions",
	RunE:  runFitness,
}

type fitnessReport struct {
	ID      string              `json:"id"`
	Fitness model.FitnessVector `json:"fitness"`
}

func runFitness(cmd *cobra.Command, args []string) error {
	entities, err := loadPopulation(fitnessFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	if fitnessID != "" {
		for _, e := range entities {
			if e.ID == fitnessID {
				return printJSON(fitnessReport{ID: e.ID, Fitness: client.Fitness(e, nil)})
			}
		}
		return fmt.Errorf("entity %q not in %s", fitnessID, fitnessFile)
	}

	scored := client.Score(entities)
	reports := make([]fitnessReport, 0, len(scored))
	for _, s := range scored {
		reports = append(reports, fitnessReport{ID: s.Entity.ID, Fitness: s.Fitness})
	}
	return printJSON(reports)
}
