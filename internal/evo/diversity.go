package evo

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"ordo/internal/model"
)

// Specialization categories inferred from skill keywords. An entity lands
// in the first matching category, else generalist.
const (
	SpecTrader      = "trader"
	SpecResearcher  = "researcher"
	SpecCoder       = "coder"
	SpecCoordinator = "coordinator"
	SpecGeneralist  = "generalist"
)

var specializationKeywords = []struct {
	category string
	keyword  string
}{
	{SpecTrader, "trad"},
	{SpecResearcher, "research"},
	{SpecCoder, "cod"},
	{SpecCoordinator, "coordinat"},
}

// DiversityMetrics summarizes behavioral and genetic spread of the alive
// population. An empty population yields zero metrics and an empty
// distribution.
func (t *Tracker) DiversityMetrics(entities []model.Entity) model.DiversityMetrics {
	alive := make([]model.Entity, 0, len(entities))
	for _, entity := range entities {
		if entity.Alive() {
			alive = append(alive, entity)
		}
	}

	metrics := model.DiversityMetrics{
		SpecializationDistribution: map[string]int{},
	}
	if len(alive) == 0 {
		return metrics
	}

	metrics.StrategyVariation = strategyVariation(alive)
	for _, entity := range alive {
		metrics.SpecializationDistribution[specialization(entity)]++
	}
	metrics.GeneticDiversity = geneticDiversity(alive)
	return metrics
}

// strategyVariation averages three uniqueness ratios: distinct models,
// distinct tool-set combinations, and distinct skill-set combinations, each
// normalized by the alive population size.
func strategyVariation(alive []model.Entity) float64 {
	models := map[string]struct{}{}
	toolSets := map[string]struct{}{}
	skillSets := map[string]struct{}{}
	for _, entity := range alive {
		models[entity.Model] = struct{}{}
		toolSets[comboKey(entity.Tools)] = struct{}{}
		skillSets[comboKey(entity.Skills)] = struct{}{}
	}
	n := float64(len(alive))
	return (float64(len(models)) + float64(len(toolSets)) + float64(len(skillSets))) / (3 * n)
}

// comboKey builds an order-insensitive key for a set of strings.
func comboKey(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

func specialization(entity model.Entity) string {
	for _, kw := range specializationKeywords {
		for _, skill := range entity.Skills {
			if strings.Contains(strings.ToLower(skill), kw.keyword) {
				return kw.category
			}
		}
	}
	return SpecGeneralist
}

// geneticDiversity averages, across trait keys present on at least two
// alive entities, the coefficient of variation of that trait's values,
// capping each at 1.0. Keys whose mean is zero contribute 1 when any value
// differs and are skipped otherwise.
func geneticDiversity(alive []model.Entity) float64 {
	byKey := map[string][]float64{}
	for _, entity := range alive {
		for k, v := range entity.Traits {
			byKey[k] = append(byKey[k], v)
		}
	}

	total := 0.0
	counted := 0
	for _, values := range byKey {
		if len(values) < 2 {
			continue
		}
		mean := stat.Mean(values, nil)
		sd := stat.PopStdDev(values, nil)
		switch {
		case mean == 0 && sd == 0:
			continue
		case mean == 0:
			total += 1.0
		default:
			cv := sd / mean
			if cv < 0 {
				cv = -cv
			}
			if cv > 1 {
				cv = 1
			}
			total += cv
		}
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
