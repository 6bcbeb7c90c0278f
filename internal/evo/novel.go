package evo

import (
	"ordo/internal/model"
)

// TrackNovelBehaviors scans each entity's recorded strategies and reports
// the ones whose name has never been seen before: neither present in the
// supplied known set nor already emitted earlier in the same call, even when
// several entities independently discovered the same name. Adoption rate is
// the percentage of the supplied population exhibiting the name.
func (t *Tracker) TrackNovelBehaviors(entities []model.Entity, known map[string]model.NovelBehavior) []model.NovelBehavior {
	if len(entities) == 0 {
		return []model.NovelBehavior{}
	}

	exhibitors := map[string]int{}
	for _, entity := range entities {
		seen := map[string]struct{}{}
		for _, strategy := range entity.NovelStrategies {
			if _, dup := seen[strategy.Name]; dup {
				continue
			}
			seen[strategy.Name] = struct{}{}
			exhibitors[strategy.Name]++
		}
	}

	emitted := map[string]struct{}{}
	behaviors := []model.NovelBehavior{}
	for _, entity := range entities {
		for _, strategy := range entity.NovelStrategies {
			if _, ok := known[strategy.Name]; ok {
				continue
			}
			if _, ok := emitted[strategy.Name]; ok {
				continue
			}
			emitted[strategy.Name] = struct{}{}

			behaviors = append(behaviors, model.NovelBehavior{
				Name:          strategy.Name,
				Description:   strategy.Description,
				DiscoveredBy:  entity.ID,
				Generation:    entity.Generation,
				DiscoveredAt:  strategy.DiscoveredAt,
				Effectiveness: clamp01(strategy.Effectiveness),
				AdoptionRate:  float64(exhibitors[strategy.Name]) / float64(len(entities)) * 100,
			})
		}
	}
	return behaviors
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
