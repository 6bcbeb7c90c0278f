package evo

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"ordo/internal/model"
)

// Growth trend classifications, in fixed percentage points.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"

	growthTrendThreshold = 5.0
)

// Tracker derives population-level analytics from an entity collection plus
// optional prior state. It holds no history itself; snapshots and behavior
// registries are persisted and re-supplied by the caller.
type Tracker struct {
	calc *Calculator
	now  func() time.Time
}

// NewTracker builds a tracker that scores entities with the given
// calculator. A nil calculator falls back to default weights.
func NewTracker(calc *Calculator) *Tracker {
	if calc == nil {
		calc = NewDefaultCalculator()
	}
	return &Tracker{calc: calc, now: time.Now}
}

// WithClock overrides the tracker's time source.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// TrackPopulation computes the current snapshot against an optional
// previous one. Births and deaths count entities whose birth or death
// timestamp falls within periodDays of now; without a previous snapshot
// both default to zero.
func (t *Tracker) TrackPopulation(entities []model.Entity, prev *model.PopulationSnapshot, periodDays int) model.PopulationSnapshot {
	if periodDays <= 0 {
		periodDays = 1
	}
	now := t.now()
	windowStart := now.Add(-time.Duration(periodDays) * 24 * time.Hour)

	snapshot := model.PopulationSnapshot{Timestamp: now}
	for _, entity := range entities {
		snapshot.TotalCount++
		if entity.Alive() {
			snapshot.AliveCount++
			if entity.Generation > snapshot.Generation {
				snapshot.Generation = entity.Generation
			}
		} else {
			snapshot.DeadCount++
		}

		if prev == nil {
			continue
		}
		if !entity.CreatedAt.Before(windowStart) && !entity.CreatedAt.After(now) {
			snapshot.BirthsInPeriod++
		}
		if entity.DiedAt != nil && !entity.DiedAt.Before(windowStart) && !entity.DiedAt.After(now) {
			snapshot.DeathsInPeriod++
		}
	}

	snapshot.NetGrowth = snapshot.BirthsInPeriod - snapshot.DeathsInPeriod
	if prev != nil && prev.TotalCount > 0 {
		snapshot.GrowthRate = float64(snapshot.NetGrowth) / float64(prev.TotalCount) * 100
	}
	snapshot.GrowthTrend = classifyGrowthTrend(snapshot.GrowthRate)
	return snapshot
}

func classifyGrowthTrend(rate float64) string {
	switch {
	case rate > growthTrendThreshold:
		return TrendIncreasing
	case rate < -growthTrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// GenerationalMetrics averages each fitness dimension over the alive
// entities, optionally restricted to one generation. Empty input yields an
// all-zero result with AgentCount 0, never an error.
func (t *Tracker) GenerationalMetrics(entities []model.Entity, generation *int) model.GenerationalMetrics {
	var (
		survival, earnings, offspring []float64
		adaptation, innovation, aggr  []float64
		maxGeneration                 int
	)

	for _, entity := range entities {
		if !entity.Alive() {
			continue
		}
		if generation != nil && entity.Generation != *generation {
			continue
		}
		v := t.calc.Calculate(entity, nil)
		survival = append(survival, v.Survival)
		earnings = append(earnings, v.Earnings)
		offspring = append(offspring, v.Offspring)
		adaptation = append(adaptation, v.Adaptation)
		innovation = append(innovation, v.Innovation)
		aggr = append(aggr, v.Aggregate)
		if entity.Generation > maxGeneration {
			maxGeneration = entity.Generation
		}
	}

	metrics := model.GenerationalMetrics{AgentCount: len(aggr)}
	if generation != nil {
		metrics.Generation = *generation
	} else {
		metrics.Generation = maxGeneration
	}
	if len(aggr) == 0 {
		return metrics
	}

	metrics.AvgSurvival = stat.Mean(survival, nil)
	metrics.AvgEarnings = stat.Mean(earnings, nil)
	metrics.AvgOffspring = stat.Mean(offspring, nil)
	metrics.AvgAdaptation = stat.Mean(adaptation, nil)
	metrics.AvgInnovation = stat.Mean(innovation, nil)
	metrics.AvgFitness = stat.Mean(aggr, nil)
	return metrics
}

// GenerationalImprovement is the signed aggregate-fitness delta between two
// generational metrics, with velocity normalized by the generation gap.
func GenerationalImprovement(prev, curr model.GenerationalMetrics) model.GenerationalImprovement {
	improvement := model.GenerationalImprovement{
		FitnessImprovement: curr.AvgFitness - prev.AvgFitness,
	}
	if gap := curr.Generation - prev.Generation; gap > 0 {
		improvement.ImprovementVelocity = improvement.FitnessImprovement / float64(gap)
	}
	return improvement
}
