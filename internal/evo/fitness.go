package evo

import (
	"fmt"
	"math"

	"ordo/internal/model"
)

const (
	earningsSigmoidK   = 0.1
	offspringSigmoidK  = 0.5
	innovationSigmoidK = 0.3

	weightSumTolerance = 0.001
)

// Weights control how the five fitness dimensions combine into the
// aggregate score. They must sum to 1.0 within a 0.001 tolerance.
type Weights struct {
	Survival   float64 `json:"survival" yaml:"survival"`
	Earnings   float64 `json:"earnings" yaml:"earnings"`
	Offspring  float64 `json:"offspring" yaml:"offspring"`
	Adaptation float64 `json:"adaptation" yaml:"adaptation"`
	Innovation float64 `json:"innovation" yaml:"innovation"`
}

// DefaultWeights returns the standard dimension weighting.
func DefaultWeights() Weights {
	return Weights{
		Survival:   0.2,
		Earnings:   0.3,
		Offspring:  0.2,
		Adaptation: 0.15,
		Innovation: 0.15,
	}
}

func (w Weights) sum() float64 {
	return w.Survival + w.Earnings + w.Offspring + w.Adaptation + w.Innovation
}

// Validate rejects weight sets that do not sum to 1.0 within tolerance.
func (w Weights) Validate() error {
	if diff := math.Abs(w.sum() - 1.0); diff > weightSumTolerance {
		return fmt.Errorf("fitness weights must sum to 1.0 (±%.3f), got %.4f", weightSumTolerance, w.sum())
	}
	return nil
}

// Calculator scores entities along the five fitness dimensions.
type Calculator struct {
	weights Weights
}

// NewCalculator builds a calculator with custom aggregate weights.
func NewCalculator(weights Weights) (*Calculator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{weights: weights}, nil
}

// NewDefaultCalculator builds a calculator with the default weights.
func NewDefaultCalculator() *Calculator {
	return &Calculator{weights: DefaultWeights()}
}

// Weights returns the calculator's aggregate weighting.
func (c *Calculator) Weights() Weights {
	return c.weights
}

// CalculateOptions override entity-attached life-history data. Resolution
// order is explicit option > entity-attached data > zero default.
type CalculateOptions struct {
	TierHistory     []model.TierChange
	NovelStrategies []model.NovelStrategy
}

// Calculate scores one entity along every dimension plus the aggregate.
func (c *Calculator) Calculate(entity model.Entity, opts *CalculateOptions) model.FitnessVector {
	history := entity.TierHistory
	strategies := entity.NovelStrategies
	if opts != nil {
		if opts.TierHistory != nil {
			history = opts.TierHistory
		}
		if opts.NovelStrategies != nil {
			strategies = opts.NovelStrategies
		}
	}

	v := model.FitnessVector{
		Survival:   SurvivalFitness(entity),
		Earnings:   EarningsFitness(entity),
		Offspring:  OffspringFitness(entity),
		Adaptation: AdaptationFitness(entity.Tier, history),
		Innovation: InnovationFitness(strategies),
	}
	v.Aggregate = c.aggregate(v)
	return v
}

func (c *Calculator) aggregate(v model.FitnessVector) float64 {
	return v.Survival*c.weights.Survival +
		v.Earnings*c.weights.Earnings +
		v.Offspring*c.weights.Offspring +
		v.Adaptation*c.weights.Adaptation +
		v.Innovation*c.weights.Innovation
}

// AggregateFitness combines an already-computed vector under custom
// weights. The weights must sum to 1.0 within tolerance.
func AggregateFitness(v model.FitnessVector, weights Weights) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}
	c := Calculator{weights: weights}
	return c.aggregate(v), nil
}

// SurvivalFitness is age relative to nominal lifespan. Deliberately
// unclamped: an entity that outlives its lifespan scores above 1.0.
func SurvivalFitness(entity model.Entity) float64 {
	if entity.MaxLifespan <= 0 {
		return 0
	}
	return entity.Age / entity.MaxLifespan
}

// EarningsFitness squashes earnings-per-unit-time into (0, 1). Zero age
// yields exactly 0 rather than dividing by zero.
func EarningsFitness(entity model.Entity) float64 {
	if entity.Age <= 0 {
		return 0
	}
	return sigmoid(entity.TotalEarnings / entity.Age * earningsSigmoidK)
}

// OffspringFitness squashes offspring count into (0, 1); an entity with no
// offspring scores exactly 0.5.
func OffspringFitness(entity model.Entity) float64 {
	return sigmoid(float64(entity.OffspringCount) * offspringSigmoidK)
}

// AdaptationFitness rewards tier improvements. With history it sums only
// the positive deltas of each transition (downgrades contribute nothing),
// normalized by the maximum single improvement span and clamped to 1.0.
// Without history it falls back to the current tier's ordinal share.
func AdaptationFitness(current model.Tier, history []model.TierChange) float64 {
	if len(history) == 0 {
		return float64(current.Value()) / model.MaxTierValue
	}
	improvements := 0
	for _, change := range history {
		if delta := change.ToTier.Value() - change.FromTier.Value(); delta > 0 {
			improvements += delta
		}
	}
	return math.Min(1.0, float64(improvements)/model.MaxTierValue)
}

// InnovationFitness squashes the entity's total strategy effectiveness into
// (0, 1); no recorded strategies yields 0.
func InnovationFitness(strategies []model.NovelStrategy) float64 {
	if len(strategies) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range strategies {
		total += s.Effectiveness
	}
	return sigmoid(total * innovationSigmoidK)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
