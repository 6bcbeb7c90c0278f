package evo

import (
	"math"
	"testing"
	"time"

	"ordo/internal/model"
)

func newAliveEntity(id string, age, maxLifespan float64) model.Entity {
	return model.Entity{
		ID:          id,
		Status:      model.StatusAlive,
		Tier:        model.TierNormal,
		Age:         age,
		MaxLifespan: maxLifespan,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSurvivalFitness(t *testing.T) {
	e := newAliveEntity("a", 30, 100)
	if got := SurvivalFitness(e); !almostEqual(got, 0.3) {
		t.Fatalf("expected survival 0.3, got %f", got)
	}

	overAge := newAliveEntity("b", 150, 100)
	if got := SurvivalFitness(overAge); got <= 1.0 {
		t.Fatalf("expected over-age survival above 1.0, got %f", got)
	}

	zeroLifespan := newAliveEntity("c", 10, 0)
	if got := SurvivalFitness(zeroLifespan); got != 0 {
		t.Fatalf("expected zero survival for non-positive lifespan, got %f", got)
	}
}

func TestEarningsFitness(t *testing.T) {
	e := newAliveEntity("a", 10, 100)
	e.TotalEarnings = 0
	if got := EarningsFitness(e); !almostEqual(got, 0.5) {
		t.Fatalf("expected earnings fitness 0.5 for zero earnings, got %f", got)
	}

	e.Age = 0
	e.TotalEarnings = 1000
	if got := EarningsFitness(e); got != 0 {
		t.Fatalf("expected earnings fitness 0 for zero age, got %f", got)
	}

	low := newAliveEntity("b", 10, 100)
	low.TotalEarnings = 100
	high := newAliveEntity("c", 10, 100)
	high.TotalEarnings = 500
	if EarningsFitness(high) <= EarningsFitness(low) {
		t.Fatal("expected earnings fitness monotonic in earnings-per-unit-time")
	}
	if got := EarningsFitness(high); got <= 0 || got >= 1 {
		t.Fatalf("expected earnings fitness in (0, 1), got %f", got)
	}
}

func TestOffspringFitness(t *testing.T) {
	e := newAliveEntity("a", 10, 100)
	if got := OffspringFitness(e); !almostEqual(got, 0.5) {
		t.Fatalf("expected offspring fitness 0.5 for zero offspring, got %f", got)
	}

	prev := 0.0
	for count := 0; count < 5; count++ {
		e.OffspringCount = count
		got := OffspringFitness(e)
		if got <= prev {
			t.Fatalf("expected offspring fitness strictly increasing, count=%d got=%f prev=%f", count, got, prev)
		}
		if got >= 1 {
			t.Fatalf("expected offspring fitness below 1, got %f", got)
		}
		prev = got
	}
}

func TestAdaptationFitnessWithoutHistory(t *testing.T) {
	if got := AdaptationFitness(model.TierNormal, nil); !almostEqual(got, 0.75) {
		t.Fatalf("expected 3/4 for current tier normal, got %f", got)
	}
	if got := AdaptationFitness(model.TierDead, nil); got != 0 {
		t.Fatalf("expected 0 for dead tier, got %f", got)
	}
}

func TestAdaptationFitnessSumsOnlyImprovements(t *testing.T) {
	history := []model.TierChange{
		{FromTier: model.TierCritical, ToTier: model.TierLowCompute},
		{FromTier: model.TierLowCompute, ToTier: model.TierNormal},
	}
	if got := AdaptationFitness(model.TierNormal, history); !almostEqual(got, 0.5) {
		t.Fatalf("expected adaptation 0.5 for two single-step improvements, got %f", got)
	}

	withDowngrade := append([]model.TierChange{
		{FromTier: model.TierThriving, ToTier: model.TierCritical},
	}, history...)
	if got := AdaptationFitness(model.TierNormal, withDowngrade); !almostEqual(got, 0.5) {
		t.Fatalf("expected downgrades to contribute nothing, got %f", got)
	}

	big := []model.TierChange{
		{FromTier: model.TierDead, ToTier: model.TierThriving},
		{FromTier: model.TierCritical, ToTier: model.TierThriving},
	}
	if got := AdaptationFitness(model.TierThriving, big); got != 1.0 {
		t.Fatalf("expected adaptation clamped to 1.0, got %f", got)
	}
}

func TestInnovationFitness(t *testing.T) {
	if got := InnovationFitness(nil); got != 0 {
		t.Fatalf("expected 0 without strategies, got %f", got)
	}

	one := []model.NovelStrategy{{Name: "arb", Effectiveness: 0.8}}
	two := append(one, model.NovelStrategy{Name: "cache", Effectiveness: 0.9})
	fOne := InnovationFitness(one)
	fTwo := InnovationFitness(two)
	if fOne <= 0 || fOne >= 1 {
		t.Fatalf("expected innovation in (0, 1), got %f", fOne)
	}
	if fTwo <= fOne {
		t.Fatalf("expected more strategies to raise innovation: one=%f two=%f", fOne, fTwo)
	}
}

func TestAggregateFitnessWeightedSum(t *testing.T) {
	v := model.FitnessVector{
		Survival:   0.5,
		Earnings:   0.6,
		Offspring:  0.7,
		Adaptation: 0.8,
		Innovation: 0.9,
	}
	weights := Weights{Survival: 0.5, Earnings: 0.2, Offspring: 0.1, Adaptation: 0.1, Innovation: 0.1}
	got, err := AggregateFitness(v, weights)
	if err != nil {
		t.Fatalf("aggregate fitness: %v", err)
	}
	if !almostEqual(got, 0.61) {
		t.Fatalf("expected aggregate 0.61, got %f", got)
	}
}

func TestAggregateFitnessRejectsBadWeights(t *testing.T) {
	v := model.FitnessVector{Survival: 1}
	bad := Weights{Survival: 0.5, Earnings: 0.2, Offspring: 0.1, Adaptation: 0.1, Innovation: 0.2}
	if _, err := AggregateFitness(v, bad); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
	if _, err := NewCalculator(bad); err == nil {
		t.Fatal("expected calculator constructor to reject bad weights")
	}

	withinTolerance := Weights{Survival: 0.2005, Earnings: 0.3, Offspring: 0.2, Adaptation: 0.15, Innovation: 0.15}
	if _, err := NewCalculator(withinTolerance); err != nil {
		t.Fatalf("expected 0.001 tolerance to accept weights, got %v", err)
	}
}

func TestCalculateResolvesLayeredDefaults(t *testing.T) {
	calc := NewDefaultCalculator()

	entity := newAliveEntity("a", 30, 100)
	entity.Tier = model.TierNormal
	entity.TierHistory = []model.TierChange{
		{FromTier: model.TierCritical, ToTier: model.TierNormal},
	}

	attached := calc.Calculate(entity, nil)
	if !almostEqual(attached.Adaptation, 0.5) {
		t.Fatalf("expected entity-attached history to apply, got %f", attached.Adaptation)
	}

	explicit := calc.Calculate(entity, &CalculateOptions{
		TierHistory: []model.TierChange{
			{FromTier: model.TierDead, ToTier: model.TierThriving},
		},
	})
	if explicit.Adaptation != 1.0 {
		t.Fatalf("expected explicit history to win over attached, got %f", explicit.Adaptation)
	}

	entity.TierHistory = nil
	fallback := calc.Calculate(entity, nil)
	if !almostEqual(fallback.Adaptation, 0.75) {
		t.Fatalf("expected current-tier fallback without history, got %f", fallback.Adaptation)
	}
}

func TestCalculateAggregateUsesDefaultWeights(t *testing.T) {
	calc := NewDefaultCalculator()
	entity := newAliveEntity("a", 30, 100)
	v := calc.Calculate(entity, nil)

	want := v.Survival*0.2 + v.Earnings*0.3 + v.Offspring*0.2 + v.Adaptation*0.15 + v.Innovation*0.15
	if !almostEqual(v.Aggregate, want) {
		t.Fatalf("expected aggregate %f, got %f", want, v.Aggregate)
	}
}
