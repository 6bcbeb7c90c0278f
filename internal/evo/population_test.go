package evo

import (
	"testing"
	"time"

	"ordo/internal/model"
)

var trackerNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func fixedTracker() *Tracker {
	return NewTracker(nil).WithClock(func() time.Time { return trackerNow })
}

func TestTrackPopulationCounts(t *testing.T) {
	died := trackerNow.Add(-2 * time.Hour)
	entities := []model.Entity{
		{ID: "a", Status: model.StatusAlive, Generation: 2, CreatedAt: trackerNow.Add(-3 * time.Hour)},
		{ID: "b", Status: model.StatusAlive, Generation: 5, CreatedAt: trackerNow.Add(-40 * 24 * time.Hour)},
		{ID: "c", Status: model.StatusDead, Generation: 7, CreatedAt: trackerNow.Add(-40 * 24 * time.Hour), DiedAt: &died},
	}

	snapshot := fixedTracker().TrackPopulation(entities, nil, 1)
	if snapshot.AliveCount+snapshot.DeadCount != snapshot.TotalCount {
		t.Fatalf("alive+dead != total: %+v", snapshot)
	}
	if snapshot.AliveCount != 2 || snapshot.DeadCount != 1 || snapshot.TotalCount != 3 {
		t.Fatalf("unexpected counts: %+v", snapshot)
	}
	if snapshot.Generation != 5 {
		t.Fatalf("expected max alive generation 5, got %d", snapshot.Generation)
	}
	if snapshot.BirthsInPeriod != 0 || snapshot.DeathsInPeriod != 0 {
		t.Fatalf("expected zero births/deaths without previous snapshot, got %+v", snapshot)
	}
	if snapshot.GrowthTrend != TrendStable {
		t.Fatalf("expected stable trend, got %s", snapshot.GrowthTrend)
	}
}

func TestTrackPopulationChainAgainstPrevious(t *testing.T) {
	died := trackerNow.Add(-6 * time.Hour)
	entities := []model.Entity{
		{ID: "a", Status: model.StatusAlive, Generation: 1, CreatedAt: trackerNow.Add(-1 * time.Hour)},
		{ID: "b", Status: model.StatusAlive, Generation: 1, CreatedAt: trackerNow.Add(-2 * time.Hour)},
		{ID: "c", Status: model.StatusAlive, Generation: 1, CreatedAt: trackerNow.Add(-72 * time.Hour)},
		{ID: "d", Status: model.StatusDead, Generation: 1, CreatedAt: trackerNow.Add(-72 * time.Hour), DiedAt: &died},
	}
	prev := &model.PopulationSnapshot{TotalCount: 10}

	snapshot := fixedTracker().TrackPopulation(entities, prev, 1)
	if snapshot.BirthsInPeriod != 2 {
		t.Fatalf("expected 2 births in period, got %d", snapshot.BirthsInPeriod)
	}
	if snapshot.DeathsInPeriod != 1 {
		t.Fatalf("expected 1 death in period, got %d", snapshot.DeathsInPeriod)
	}
	if snapshot.NetGrowth != snapshot.BirthsInPeriod-snapshot.DeathsInPeriod {
		t.Fatalf("net growth invariant broken: %+v", snapshot)
	}
	if !almostEqual(snapshot.GrowthRate, 10.0) {
		t.Fatalf("expected growth rate 10%%, got %f", snapshot.GrowthRate)
	}
	if snapshot.GrowthTrend != TrendIncreasing {
		t.Fatalf("expected increasing trend above 5%%, got %s", snapshot.GrowthTrend)
	}
}

func TestGrowthTrendThresholds(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{5.1, TrendIncreasing},
		{5.0, TrendStable},
		{0, TrendStable},
		{-5.0, TrendStable},
		{-5.1, TrendDecreasing},
	}
	for _, tc := range cases {
		if got := classifyGrowthTrend(tc.rate); got != tc.want {
			t.Fatalf("rate %f: expected %s, got %s", tc.rate, tc.want, got)
		}
	}
}

func TestGenerationalMetricsAveragesAliveEntities(t *testing.T) {
	tracker := fixedTracker()
	entities := []model.Entity{
		newAliveEntity("a", 30, 100),
		newAliveEntity("b", 60, 100),
		{ID: "dead", Status: model.StatusDead, Age: 90, MaxLifespan: 100},
	}

	metrics := tracker.GenerationalMetrics(entities, nil)
	if metrics.AgentCount != 2 {
		t.Fatalf("expected 2 contributing entities, got %d", metrics.AgentCount)
	}
	if !almostEqual(metrics.AvgSurvival, 0.45) {
		t.Fatalf("expected average survival 0.45, got %f", metrics.AvgSurvival)
	}
	if metrics.AvgFitness <= 0 {
		t.Fatalf("expected positive aggregate average, got %f", metrics.AvgFitness)
	}
}

func TestGenerationalMetricsFiltersGeneration(t *testing.T) {
	tracker := fixedTracker()
	gen2 := newAliveEntity("a", 20, 100)
	gen2.Generation = 2
	gen3 := newAliveEntity("b", 80, 100)
	gen3.Generation = 3

	generation := 3
	metrics := tracker.GenerationalMetrics([]model.Entity{gen2, gen3}, &generation)
	if metrics.AgentCount != 1 {
		t.Fatalf("expected only generation 3 entities, got %d", metrics.AgentCount)
	}
	if metrics.Generation != 3 {
		t.Fatalf("expected metrics tagged with generation 3, got %d", metrics.Generation)
	}
	if !almostEqual(metrics.AvgSurvival, 0.8) {
		t.Fatalf("expected survival 0.8, got %f", metrics.AvgSurvival)
	}
}

func TestGenerationalMetricsEmptyPopulation(t *testing.T) {
	metrics := fixedTracker().GenerationalMetrics(nil, nil)
	if metrics.AgentCount != 0 || metrics.AvgFitness != 0 || metrics.Generation != 0 {
		t.Fatalf("expected all-zero metrics, got %+v", metrics)
	}
}

func TestGenerationalImprovement(t *testing.T) {
	prev := model.GenerationalMetrics{Generation: 2, AvgFitness: 0.4}
	curr := model.GenerationalMetrics{Generation: 4, AvgFitness: 0.5}

	improvement := GenerationalImprovement(prev, curr)
	if !almostEqual(improvement.FitnessImprovement, 0.1) {
		t.Fatalf("expected improvement 0.1, got %f", improvement.FitnessImprovement)
	}
	if !almostEqual(improvement.ImprovementVelocity, 0.05) {
		t.Fatalf("expected velocity 0.05, got %f", improvement.ImprovementVelocity)
	}

	same := GenerationalImprovement(curr, model.GenerationalMetrics{Generation: 4, AvgFitness: 0.6})
	if same.ImprovementVelocity != 0 {
		t.Fatalf("expected zero velocity for non-positive gap, got %f", same.ImprovementVelocity)
	}
}
