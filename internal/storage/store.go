package storage

import (
	"context"

	"ordo/internal/model"
)

// Store persists per-run engine outputs between ticks: snapshot chains,
// generational metrics history, speciation reports, and the known
// novel-behavior registry. The engine itself is stateless; the caller
// re-supplies prior state from here.
type Store interface {
	Init(ctx context.Context) error
	AppendSnapshot(ctx context.Context, runID string, snapshot model.PopulationSnapshot) error
	GetSnapshots(ctx context.Context, runID string) ([]model.PopulationSnapshot, bool, error)
	LatestSnapshot(ctx context.Context, runID string) (model.PopulationSnapshot, bool, error)
	SaveBehaviors(ctx context.Context, runID string, behaviors []model.NovelBehavior) error
	GetBehaviors(ctx context.Context, runID string) (map[string]model.NovelBehavior, bool, error)
	AppendMetrics(ctx context.Context, runID string, metrics model.GenerationalMetrics) error
	GetMetrics(ctx context.Context, runID string) ([]model.GenerationalMetrics, bool, error)
	AppendSpeciation(ctx context.Context, runID string, result model.SpeciationResult) error
	GetSpeciations(ctx context.Context, runID string) ([]model.SpeciationResult, bool, error)
}
