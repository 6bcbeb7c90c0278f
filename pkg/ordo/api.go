// Package ordo is the public entry point of the evolutionary fitness and
// selection engine. A Client owns the engine configuration, a persistence
// backend for inter-tick state (snapshot chains, behavior registries), and
// a seeded random source for the stochastic selection methods.
package ordo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ordo/internal/evo"
	"ordo/internal/model"
	"ordo/internal/report"
	"ordo/internal/storage"
)

const defaultArtifactsDir = "artifacts"

// Options configure a Client. Zero values select the memory store, default
// fitness weights, the default speciation threshold, a time-based random
// seed, and a no-op logger.
type Options struct {
	StoreKind           string
	DBPath              string
	ArtifactsDir        string
	Seed                int64
	Weights             *evo.Weights
	SimilarityThreshold float64
	Logger              *zap.Logger
}

type Client struct {
	store     storage.Store
	calc      *evo.Calculator
	tracker   *evo.Tracker
	speciator *evo.Speciator
	rng       *rand.Rand
	log       *zap.Logger

	artifactsDir string
}

// New builds and initializes a Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	calc := evo.NewDefaultCalculator()
	if opts.Weights != nil {
		calc, err = evo.NewCalculator(*opts.Weights)
		if err != nil {
			return nil, err
		}
	}

	speciator := evo.NewSpeciator()
	if opts.SimilarityThreshold > 0 {
		speciator.Threshold = opts.SimilarityThreshold
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}

	return &Client{
		store:        store,
		calc:         calc,
		tracker:      evo.NewTracker(calc),
		speciator:    speciator,
		rng:          rand.New(rand.NewSource(resolveSeed(opts.Seed))),
		log:          logger,
		artifactsDir: artifactsDir,
	}, nil
}

// resolveSeed maps the zero seed to the clock so unseeded clients do not
// all replay the same stochastic selection sequence.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Close releases the underlying store if it holds resources.
func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// NewRunID mints an identifier under which tick results are chained.
func (c *Client) NewRunID() string {
	return uuid.NewString()
}

// Score computes the fitness vector of every entity in input order.
func (c *Client) Score(entities []model.Entity) []evo.ScoredEntity {
	scored := make([]evo.ScoredEntity, 0, len(entities))
	for _, entity := range entities {
		scored = append(scored, evo.ScoredEntity{
			Entity:  entity,
			Fitness: c.calc.Calculate(entity, nil),
		})
	}
	return scored
}

// Fitness scores a single entity with optional explicit life-history data.
func (c *Client) Fitness(entity model.Entity, opts *evo.CalculateOptions) model.FitnessVector {
	return c.calc.Calculate(entity, opts)
}

// TickResult bundles everything derived from one population tick.
type TickResult struct {
	Snapshot  model.PopulationSnapshot  `json:"snapshot"`
	Metrics   model.GenerationalMetrics `json:"metrics"`
	Behaviors []model.NovelBehavior     `json:"behaviors"`
}

// Tick chains a new snapshot onto the run's history, computes generational
// metrics, and registers freshly observed novel behaviors. Prior state is
// loaded from the store; the engine itself stays stateless.
func (c *Client) Tick(ctx context.Context, runID string, entities []model.Entity, periodDays int) (TickResult, error) {
	if runID == "" {
		return TickResult{}, fmt.Errorf("run id is required")
	}

	var prev *model.PopulationSnapshot
	latest, ok, err := c.store.LatestSnapshot(ctx, runID)
	if err != nil {
		return TickResult{}, fmt.Errorf("load previous snapshot: %w", err)
	}
	if ok {
		prev = &latest
	}

	known, _, err := c.store.GetBehaviors(ctx, runID)
	if err != nil {
		return TickResult{}, fmt.Errorf("load behavior registry: %w", err)
	}

	result := TickResult{
		Snapshot:  c.tracker.TrackPopulation(entities, prev, periodDays),
		Metrics:   c.tracker.GenerationalMetrics(entities, nil),
		Behaviors: c.tracker.TrackNovelBehaviors(entities, known),
	}

	if err := c.store.AppendSnapshot(ctx, runID, result.Snapshot); err != nil {
		return TickResult{}, fmt.Errorf("persist snapshot: %w", err)
	}
	if err := c.store.AppendMetrics(ctx, runID, result.Metrics); err != nil {
		return TickResult{}, fmt.Errorf("persist metrics: %w", err)
	}
	if len(result.Behaviors) > 0 {
		if err := c.store.SaveBehaviors(ctx, runID, result.Behaviors); err != nil {
			return TickResult{}, fmt.Errorf("persist behaviors: %w", err)
		}
	}

	c.log.Info("tick tracked",
		zap.String("run_id", runID),
		zap.Int("alive", result.Snapshot.AliveCount),
		zap.Int("total", result.Snapshot.TotalCount),
		zap.String("trend", result.Snapshot.GrowthTrend),
		zap.Int("new_behaviors", len(result.Behaviors)),
	)
	return result, nil
}

// Select scores the population and chooses count entities for reproduction.
func (c *Client) Select(entities []model.Entity, count int, cfg evo.SelectionConfig) (model.SelectionResult, error) {
	outcome, err := evo.SelectForReproduction(c.rng, c.Score(entities), count, cfg)
	if err != nil {
		return model.SelectionResult{}, err
	}

	c.log.Info("selection complete",
		zap.String("method", outcome.Method),
		zap.Int("selected", len(outcome.Selected)),
		zap.Float64("pressure", outcome.Pressure),
	)
	return outcome.Record(), nil
}

// Speciate clusters the alive population and records the report under the
// run's history.
func (c *Client) Speciate(ctx context.Context, runID string, entities []model.Entity) (model.SpeciationResult, error) {
	result := c.speciator.Speciate(entities)
	if runID != "" {
		if err := c.store.AppendSpeciation(ctx, runID, result); err != nil {
			return model.SpeciationResult{}, fmt.Errorf("persist speciation: %w", err)
		}
	}

	c.log.Info("speciation complete",
		zap.String("run_id", runID),
		zap.Int("species", len(result.Species)),
		zap.Float64("diversity", result.DiversityIndex),
	)
	return result, nil
}

// Metrics computes generational metrics without persisting them. A nil
// generation averages over all alive entities.
func (c *Client) Metrics(entities []model.Entity, generation *int) model.GenerationalMetrics {
	return c.tracker.GenerationalMetrics(entities, generation)
}

// NovelBehaviors previews the behaviors a Tick would register, judged
// against the run's persisted registry, without writing anything.
func (c *Client) NovelBehaviors(ctx context.Context, runID string, entities []model.Entity) ([]model.NovelBehavior, error) {
	known, _, err := c.store.GetBehaviors(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load behavior registry: %w", err)
	}
	return c.tracker.TrackNovelBehaviors(entities, known), nil
}

// Diversity computes population diversity metrics without persisting them.
func (c *Client) Diversity(entities []model.Entity) model.DiversityMetrics {
	return c.tracker.DiversityMetrics(entities)
}

// Improvement compares the run's last two persisted generational metrics.
// The second return value is false when fewer than two samples exist.
func (c *Client) Improvement(ctx context.Context, runID string) (model.GenerationalImprovement, bool, error) {
	history, _, err := c.store.GetMetrics(ctx, runID)
	if err != nil {
		return model.GenerationalImprovement{}, false, err
	}
	if len(history) < 2 {
		return model.GenerationalImprovement{}, false, nil
	}
	prev, curr := history[len(history)-2], history[len(history)-1]
	return evo.GenerationalImprovement(prev, curr), true, nil
}

// RunHistory is everything persisted for one run.
type RunHistory struct {
	Snapshots  []model.PopulationSnapshot  `json:"snapshots"`
	Metrics    []model.GenerationalMetrics `json:"metrics"`
	Speciation []model.SpeciationResult    `json:"speciation"`
	Behaviors  []model.NovelBehavior       `json:"behaviors"`
}

// History loads the run's persisted state.
func (c *Client) History(ctx context.Context, runID string) (RunHistory, error) {
	var history RunHistory
	var err error

	if history.Snapshots, _, err = c.store.GetSnapshots(ctx, runID); err != nil {
		return RunHistory{}, err
	}
	if history.Metrics, _, err = c.store.GetMetrics(ctx, runID); err != nil {
		return RunHistory{}, err
	}
	if history.Speciation, _, err = c.store.GetSpeciations(ctx, runID); err != nil {
		return RunHistory{}, err
	}
	registry, _, err := c.store.GetBehaviors(ctx, runID)
	if err != nil {
		return RunHistory{}, err
	}
	history.Behaviors = make([]model.NovelBehavior, 0, len(registry))
	for _, b := range registry {
		history.Behaviors = append(history.Behaviors, b)
	}
	sort.Slice(history.Behaviors, func(i, j int) bool {
		return history.Behaviors[i].Name < history.Behaviors[j].Name
	})
	return history, nil
}

// Export writes the run's history as CSV/JSON artifacts and returns the
// output directory.
func (c *Client) Export(ctx context.Context, runID string) (string, error) {
	history, err := c.History(ctx, runID)
	if err != nil {
		return "", err
	}
	runDir, err := report.Write(c.artifactsDir, report.RunArtifacts{
		RunID:      runID,
		Snapshots:  history.Snapshots,
		Metrics:    history.Metrics,
		Speciation: history.Speciation,
		Behaviors:  history.Behaviors,
	})
	if err != nil {
		return "", err
	}

	c.log.Info("run exported", zap.String("run_id", runID), zap.String("dir", runDir))
	return runDir, nil
}
