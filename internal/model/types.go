package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version" yaml:"schema_version"`
	CodecVersion  int `json:"codec_version" yaml:"codec_version"`
}

// Tier is the discrete survival-capacity bucket of an entity. Tiers are
// totally ordered: dead < critical < low_compute < normal < thriving.
type Tier string

const (
	TierDead       Tier = "dead"
	TierCritical   Tier = "critical"
	TierLowCompute Tier = "low_compute"
	TierNormal     Tier = "normal"
	TierThriving   Tier = "thriving"
)

// MaxTierValue is the widest possible single tier improvement span.
const MaxTierValue = 4

var tierValues = map[Tier]int{
	TierDead:       0,
	TierCritical:   1,
	TierLowCompute: 2,
	TierNormal:     3,
	TierThriving:   4,
}

// Value returns the ordinal of a tier; unknown tiers rank as dead.
func (t Tier) Value() int {
	return tierValues[t]
}

// Status marks whether an entity is currently alive.
type Status string

const (
	StatusAlive Status = "alive"
	StatusDead  Status = "dead"
)

// TierChange records one transition in an entity's tier history.
type TierChange struct {
	FromTier  Tier      `json:"from_tier" yaml:"from_tier"`
	ToTier    Tier      `json:"to_tier" yaml:"to_tier"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NovelStrategy is one strategy an entity discovered during its lifetime.
type NovelStrategy struct {
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description" yaml:"description"`
	DiscoveredAt  time.Time `json:"discovered_at" yaml:"discovered_at"`
	Effectiveness float64   `json:"effectiveness" yaml:"effectiveness"`
}

// Entity is an immutable-per-tick snapshot of one population member. The
// engine never mutates entities, only derives read-only structures from them.
type Entity struct {
	VersionedRecord `yaml:",inline"`
	ID              string             `json:"id" yaml:"id"`
	Generation      int                `json:"generation" yaml:"generation"`
	Age             float64            `json:"age" yaml:"age"`
	MaxLifespan     float64            `json:"max_lifespan" yaml:"max_lifespan"`
	Status          Status             `json:"status" yaml:"status"`
	Tier            Tier               `json:"tier" yaml:"tier"`
	Balance         float64            `json:"balance" yaml:"balance"`
	TotalEarnings   float64            `json:"total_earnings" yaml:"total_earnings"`
	TotalCosts      float64            `json:"total_costs" yaml:"total_costs"`
	OffspringCount  int                `json:"offspring_count" yaml:"offspring_count"`
	Model           string             `json:"model" yaml:"model"`
	Skills          []string           `json:"skills" yaml:"skills"`
	Tools           []string           `json:"tools" yaml:"tools"`
	Traits          map[string]float64 `json:"traits" yaml:"traits"`
	NovelStrategies []NovelStrategy    `json:"novel_strategies,omitempty" yaml:"novel_strategies"`
	TierHistory     []TierChange       `json:"tier_history,omitempty" yaml:"tier_history"`
	CreatedAt       time.Time          `json:"created_at" yaml:"created_at"`
	DiedAt          *time.Time         `json:"died_at,omitempty" yaml:"died_at"`
}

// Alive reports whether the entity counts toward the living population.
func (e Entity) Alive() bool {
	return e.Status == StatusAlive
}

// FitnessVector holds the five independent fitness dimensions plus the
// weighted aggregate. Survival may exceed 1.0 for over-age entities; the
// other dimensions stay inside (0, 1).
type FitnessVector struct {
	Survival   float64 `json:"survival" yaml:"survival"`
	Earnings   float64 `json:"earnings" yaml:"earnings"`
	Offspring  float64 `json:"offspring" yaml:"offspring"`
	Adaptation float64 `json:"adaptation" yaml:"adaptation"`
	Innovation float64 `json:"innovation" yaml:"innovation"`
	Aggregate  float64 `json:"aggregate" yaml:"aggregate"`
}

// SelectionResult is the outcome of one reproduction-selection call.
type SelectionResult struct {
	VersionedRecord
	SelectedIDs    []string `json:"selected_ids"`
	Method         string   `json:"method"`
	PopulationSize int      `json:"population_size"`
	Pressure       float64  `json:"pressure"`
}

// Species is one similarity cluster of the alive population.
type Species struct {
	ID        string             `json:"id"`
	MemberIDs []string           `json:"member_ids"`
	Centroid  map[string]float64 `json:"centroid"`
}

// SpeciationResult bundles all species found in one tick.
type SpeciationResult struct {
	VersionedRecord
	Species        []Species `json:"species"`
	DiversityIndex float64   `json:"diversity_index"`
}

// PopulationSnapshot is a point-in-time census of the population. Snapshots
// form a chain: each one is computed against an optional previous snapshot
// supplied by the caller.
type PopulationSnapshot struct {
	VersionedRecord
	Timestamp      time.Time `json:"timestamp"`
	AliveCount     int       `json:"alive_count"`
	DeadCount      int       `json:"dead_count"`
	TotalCount     int       `json:"total_count"`
	Generation     int       `json:"generation"`
	BirthsInPeriod int       `json:"births_in_period"`
	DeathsInPeriod int       `json:"deaths_in_period"`
	NetGrowth      int       `json:"net_growth"`
	GrowthRate     float64   `json:"growth_rate"`
	GrowthTrend    string    `json:"growth_trend"`
}

// GenerationalMetrics averages each fitness dimension over the alive
// entities of one generation (or all alive entities).
type GenerationalMetrics struct {
	VersionedRecord
	Generation    int     `json:"generation"`
	AvgSurvival   float64 `json:"avg_survival"`
	AvgEarnings   float64 `json:"avg_earnings"`
	AvgOffspring  float64 `json:"avg_offspring"`
	AvgAdaptation float64 `json:"avg_adaptation"`
	AvgInnovation float64 `json:"avg_innovation"`
	AvgFitness    float64 `json:"avg_fitness"`
	AgentCount    int     `json:"agent_count"`
}

// GenerationalImprovement compares aggregate fitness across two
// generational metrics.
type GenerationalImprovement struct {
	FitnessImprovement  float64 `json:"fitness_improvement"`
	ImprovementVelocity float64 `json:"improvement_velocity"`
}

// DiversityMetrics summarizes behavioral and genetic spread of the alive
// population.
type DiversityMetrics struct {
	VersionedRecord
	StrategyVariation          float64        `json:"strategy_variation"`
	SpecializationDistribution map[string]int `json:"specialization_distribution"`
	GeneticDiversity           float64        `json:"genetic_diversity"`
}

// NovelBehavior is a strategy name observed for the first time across the
// tracked population history.
type NovelBehavior struct {
	VersionedRecord
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DiscoveredBy  string    `json:"discovered_by"`
	Generation    int       `json:"generation"`
	DiscoveredAt  time.Time `json:"discovered_at"`
	Effectiveness float64   `json:"effectiveness"`
	AdoptionRate  float64   `json:"adoption_rate"`
}
