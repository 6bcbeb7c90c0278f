package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"ordo/internal/model"
)

// Selection method names accepted by SelectForReproduction.
const (
	MethodTournament = "tournament"
	MethodRoulette   = "roulette"
	MethodElite      = "elite"
)

const defaultTournamentSize = 3

// ScoredEntity pairs an entity with its computed fitness. Selection depends
// only on this shape, never on how the vector was produced.
type ScoredEntity struct {
	Entity  model.Entity
	Fitness model.FitnessVector
}

// SelectionConfig tunes SelectForReproduction. Zero values fall back to
// tournament selection with the default tournament size and no elitism.
type SelectionConfig struct {
	Method         string
	TournamentSize int
	EliteCount     int
}

// SelectionOutcome is the ordered set of entities chosen for reproduction.
type SelectionOutcome struct {
	Selected       []ScoredEntity
	Method         string
	PopulationSize int
	Pressure       float64
}

// Record converts the outcome into its persistable form.
func (o SelectionOutcome) Record() model.SelectionResult {
	ids := make([]string, 0, len(o.Selected))
	for _, s := range o.Selected {
		ids = append(ids, s.Entity.ID)
	}
	return model.SelectionResult{
		SelectedIDs:    ids,
		Method:         o.Method,
		PopulationSize: o.PopulationSize,
		Pressure:       o.Pressure,
	}
}

// TournamentSelect repeatedly samples tournamentSize distinct entities from
// the remaining pool and keeps the highest-aggregate one, until count unique
// entities are chosen. An empty population or count of zero returns an empty
// result without error.
func TournamentSelect(rng *rand.Rand, scored []ScoredEntity, count, tournamentSize int) ([]ScoredEntity, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if tournamentSize < 1 {
		return nil, fmt.Errorf("tournament size must be >= 1, got %d", tournamentSize)
	}
	if count > len(scored) {
		return nil, fmt.Errorf("cannot select %d entities from population of %d", count, len(scored))
	}
	if count <= 0 || len(scored) == 0 {
		return []ScoredEntity{}, nil
	}

	remaining := make([]ScoredEntity, len(scored))
	copy(remaining, scored)

	selected := make([]ScoredEntity, 0, count)
	for len(selected) < count {
		size := tournamentSize
		if size > len(remaining) {
			size = len(remaining)
		}

		bestIdx := -1
		for _, idx := range rng.Perm(len(remaining))[:size] {
			if bestIdx == -1 || remaining[idx].Fitness.Aggregate > remaining[bestIdx].Fitness.Aggregate {
				bestIdx = idx
			}
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected, nil
}

// RouletteSelect performs fitness-proportionate sampling without
// replacement. A population with zero total fitness still yields count
// distinct entities via a uniform fallback.
func RouletteSelect(rng *rand.Rand, scored []ScoredEntity, count int) ([]ScoredEntity, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if count > len(scored) {
		return nil, fmt.Errorf("cannot select %d entities from population of %d", count, len(scored))
	}
	if count <= 0 || len(scored) == 0 {
		return []ScoredEntity{}, nil
	}

	remaining := make([]ScoredEntity, len(scored))
	copy(remaining, scored)

	selected := make([]ScoredEntity, 0, count)
	for len(selected) < count {
		total := 0.0
		for _, s := range remaining {
			total += s.Fitness.Aggregate
		}

		idx := len(remaining) - 1
		if total <= 0 {
			idx = rng.Intn(len(remaining))
		} else {
			spin := rng.Float64() * total
			acc := 0.0
			for i, s := range remaining {
				acc += s.Fitness.Aggregate
				if spin <= acc {
					idx = i
					break
				}
			}
		}
		selected = append(selected, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return selected, nil
}

// EliteSelect deterministically takes the top count entities by aggregate
// fitness. Ties keep input order; a count beyond the population size returns
// the whole population rather than an error.
func EliteSelect(scored []ScoredEntity, count int) []ScoredEntity {
	if count <= 0 || len(scored) == 0 {
		return []ScoredEntity{}
	}

	ranked := make([]ScoredEntity, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness.Aggregate > ranked[j].Fitness.Aggregate
	})

	if count > len(ranked) {
		count = len(ranked)
	}
	return ranked[:count]
}

// SelectForReproduction carries the top EliteCount entities directly into
// the result, then fills the remainder via the configured method.
func SelectForReproduction(rng *rand.Rand, scored []ScoredEntity, count int, cfg SelectionConfig) (SelectionOutcome, error) {
	method := cfg.Method
	if method == "" {
		method = MethodTournament
	}
	switch method {
	case MethodTournament, MethodRoulette, MethodElite:
	default:
		return SelectionOutcome{}, fmt.Errorf("unknown selection method: %s", method)
	}

	tournamentSize := cfg.TournamentSize
	if tournamentSize == 0 {
		tournamentSize = defaultTournamentSize
	}

	pressure := 0.0
	if len(scored) > 0 {
		pressure = float64(count) / float64(len(scored))
		if pressure > 1 {
			pressure = 1
		}
	}
	outcome := SelectionOutcome{
		Method:         method,
		PopulationSize: len(scored),
		Pressure:       pressure,
	}

	eliteCount := cfg.EliteCount
	if eliteCount > count {
		eliteCount = count
	}

	selected := make([]ScoredEntity, 0, count)
	if eliteCount > 0 {
		selected = append(selected, EliteSelect(scored, eliteCount)...)
	}

	rest := excludeSelected(scored, selected)
	remainder := count - len(selected)

	switch method {
	case MethodTournament:
		picked, err := TournamentSelect(rng, rest, remainder, tournamentSize)
		if err != nil {
			return SelectionOutcome{}, err
		}
		selected = append(selected, picked...)
	case MethodRoulette:
		picked, err := RouletteSelect(rng, rest, remainder)
		if err != nil {
			return SelectionOutcome{}, err
		}
		selected = append(selected, picked...)
	case MethodElite:
		selected = append(selected, EliteSelect(rest, remainder)...)
	}

	outcome.Selected = selected
	return outcome, nil
}

func excludeSelected(scored, selected []ScoredEntity) []ScoredEntity {
	if len(selected) == 0 {
		return scored
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s.Entity.ID] = struct{}{}
	}
	rest := make([]ScoredEntity, 0, len(scored)-len(selected))
	for _, s := range scored {
		if _, ok := chosen[s.Entity.ID]; !ok {
			rest = append(rest, s)
		}
	}
	return rest
}
