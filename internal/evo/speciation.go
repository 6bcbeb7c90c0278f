package evo

import (
	"fmt"
	"math"

	"ordo/internal/model"
)

// DefaultSimilarityThreshold is the representative similarity an entity
// must exceed to join an existing species.
const DefaultSimilarityThreshold = 0.7

// Speciator clusters a population into species by trait similarity.
type Speciator struct {
	Threshold float64
}

// NewSpeciator builds a speciator with the default similarity threshold.
func NewSpeciator() *Speciator {
	return &Speciator{Threshold: DefaultSimilarityThreshold}
}

// Speciate partitions the alive entities into disjoint species via greedy
// agglomeration: each entity joins the first species whose representative
// (founding member) it resembles beyond the threshold, otherwise it founds
// a new species. Species membership covers every alive entity exactly once.
func (s *Speciator) Speciate(entities []model.Entity) model.SpeciationResult {
	type group struct {
		key            string
		representative map[string]float64
		members        []model.Entity
	}
	var groups []*group

	for _, entity := range entities {
		if !entity.Alive() {
			continue
		}

		placed := false
		for _, grp := range groups {
			if TraitSimilarity(entity.Traits, grp.representative) > s.Threshold {
				grp.members = append(grp.members, entity)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &group{
				key:            fmt.Sprintf("sp-%03d", len(groups)+1),
				representative: entity.Traits,
				members:        []model.Entity{entity},
			})
		}
	}

	clustered := 0
	species := make([]model.Species, 0, len(groups))
	for _, grp := range groups {
		ids := make([]string, 0, len(grp.members))
		for _, member := range grp.members {
			ids = append(ids, member.ID)
		}
		clustered += len(grp.members)
		species = append(species, model.Species{
			ID:        grp.key,
			MemberIDs: ids,
			Centroid:  traitCentroid(grp.members),
		})
	}

	return model.SpeciationResult{
		Species:        species,
		DiversityIndex: diversityIndex(species, clustered),
	}
}

// TraitSimilarity measures how alike two trait vectors are, in [0, 1].
// It is symmetric and yields exactly 1 for identical vectors. Each key in
// the union contributes the normalized absolute difference of its values;
// a key missing on one side counts as zero.
func TraitSimilarity(a, b map[string]float64) float64 {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	if len(keys) == 0 {
		return 1
	}

	distance := 0.0
	for k := range keys {
		va, vb := a[k], b[k]
		span := math.Abs(va) + math.Abs(vb)
		if span == 0 {
			continue
		}
		distance += math.Abs(va-vb) / span
	}
	return 1 - distance/float64(len(keys))
}

// traitCentroid averages each trait key over the species members.
func traitCentroid(members []model.Entity) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, member := range members {
		for k, v := range member.Traits {
			sums[k] += v
			counts[k]++
		}
	}
	centroid := make(map[string]float64, len(sums))
	for k, sum := range sums {
		centroid[k] = sum / float64(counts[k])
	}
	return centroid
}

// diversityIndex is a Simpson-style index over species shares: it grows
// with species count and evenness and stays in [0, 1].
func diversityIndex(species []model.Species, clustered int) float64 {
	if clustered == 0 || len(species) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, sp := range species {
		share := float64(len(sp.MemberIDs)) / float64(clustered)
		sumSquares += share * share
	}
	return 1 - sumSquares
}
