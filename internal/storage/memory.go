package storage

import (
	"context"
	"sync"

	"ordo/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	snapshots   map[string][]model.PopulationSnapshot
	behaviors   map[string]map[string]model.NovelBehavior
	metrics     map[string][]model.GenerationalMetrics
	speciations map[string][]model.SpeciationResult
}

// NewMemoryStore returns a store that is usable immediately; Init resets it.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return nil
}

func (s *MemoryStore) reset() {
	s.snapshots = make(map[string][]model.PopulationSnapshot)
	s.behaviors = make(map[string]map[string]model.NovelBehavior)
	s.metrics = make(map[string][]model.GenerationalMetrics)
	s.speciations = make(map[string][]model.SpeciationResult)
}

func (s *MemoryStore) AppendSnapshot(_ context.Context, runID string, snapshot model.PopulationSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[runID] = append(s.snapshots[runID], snapshot)
	return nil
}

func (s *MemoryStore) GetSnapshots(_ context.Context, runID string) ([]model.PopulationSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots, ok := s.snapshots[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.PopulationSnapshot, len(snapshots))
	copy(out, snapshots)
	return out, true, nil
}

func (s *MemoryStore) LatestSnapshot(_ context.Context, runID string) (model.PopulationSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := s.snapshots[runID]
	if len(snapshots) == 0 {
		return model.PopulationSnapshot{}, false, nil
	}
	return snapshots[len(snapshots)-1], true, nil
}

func (s *MemoryStore) SaveBehaviors(_ context.Context, runID string, behaviors []model.NovelBehavior) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry := s.behaviors[runID]
	if registry == nil {
		registry = make(map[string]model.NovelBehavior, len(behaviors))
		s.behaviors[runID] = registry
	}
	for _, b := range behaviors {
		registry[b.Name] = b
	}
	return nil
}

func (s *MemoryStore) GetBehaviors(_ context.Context, runID string) (map[string]model.NovelBehavior, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registry, ok := s.behaviors[runID]
	if !ok {
		return nil, false, nil
	}
	out := make(map[string]model.NovelBehavior, len(registry))
	for name, b := range registry {
		out[name] = b
	}
	return out, true, nil
}

func (s *MemoryStore) AppendMetrics(_ context.Context, runID string, metrics model.GenerationalMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics[runID] = append(s.metrics[runID], metrics)
	return nil
}

func (s *MemoryStore) GetMetrics(_ context.Context, runID string) ([]model.GenerationalMetrics, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics, ok := s.metrics[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.GenerationalMetrics, len(metrics))
	copy(out, metrics)
	return out, true, nil
}

func (s *MemoryStore) AppendSpeciation(_ context.Context, runID string, result model.SpeciationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.speciations[runID] = append(s.speciations[runID], result)
	return nil
}

func (s *MemoryStore) GetSpeciations(_ context.Context, runID string) ([]model.SpeciationResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	speciations, ok := s.speciations[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.SpeciationResult, len(speciations))
	copy(out, speciations)
	return out, true, nil
}
