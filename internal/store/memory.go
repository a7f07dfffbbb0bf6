package store

import (
	"context"
	"sync"

	"github.com/pszt/botbench/internal/models"
)

// MemoryStore keeps summaries in a map. Values are copied on the way in and
// out so callers cannot mutate stored summaries.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[models.MatchKey]models.MatchSummary
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[models.MatchKey]models.MatchSummary)}
}

func (m *MemoryStore) Get(_ context.Context, key models.MatchKey) (*models.MatchSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.results[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Put(_ context.Context, key models.MatchKey, summary *models.MatchSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[key] = *summary
	return nil
}

func (m *MemoryStore) Has(_ context.Context, key models.MatchKey) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.results[key]
	return ok, nil
}

func (m *MemoryStore) Delete(_ context.Context, key models.MatchKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.results, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.MatchKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]models.MatchKey, 0, len(m.results))
	for k := range m.results {
		keys = append(keys, k)
	}
	return sortKeys(keys), nil
}

func (m *MemoryStore) Close() error { return nil }
