package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory Store, used for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with initial (which may be nil).
func NewMemoryStore(initial map[string]string) *MemoryStore {
	data := make(map[string]string, len(initial))
	maps.Copy(data, initial)
	return &MemoryStore{data: data}
}

// Get returns the requested keys that exist.
func (s *MemoryStore) Get(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

// Put overwrites every entry in params.
func (s *MemoryStore) Put(_ context.Context, params map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.data, params)
	return nil
}
