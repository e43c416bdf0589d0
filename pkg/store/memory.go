package store

import (
	"context"
	"sync"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// MemoryStore keeps diagrams in an in-process map. It is the default
// backend and the one tests use.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]*diagram.State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]*diagram.State)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (*diagram.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.diagrams[key]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, s *diagram.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diagrams[key] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.diagrams, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
