package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Saranya396/projectt/internal/domain/repositories"
)

// MemoryStore keeps slots in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore creates an empty in-memory record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

var _ repositories.RecordStore = (*MemoryStore)(nil)

// Read returns a copy of the slot payload
func (s *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

// Write replaces the slot payload
func (s *MemoryStore) Write(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), payload...)
	return nil
}

// Keys lists the stored slot keys in sorted order
func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
