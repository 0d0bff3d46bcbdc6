package ledger

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore implements Store in process memory. It backs tests and the
// one-shot CLI path where durability is not wanted.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Record)}
}

func (m *MemoryStore) Append(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[rec.ID]; exists {
		return ErrDuplicate
	}
	m.data[rec.ID] = rec
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.data[id]
	if !exists {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) ListBySystem(ctx context.Context, systemID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var list []Record
	for _, rec := range m.data {
		if rec.SystemID == systemID {
			list = append(list, rec)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]Record, 0, len(m.data))
	for _, rec := range m.data {
		list = append(list, rec)
	}
	sortNewestFirst(list)
	return list, nil
}

func sortNewestFirst(list []Record) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
