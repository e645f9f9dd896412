package history

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. It backs two cases: the fail-closed
// fallback when the on-disk database cannot be opened, and test fakes.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Get(identity string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[identity]
	return rec, ok
}

func (m *MemoryStore) RecordUse(identity string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[identity]
	rec.UseCount++
	rec.LastUsed = now
	m.records[identity] = rec
	return nil
}

func (m *MemoryStore) SetPinned(identity string, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[identity]
	rec.Pinned = pinned
	m.records[identity] = rec
	return nil
}

func (m *MemoryStore) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]Record)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
