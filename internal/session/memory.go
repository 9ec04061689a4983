package session

import (
	"context"
	"sync"
)

// MemoryKV is a process-local KV. It ignores the context, so every caller
// shares one browser's worth of storage.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (m *MemoryKV) GetString(_ context.Context, key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key]
}

func (m *MemoryKV) PutString(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryKV) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *MemoryKV) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}
