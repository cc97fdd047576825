package storage

import (
	"context"
	"sync"
)

// MemoryMedium keeps items in process memory. Nothing survives a restart.
type MemoryMedium struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{
		items: make(map[string]string),
	}
}

func (m *MemoryMedium) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, exists := m.items[key]
	return value, exists, nil
}

func (m *MemoryMedium) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
