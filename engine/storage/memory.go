package storage

import (
	"slices"
	"sync"
)

type memoryImpl struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

var _ KV = &memoryImpl{}

// NewMemory creates a KV held entirely in memory. Nothing survives Close.
func NewMemory() KV {
	return &memoryImpl{entries: make(map[string][]byte)}
}

func (m *memoryImpl) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *memoryImpl) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries[key] = slices.Clone(value)
	return nil
}

func (m *memoryImpl) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

func (m *memoryImpl) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}
