package storage

import (
	"context"
	"sync"
)

// Memory is an in-memory Backend for tests. LoadErr and SaveErr, when
// set, simulate an unreachable backend.
type Memory struct {
	mu      sync.Mutex
	slots   map[string][]byte
	LoadErr error
	SaveErr error
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, false, m.LoadErr
	}
	data, ok := m.slots[key]
	return data, ok, nil
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Close() error { return nil }

// Put writes a slot directly, bypassing error injection.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), data...)
}

// Get reads a slot directly.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	return data, ok
}
