package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store used by tests and STORE_DRIVER=memory.
type Memory struct {
	mu   sync.Mutex
	data map[string]Record
}

func NewMemory() *Memory {
	return &Memory{data: map[string]Record{}}
}

func (m *Memory) Get(_ context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.data[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Data = append([]byte(nil), rec.Data...)
	return rec, nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte, version int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[key].Version != version {
		return 0, ErrVersionConflict
	}
	next := version + 1
	m.data[key] = Record{Data: append([]byte(nil), data...), Version: next}
	return next, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
