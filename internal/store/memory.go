package store

import "sync"

// Memory is an in-process Persistence, handy for tests and dry runs.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemory(seed []byte) *Memory { return &Memory{data: seed} }

func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
