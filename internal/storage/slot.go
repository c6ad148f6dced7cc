// Package storage keeps the task collection in a named key-value slot.
package storage

import "sync"

// Slot is a durable key-value cell holding one serialized value per key.
type Slot interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(key string) (value []byte, found bool, err error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
}

// MemorySlot is a Slot kept in process memory.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

func (m *MemorySlot) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemorySlot) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}
