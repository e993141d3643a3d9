package kv

import "sync"

// MemoryStore is an in-memory Store for tests. It is safe for concurrent use
// but provides no durability.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{m: make(map[string][]byte)}
}

// Get returns the value stored under key, or ErrNoKey.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, ErrNoKey
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set replaces the value stored under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
