package config

import (
	"strings"
	"sync"
)

// Store is the key-value view of per-client access-policy configuration.
// Keys are flat, dot-separated paths such as "galette_cli.scopes". Values may
// have been written as a scalar or as a list; consumers pick the accessor that
// fits. Parsing a configuration file into a Store happens outside this module.
type Store interface {
	// Get returns the scalar value for key, or "" when absent. A list value
	// is returned joined with ";" so scalar consumers keep working.
	Get(key string) string
	// GetList returns the list value for key, nil when absent. A scalar value
	// is returned as a single-element list.
	GetList(key string) []string
	// Set stores a scalar value. Intended for wiring and tests.
	Set(key, value string)
	// SetList stores a list value. Intended for wiring and tests.
	SetList(key string, values []string)
}

// MapStore is an in-memory Store. Reads are concurrency-safe; writes are
// expected at configuration time only.
type MapStore struct {
	mu     sync.RWMutex
	values map[string][]string
}

func NewMapStore() *MapStore {
	return &MapStore{values: make(map[string][]string)}
}

func (s *MapStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.values[key], ";")
}

func (s *MapStore) GetList(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = []string{value}
}

func (s *MapStore) SetList(key string, values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]string, len(values))
	copy(v, values)
	s.values[key] = v
}
