// Package kv defines the durable key-value surface the reconciliation
// engine persists its state through. The engine stores two keys — the
// pending upload queue and the dedup index — each as a JSON document.
// Callers pick the backing: Bolt for durable on-disk state, Memory for
// tests and ephemeral sessions.
package kv

import "sync"

// Store is a durable string key-value surface.
type Store interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	// The value must be durably written before Set returns.
	Set(key, value string) error
}

// Memory implements Store with an in-process map.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the value for key.
func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
