// Package memory provides an in-memory KV for tests and for running
// without persistence.
package memory

import (
	"context"
	"sync"

	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
)

// Ensure KV implements the interface.
var _ driven.KV = (*KV)(nil)

// KV is an in-memory implementation of driven.KV.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKV creates an empty in-memory KV.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *KV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

// Set stores value under key.
func (s *KV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
