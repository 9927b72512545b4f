// Package storage provides key-value store adapters backing the persisted
// user preference. Backends are interchangeable behind the KeyValueStore port.
package storage

import (
	"context"
	"sync"

	"weathernow.app/pkg/errors"
)

// MemoryStore is an in-process KeyValueStore. Contents do not survive a
// restart; meant for tests and single-instance development runs.
type MemoryStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}
