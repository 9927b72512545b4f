// Package preferences holds the single-slot persisted user preference:
// the last successfully searched city, auto-loaded on session start.
package preferences

import (
	"context"
	"strings"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const lastCityKey = "last_searched_city"

// LastCityStore persists the last searched city behind the key-value port.
// One slot only; every save overwrites the previous value.
type LastCityStore struct {
	backend ports.KeyValueStore
}

func NewLastCityStore(backend ports.KeyValueStore) (*LastCityStore, error) {
	if backend == nil {
		return nil, errors.NewValidationError("key-value backend is required")
	}
	return &LastCityStore{backend: backend}, nil
}

// Save persists the trimmed city name. A blank name is a no-op.
func (s *LastCityStore) Save(ctx context.Context, city string) error {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return nil
	}
	return s.backend.Put(ctx, lastCityKey, trimmed)
}

// Load returns the stored city and whether one is present.
func (s *LastCityStore) Load(ctx context.Context) (string, bool, error) {
	return s.backend.Get(ctx, lastCityKey)
}

// Clear removes the stored city.
func (s *LastCityStore) Clear(ctx context.Context) error {
	return s.backend.Remove(ctx, lastCityKey)
}

// Exists reports whether a last searched city has been saved.
func (s *LastCityStore) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.backend.Get(ctx, lastCityKey)
	return ok, err
}
