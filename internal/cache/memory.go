package cache

import (
	"context"
	"time"

	"shop-location-api/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is a size-bounded in-process LRU with per-entry TTL.
type MemoryStore struct {
	lru *expirable.LRU[string, []models.AddressCandidate]
}

// NewMemoryStore creates a MemoryStore holding at most size entries.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, []models.AddressCandidate](size, nil, ttl)}
}

func (m *MemoryStore) Get(_ context.Context, postalCode string) ([]models.AddressCandidate, bool, error) {
	v, ok := m.lru.Get(postalCode)
	if !ok {
		return nil, false, nil
	}
	return append([]models.AddressCandidate(nil), v...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, postalCode string, candidates []models.AddressCandidate) error {
	m.lru.Add(postalCode, append([]models.AddressCandidate(nil), candidates...))
	return nil
}

// Len returns the number of live entries.
func (m *MemoryStore) Len() int {
	return m.lru.Len()
}
