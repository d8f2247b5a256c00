// Package cache keeps postal code lookup results so repeated keystrokes on
// the same code do not hit the postal backend again.
package cache

import (
	"context"

	"shop-location-api/internal/models"

	"github.com/rs/zerolog/log"
)

// Store holds candidate lists keyed by 7-digit postal code.
type Store interface {
	Get(ctx context.Context, postalCode string) ([]models.AddressCandidate, bool, error)
	Set(ctx context.Context, postalCode string, candidates []models.AddressCandidate) error
}

// PostalLookup is the backend being cached.
type PostalLookup interface {
	LookupPostalCode(ctx context.Context, postalCode string) ([]models.AddressCandidate, error)
}

// CachedPostalLookup serves lookups from a Store and fills it on a miss.
// Empty results and failures are never cached.
type CachedPostalLookup struct {
	next  PostalLookup
	store Store
}

// NewCachedPostalLookup wraps next with store.
func NewCachedPostalLookup(next PostalLookup, store Store) *CachedPostalLookup {
	return &CachedPostalLookup{next: next, store: store}
}

// LookupPostalCode implements PostalLookup.
func (c *CachedPostalLookup) LookupPostalCode(ctx context.Context, postalCode string) ([]models.AddressCandidate, error) {
	cached, ok, err := c.store.Get(ctx, postalCode)
	if err != nil {
		log.Warn().Err(err).Str("postal_code", postalCode).Msg("postal cache read failed")
	} else if ok {
		return cached, nil
	}

	candidates, err := c.next.LookupPostalCode(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	if len(candidates) > 0 {
		if err := c.store.Set(ctx, postalCode, candidates); err != nil {
			log.Warn().Err(err).Str("postal_code", postalCode).Msg("postal cache write failed")
		}
	}
	return candidates, nil
}
