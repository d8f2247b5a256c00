package service

import (
	"context"
	"fmt"
	"strings"

	"shop-location-api/internal/models"
	"shop-location-api/internal/textnorm"
)

// GeoCodeService resolves addresses against the imported locations table.
// It serves as the geocode fallback when no external geocoder is configured.
type GeoCodeService struct {
	repo GeoCodeRepository
}

// Repository interface for dependency injection
type GeoCodeRepository interface {
	SearchLocationsByText(ctx context.Context, query string) ([]models.Location, error)
}

// NewGeoCodeService creates a new geo code service
func NewGeoCodeService(repo GeoCodeRepository) *GeoCodeService {
	return &GeoCodeService{repo: repo}
}

// Search returns every location matching the address text, best match first.
func (s *GeoCodeService) Search(ctx context.Context, address string) ([]models.Location, error) {
	address = strings.TrimSpace(textnorm.NormalizeDigits(address))
	if address == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyAddress)
	}

	locations, err := s.repo.SearchLocationsByText(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search locations: %w", err)
	}

	return locations, nil
}

// Geocode returns the best match as a geocode result, or nil when nothing matches.
func (s *GeoCodeService) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	locations, err := s.Search(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, nil
	}

	best := locations[0]
	return &models.GeocodeResult{
		Lat:              best.Latitude,
		Lng:              best.Longitude,
		FormattedAddress: best.FullAddress(),
	}, nil
}
