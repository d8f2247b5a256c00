package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"shop-location-api/internal/models"
	"shop-location-api/internal/station"
	"shop-location-api/internal/textnorm"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	DefaultMaxStations   = 10
	DefaultMaxDistanceKm = 3.0
	DefaultSearchLimit   = 30
	MinKeywordLength     = 2
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrKeywordTooShort    = errors.New("keyword must be at least 2 characters")
)

// StationSource is a backend that returns stations grouped by physical station.
type StationSource interface {
	NearbyStations(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error)
	SearchStations(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error)
}

// StationService fetches station candidates in nearby or keyword mode.
type StationService struct {
	source StationSource
}

// NewStationService creates a new station service
func NewStationService(source StationSource) *StationService {
	return &StationService{source: source}
}

// Nearby returns candidates around a point with distance and walking minutes.
// Zero limits take the defaults.
func (s *StationService) Nearby(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error) {
	if !validCoordinates(q.Lat, q.Lng) {
		return nil, fmt.Errorf("service: %w: lat=%f lng=%f", ErrInvalidCoordinates, q.Lat, q.Lng)
	}
	if q.MaxStations <= 0 {
		q.MaxStations = DefaultMaxStations
	}
	if q.MaxDistanceKm <= 0 {
		q.MaxDistanceKm = DefaultMaxDistanceKm
	}

	candidates, err := s.source.NearbyStations(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch nearby stations: %w", err)
	}

	origin := orb.Point{q.Lng, q.Lat}
	for i := range candidates {
		c := &candidates[i]
		if c.DistanceKm == nil && (c.Lat != 0 || c.Lng != 0) {
			d := geo.DistanceHaversine(origin, orb.Point{c.Lng, c.Lat}) / 1000
			c.DistanceKm = &d
		}
		station.FillWalkingMinutes(c)
	}

	return candidates, nil
}

// Search returns candidates whose name matches keyword. Keyword results carry
// no distance.
func (s *StationService) Search(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error) {
	q.Keyword = strings.TrimSpace(textnorm.NormalizeDigits(q.Keyword))
	if utf8.RuneCountInString(q.Keyword) < MinKeywordLength {
		return nil, fmt.Errorf("service: %w", ErrKeywordTooShort)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}

	candidates, err := s.source.SearchStations(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search stations: %w", err)
	}

	for i := range candidates {
		candidates[i].DistanceKm = nil
		candidates[i].WalkingMinutes = nil
	}

	return candidates, nil
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
