package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop-location-api/internal/models"
	"shop-location-api/internal/textnorm"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyAddress     = errors.New("address cannot be empty")
	ErrPositionNotFound = errors.New("position not found for address")
)

// AddressNormalizer turns an address string into its canonical breakdown.
type AddressNormalizer interface {
	NormalizeAddress(ctx context.Context, address string) (*models.NormalizedAddress, error)
}

// Geocoder resolves an address to a point. It returns nil on a miss.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
}

// AddressService runs the coordinate resolution chain:
// normalizer coordinates, then geocoder, then postal code coordinates.
type AddressService struct {
	normalizer AddressNormalizer
	geocoder   Geocoder
}

// NewAddressService creates a new address service. geocoder may be nil.
func NewAddressService(normalizer AddressNormalizer, geocoder Geocoder) *AddressService {
	return &AddressService{normalizer: normalizer, geocoder: geocoder}
}

// ResolveFromPostal resolves a postal lookup candidate plus the street detail
// and building typed by the user. The candidate's own coordinates are the
// last resort.
func (s *AddressService) ResolveFromPostal(ctx context.Context, base models.AddressCandidate, detail, building string) (*models.ResolvedAddress, error) {
	if strings.TrimSpace(base.CombinedLabel) == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyAddress)
	}

	query := textnorm.NormalizeDigits(strings.TrimSpace(base.CombinedLabel + strings.TrimSpace(detail)))
	resolved, err := s.resolve(ctx, query, building, &base)
	if err != nil {
		return nil, err
	}
	resolved.PostalCode = textnorm.DigitsOnly(base.PostalCode)
	return resolved, nil
}

// ResolveManual resolves a free-typed address. There is no postal fallback.
func (s *AddressService) ResolveManual(ctx context.Context, address, building string) (*models.ResolvedAddress, error) {
	query := textnorm.NormalizeDigits(strings.TrimSpace(address))
	if query == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyAddress)
	}
	return s.resolve(ctx, query, building, nil)
}

func (s *AddressService) resolve(ctx context.Context, address, building string, postal *models.AddressCandidate) (*models.ResolvedAddress, error) {
	building = textnorm.NormalizeDigits(strings.TrimSpace(building))
	address += building

	normalized, err := s.normalizer.NormalizeAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: failed to normalize address: %w", err)
	}
	if normalized == nil {
		return nil, fmt.Errorf("service: failed to normalize address: %w",
			&models.UpstreamError{Service: "address normalizer", Message: "empty response"})
	}

	fullAddress := normalized.FullAddress
	if fullAddress == "" {
		fullAddress = normalized.Prefecture + normalized.City + normalized.Town + normalized.Street
	}

	resolved := &models.ResolvedAddress{
		Prefecture:       normalized.Prefecture,
		City:             normalized.City,
		Town:             normalized.Town,
		Street:           normalized.Street,
		Building:         building,
		FormattedAddress: fullAddress,
	}

	if c := normalized.Coordinates; c != nil {
		resolved.Lat, resolved.Lng = c.Lat, c.Lng
		resolved.Provenance = models.ProvenanceNormalizedOnly
		return resolved, nil
	}

	if geo := s.geocode(ctx, fullAddress); geo != nil {
		resolved.Lat, resolved.Lng = geo.Lat, geo.Lng
		resolved.Provenance = models.ProvenanceGeocodeEnhanced
		if geo.FormattedAddress != "" {
			resolved.FormattedAddress = geo.FormattedAddress
		}
		return resolved, nil
	}

	if postal != nil {
		if c, ok := postal.Coordinates(); ok {
			resolved.Lat, resolved.Lng = c.Lat, c.Lng
			resolved.Provenance = models.ProvenancePostalFallback
			return resolved, nil
		}
	}

	return nil, fmt.Errorf("service: %w: %s", ErrPositionNotFound, fullAddress)
}

// geocode treats a geocoder failure as a miss so the postal fallback can still run.
func (s *AddressService) geocode(ctx context.Context, fullAddress string) *models.GeocodeResult {
	if s.geocoder == nil || fullAddress == "" {
		return nil
	}

	geo, err := s.geocoder.Geocode(ctx, fullAddress)
	if err != nil {
		log.Warn().Err(err).Str("address", fullAddress).Msg("geocode fallback failed")
		return nil
	}
	return geo
}
