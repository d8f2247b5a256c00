package service

import (
	"context"
	"errors"
	"fmt"

	"shop-location-api/internal/models"
	"shop-location-api/internal/textnorm"

	"github.com/rs/zerolog/log"
)

// PostalCodeLength is the digit count of a Japanese postal code.
const PostalCodeLength = 7

var ErrInvalidPostalCode = errors.New("postal code must contain exactly 7 digits")

// PostalLookup fetches raw address candidates for a 7-digit postal code.
type PostalLookup interface {
	LookupPostalCode(ctx context.Context, postalCode string) ([]models.AddressCandidate, error)
}

// PostalService turns postal code text into address candidates.
type PostalService struct {
	lookup PostalLookup
}

// NewPostalService creates a new postal service
func NewPostalService(lookup PostalLookup) *PostalService {
	return &PostalService{lookup: lookup}
}

// ParsePostalCode normalizes raw input to 7 digits. Hyphens, spaces and
// full-width digits are accepted.
func ParsePostalCode(raw string) (string, error) {
	digits := textnorm.DigitsOnly(raw)
	if len(digits) != PostalCodeLength {
		return "", fmt.Errorf("service: %w: got %d", ErrInvalidPostalCode, len(digits))
	}
	return digits, nil
}

// Lookup resolves raw postal code text. Malformed input is rejected before any
// backend call. A backend failure is reported as NotFound, not as an error, so
// the caller can fall back to manual entry.
func (s *PostalService) Lookup(ctx context.Context, raw string) (models.PostalLookupResult, error) {
	code, err := ParsePostalCode(raw)
	if err != nil {
		return models.PostalLookupResult{}, err
	}

	result := models.PostalLookupResult{PostalCode: code, Candidates: []models.AddressCandidate{}}

	candidates, err := s.lookup.LookupPostalCode(ctx, code)
	if err != nil {
		log.Warn().Err(err).Str("postal_code", code).Msg("postal lookup failed")
		result.NotFound = true
		return result, nil
	}

	for _, c := range candidates {
		c = normalizeCandidate(c)
		if c.CombinedLabel == "" {
			continue
		}
		result.Candidates = append(result.Candidates, c)
	}
	result.NotFound = len(result.Candidates) == 0

	return result, nil
}

func normalizeCandidate(c models.AddressCandidate) models.AddressCandidate {
	c.PostalCode = textnorm.NormalizeDigits(c.PostalCode)
	c.Prefecture = textnorm.NormalizeDigits(c.Prefecture)
	c.City = textnorm.NormalizeDigits(c.City)
	c.Town = textnorm.NormalizeDigits(c.Town)
	c.CombinedLabel = textnorm.NormalizeDigits(c.CombinedLabel)
	return c
}
