package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"shop-location-api/internal/models"
)

// PostalClient calls the postal code lookup backend.
type PostalClient struct {
	base
}

// NewPostalClient creates a client for GET {baseURL}?postal_code=...
func NewPostalClient(baseURL string, httpClient *http.Client) *PostalClient {
	return &PostalClient{base: newBase("postal lookup", baseURL, httpClient)}
}

type postalRecord struct {
	Postcode   string `json:"postcode"`
	Pref       string `json:"pref"`
	City       string `json:"city"`
	Town       string `json:"town"`
	AllAddress string `json:"allAddress"`
	Location   *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
}

// LookupPostalCode returns the raw candidates for a 7-digit code. A 404 is an
// empty result.
func (c *PostalClient) LookupPostalCode(ctx context.Context, postalCode string) ([]models.AddressCandidate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"?postal_code="+url.QueryEscape(postalCode), nil)
	if err != nil {
		return nil, err
	}

	var records []postalRecord
	if err := c.doJSON(req, &records); err != nil {
		if errors.Is(err, errNotFound) {
			return []models.AddressCandidate{}, nil
		}
		return nil, err
	}

	candidates := make([]models.AddressCandidate, 0, len(records))
	for _, r := range records {
		cand := models.AddressCandidate{
			PostalCode:    r.Postcode,
			Prefecture:    r.Pref,
			City:          r.City,
			Town:          r.Town,
			CombinedLabel: r.AllAddress,
		}
		if loc := r.Location; loc != nil && loc.Latitude != nil && loc.Longitude != nil {
			cand.Lat, cand.Lng = *loc.Latitude, *loc.Longitude
			cand.HasLocation = true
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}
