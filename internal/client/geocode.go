package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"shop-location-api/internal/models"
)

// GeocodeClient calls the external geocoding backend.
type GeocodeClient struct {
	base
}

// NewGeocodeClient creates a client for GET {baseURL}?address=...
func NewGeocodeClient(baseURL string, httpClient *http.Client) *GeocodeClient {
	return &GeocodeClient{base: newBase("geocoder", baseURL, httpClient)}
}

type geocodeResponse struct {
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	FormattedAddress string   `json:"formatted_address"`
}

// Geocode returns nil without error when the address has no position.
func (c *GeocodeClient) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"?address="+url.QueryEscape(address), nil)
	if err != nil {
		return nil, err
	}

	var decoded geocodeResponse
	if err := c.doJSON(req, &decoded); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if decoded.Lat == nil || decoded.Lng == nil {
		return nil, nil
	}
	return &models.GeocodeResult{
		Lat:              *decoded.Lat,
		Lng:              *decoded.Lng,
		FormattedAddress: decoded.FormattedAddress,
	}, nil
}
