package client

import (
	"context"
	"errors"
	"net/http"

	"shop-location-api/internal/models"
)

// NormalizerClient calls the address normalization backend.
type NormalizerClient struct {
	base
}

// NewNormalizerClient creates a client for POST {baseURL} {"address": ...}.
func NewNormalizerClient(baseURL string, httpClient *http.Client) *NormalizerClient {
	return &NormalizerClient{base: newBase("address normalizer", baseURL, httpClient)}
}

type normalizerResponse struct {
	Prefecture  string                     `json:"pref"`
	City        string                     `json:"city"`
	Town        string                     `json:"town"`
	Street      string                     `json:"addr"`
	FullAddress string                     `json:"fullAddress"`
	Coordinates *models.PartialCoordinates `json:"coordinates"`
}

// NormalizeAddress returns the canonical breakdown of address. A 404 is
// reported as an UpstreamError, since the chain cannot continue without it.
func (c *NormalizerClient) NormalizeAddress(ctx context.Context, address string) (*models.NormalizedAddress, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL, map[string]string{"address": address})
	if err != nil {
		return nil, err
	}

	var decoded normalizerResponse
	if err := c.doJSON(req, &decoded); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, &models.UpstreamError{Service: c.service, StatusCode: http.StatusNotFound, Message: "address could not be normalized"}
		}
		return nil, err
	}

	out := &models.NormalizedAddress{
		Prefecture:  decoded.Prefecture,
		City:        decoded.City,
		Town:        decoded.Town,
		Street:      decoded.Street,
		FullAddress: decoded.FullAddress,
	}
	// A partial pair counts as no coordinates so the geocoder still runs.
	if coords, ok := decoded.Coordinates.Complete(); ok {
		out.Coordinates = coords
	}
	return out, nil
}
