package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"shop-location-api/internal/models"
)

// StationClient calls the station search backend.
type StationClient struct {
	base
}

// NewStationClient creates a client for {baseURL}/nearby and {baseURL}/search.
func NewStationClient(baseURL string, httpClient *http.Client) *StationClient {
	return &StationClient{base: newBase("station search", baseURL, httpClient)}
}

// NearbyStations returns grouped candidates around a point.
func (c *StationClient) NearbyStations(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(q.Lng, 'f', -1, 64))
	params.Set("max_stations", strconv.Itoa(q.MaxStations))
	params.Set("max_distance", strconv.FormatFloat(q.MaxDistanceKm, 'f', -1, 64))
	return c.list(ctx, c.baseURL+"/nearby?"+params.Encode())
}

// SearchStations returns grouped candidates whose name matches a keyword.
func (c *StationClient) SearchStations(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error) {
	params := url.Values{}
	params.Set("keyword", q.Keyword)
	params.Set("limit", strconv.Itoa(q.Limit))
	return c.list(ctx, c.baseURL+"/search?"+params.Encode())
}

func (c *StationClient) list(ctx context.Context, endpoint string) ([]models.GroupedStationCandidate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out []models.GroupedStationCandidate
	if err := c.doJSON(req, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return []models.GroupedStationCandidate{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []models.GroupedStationCandidate{}
	}
	return out, nil
}
