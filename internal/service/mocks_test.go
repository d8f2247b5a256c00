package service

import (
	"context"

	"shop-location-api/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockPostalLookup struct {
	mock.Mock
}

func (m *MockPostalLookup) LookupPostalCode(ctx context.Context, postalCode string) ([]models.AddressCandidate, error) {
	args := m.Called(ctx, postalCode)
	return args.Get(0).([]models.AddressCandidate), args.Error(1)
}

type MockAddressNormalizer struct {
	mock.Mock
}

func (m *MockAddressNormalizer) NormalizeAddress(ctx context.Context, address string) (*models.NormalizedAddress, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(*models.NormalizedAddress), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(*models.GeocodeResult), args.Error(1)
}

type MockStationSource struct {
	mock.Mock
}

func (m *MockStationSource) NearbyStations(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.GroupedStationCandidate), args.Error(1)
}

func (m *MockStationSource) SearchStations(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.GroupedStationCandidate), args.Error(1)
}
