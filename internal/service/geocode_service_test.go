package service

import (
	"context"
	"testing"

	"shop-location-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGeoCodeRepository is a mock implementation of the GeoCodeRepository interface
type MockGeoCodeRepository struct {
	mock.Mock
}

// SearchLocationsByText implements GeoCodeRepository.
func (m *MockGeoCodeRepository) SearchLocationsByText(ctx context.Context, query string) ([]models.Location, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Location), args.Error(1)
}

var marunouchi = models.Location{
	ID:           1,
	Prefecture:   "東京都",
	Municipality: "千代田区",
	Address1:     "丸の内",
	Address2:     "一丁目",
	Latitude:     35.681236,
	Longitude:    139.767125,
}

func TestGeoCodeService_Geocode(t *testing.T) {
	tests := []struct {
		name          string
		address       string
		query         string
		mockLocations []models.Location
		mockError     error
		expected      *models.GeocodeResult
		expectError   bool
	}{
		{
			name:        "empty address",
			address:     "  ",
			expectError: true,
		},
		{
			name:          "best match wins",
			address:       "東京都千代田区丸の内１丁目",
			query:         "東京都千代田区丸の内1丁目",
			mockLocations: []models.Location{marunouchi, {ID: 2, Latitude: 1, Longitude: 2}},
			expected: &models.GeocodeResult{
				Lat:              35.681236,
				Lng:              139.767125,
				FormattedAddress: "東京都千代田区丸の内一丁目",
			},
		},
		{
			name:          "no results is a miss",
			address:       "nonexistent address",
			query:         "nonexistent address",
			mockLocations: []models.Location{},
		},
		{
			name:          "repository error",
			address:       "東京都千代田区丸の内",
			query:         "東京都千代田区丸の内",
			mockLocations: nil,
			mockError:     assert.AnError,
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockGeoCodeRepository)
			service := NewGeoCodeService(mockRepo)

			if tt.query != "" {
				mockRepo.On("SearchLocationsByText", mock.Anything, tt.query).Return(tt.mockLocations, tt.mockError)
			}

			// Execute
			result, err := service.Geocode(context.Background(), tt.address)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
