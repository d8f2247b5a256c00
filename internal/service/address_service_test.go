package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-location-api/internal/client"
	"shop-location-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var dogenzakaBase = models.AddressCandidate{
	PostalCode:    "1500043",
	Prefecture:    "東京都",
	City:          "渋谷区",
	Town:          "道玄坂",
	CombinedLabel: "東京都渋谷区道玄坂",
	Lat:           35.6579,
	Lng:           139.6966,
	HasLocation:   true,
}

func normalized(coords *models.Coordinates) *models.NormalizedAddress {
	return &models.NormalizedAddress{
		Prefecture:  "東京都",
		City:        "渋谷区",
		Town:        "道玄坂二丁目",
		Street:      "24-1",
		FullAddress: "東京都渋谷区道玄坂二丁目24-1",
		Coordinates: coords,
	}
}

func TestAddressService_ResolveFromPostal(t *testing.T) {
	const query = "東京都渋谷区道玄坂2-24-1渋谷ビル5F"

	tests := []struct {
		name         string
		normalized   *models.NormalizedAddress
		normalizeErr error
		geocode      *models.GeocodeResult
		geocodeErr   error
		callsGeocode bool
		base         models.AddressCandidate
		expected     *models.ResolvedAddress
		expectError  error
	}{
		{
			name:       "normalizer coordinates short-circuit",
			normalized: normalized(&models.Coordinates{Lat: 35.6586, Lng: 139.6989}),
			base:       dogenzakaBase,
			expected: &models.ResolvedAddress{
				Prefecture: "東京都", City: "渋谷区", Town: "道玄坂二丁目", Street: "24-1", Building: "渋谷ビル5F",
				PostalCode: "1500043", Lat: 35.6586, Lng: 139.6989,
				FormattedAddress: "東京都渋谷区道玄坂二丁目24-1", Provenance: models.ProvenanceNormalizedOnly,
			},
		},
		{
			name:         "geocode enhances missing coordinates",
			normalized:   normalized(nil),
			geocode:      &models.GeocodeResult{Lat: 35.6590, Lng: 139.6990, FormattedAddress: "日本、東京都渋谷区道玄坂2丁目24-1"},
			callsGeocode: true,
			base:         dogenzakaBase,
			expected: &models.ResolvedAddress{
				Prefecture: "東京都", City: "渋谷区", Town: "道玄坂二丁目", Street: "24-1", Building: "渋谷ビル5F",
				PostalCode: "1500043", Lat: 35.6590, Lng: 139.6990,
				FormattedAddress: "日本、東京都渋谷区道玄坂2丁目24-1", Provenance: models.ProvenanceGeocodeEnhanced,
			},
		},
		{
			name:         "postal coordinates as last resort",
			normalized:   normalized(nil),
			geocode:      nil,
			callsGeocode: true,
			base:         dogenzakaBase,
			expected: &models.ResolvedAddress{
				Prefecture: "東京都", City: "渋谷区", Town: "道玄坂二丁目", Street: "24-1", Building: "渋谷ビル5F",
				PostalCode: "1500043", Lat: 35.6579, Lng: 139.6966,
				FormattedAddress: "東京都渋谷区道玄坂二丁目24-1", Provenance: models.ProvenancePostalFallback,
			},
		},
		{
			name:         "geocode failure falls through to postal",
			normalized:   normalized(nil),
			geocodeErr:   assert.AnError,
			callsGeocode: true,
			base:         dogenzakaBase,
			expected: &models.ResolvedAddress{
				Prefecture: "東京都", City: "渋谷区", Town: "道玄坂二丁目", Street: "24-1", Building: "渋谷ビル5F",
				PostalCode: "1500043", Lat: 35.6579, Lng: 139.6966,
				FormattedAddress: "東京都渋谷区道玄坂二丁目24-1", Provenance: models.ProvenancePostalFallback,
			},
		},
		{
			name:         "no coordinates anywhere",
			normalized:   normalized(nil),
			callsGeocode: true,
			base:         models.AddressCandidate{PostalCode: "1500043", CombinedLabel: "東京都渋谷区道玄坂"},
			expectError:  ErrPositionNotFound,
		},
		{
			name:         "partial postal location is not a fallback",
			normalized:   normalized(nil),
			callsGeocode: true,
			base:         models.AddressCandidate{PostalCode: "1500043", CombinedLabel: "東京都渋谷区道玄坂", Lat: 35.66},
			expectError:  ErrPositionNotFound,
		},
		{
			name:         "normalizer failure aborts",
			normalized:   nil,
			normalizeErr: &models.UpstreamError{Service: "address normalizer", StatusCode: 503, Message: "maintenance"},
			base:         dogenzakaBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNormalizer := new(MockAddressNormalizer)
			mockGeocoder := new(MockGeocoder)
			service := NewAddressService(mockNormalizer, mockGeocoder)

			mockNormalizer.On("NormalizeAddress", mock.Anything, query).Return(tt.normalized, tt.normalizeErr)
			if tt.callsGeocode {
				mockGeocoder.On("Geocode", mock.Anything, "東京都渋谷区道玄坂二丁目24-1").Return(tt.geocode, tt.geocodeErr)
			}

			result, err := service.ResolveFromPostal(context.Background(), tt.base, "２−２４−１", "渋谷ビル５F")

			switch {
			case tt.normalizeErr != nil:
				var upstream *models.UpstreamError
				require.True(t, errors.As(err, &upstream))
				assert.Equal(t, "maintenance", upstream.Message)
				assert.Nil(t, result)
			case tt.expectError != nil:
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockNormalizer.AssertExpectations(t)
			mockGeocoder.AssertExpectations(t)
			if !tt.callsGeocode {
				mockGeocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAddressService_ResolveManual(t *testing.T) {
	t.Run("empty address rejected before any call", func(t *testing.T) {
		mockNormalizer := new(MockAddressNormalizer)
		service := NewAddressService(mockNormalizer, nil)

		_, err := service.ResolveManual(context.Background(), "   ", "ビル")
		assert.ErrorIs(t, err, ErrEmptyAddress)
		mockNormalizer.AssertNotCalled(t, "NormalizeAddress", mock.Anything, mock.Anything)
	})

	t.Run("geocode enhanced", func(t *testing.T) {
		mockNormalizer := new(MockAddressNormalizer)
		mockGeocoder := new(MockGeocoder)
		service := NewAddressService(mockNormalizer, mockGeocoder)

		mockNormalizer.On("NormalizeAddress", mock.Anything, "東京都渋谷区道玄坂2-24-1").Return(normalized(nil), nil)
		mockGeocoder.On("Geocode", mock.Anything, "東京都渋谷区道玄坂二丁目24-1").
			Return(&models.GeocodeResult{Lat: 35.659, Lng: 139.699}, nil)

		result, err := service.ResolveManual(context.Background(), "東京都渋谷区道玄坂２−２４−１", "")
		require.NoError(t, err)
		assert.Equal(t, models.ProvenanceGeocodeEnhanced, result.Provenance)
		assert.Equal(t, "東京都渋谷区道玄坂二丁目24-1", result.FormattedAddress)
		assert.Empty(t, result.PostalCode)
	})

	t.Run("no fallback without postal candidate", func(t *testing.T) {
		mockNormalizer := new(MockAddressNormalizer)
		mockGeocoder := new(MockGeocoder)
		service := NewAddressService(mockNormalizer, mockGeocoder)

		mockNormalizer.On("NormalizeAddress", mock.Anything, "東京都渋谷区道玄坂2-24-1").Return(normalized(nil), nil)
		mockGeocoder.On("Geocode", mock.Anything, mock.Anything).Return((*models.GeocodeResult)(nil), nil)

		result, err := service.ResolveManual(context.Background(), "東京都渋谷区道玄坂2-24-1", "")
		assert.ErrorIs(t, err, ErrPositionNotFound)
		assert.Nil(t, result)
	})

	t.Run("nil geocoder skips straight to failure", func(t *testing.T) {
		mockNormalizer := new(MockAddressNormalizer)
		service := NewAddressService(mockNormalizer, nil)

		mockNormalizer.On("NormalizeAddress", mock.Anything, "どこか").Return(&models.NormalizedAddress{}, nil)

		_, err := service.ResolveManual(context.Background(), "どこか", "")
		assert.ErrorIs(t, err, ErrPositionNotFound)
	})
}

func TestAddressService_PartialNormalizerCoordinatesFallThrough(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		geocode  *models.GeocodeResult
		expected *models.ResolvedAddress
	}{
		{
			name:    "latitude only reaches the geocoder",
			body:    `{"pref":"東京都","city":"渋谷区","town":"渋谷","addr":"2-21-1","fullAddress":"東京都渋谷区渋谷2-21-1","coordinates":{"lat":35.659}}`,
			geocode: &models.GeocodeResult{Lat: 35.6590, Lng: 139.7036},
			expected: &models.ResolvedAddress{
				Prefecture: "東京都", City: "渋谷区", Town: "渋谷", Street: "2-21-1",
				Lat: 35.6590, Lng: 139.7036,
				FormattedAddress: "東京都渋谷区渋谷2-21-1", Provenance: models.ProvenanceGeocodeEnhanced,
			},
		},
		{
			name: "empty object with geocoder miss fails",
			body: `{"pref":"東京都","city":"渋谷区","town":"渋谷","addr":"2-21-1","fullAddress":"東京都渋谷区渋谷2-21-1","coordinates":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			mockGeocoder := new(MockGeocoder)
			mockGeocoder.On("Geocode", mock.Anything, "東京都渋谷区渋谷2-21-1").Return(tt.geocode, nil).Once()
			service := NewAddressService(client.NewNormalizerClient(srv.URL, srv.Client()), mockGeocoder)

			result, err := service.ResolveManual(context.Background(), "東京都渋谷区渋谷2-21-1", "")
			if tt.expected == nil {
				assert.ErrorIs(t, err, ErrPositionNotFound)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockGeocoder.AssertExpectations(t)
		})
	}
}
