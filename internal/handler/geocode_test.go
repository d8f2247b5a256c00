package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-location-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGeoCodeHandler_GeoCode(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockResult     *models.GeocodeResult
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:  "successful geocoding",
			query: "東京都千代田区丸の内",
			mockResult: &models.GeocodeResult{
				Lat:              35.681236,
				Lng:              139.767125,
				FormattedAddress: "東京都千代田区丸の内1-9-1",
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"lat":               35.681236,
				"lng":               139.767125,
				"formatted_address": "東京都千代田区丸の内1-9-1",
			},
		},
		{
			name:           "no match",
			query:          "nonexistent address",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   map[string]interface{}{"error": "position not found for address"},
		},
		{
			name:           "service error",
			query:          "東京都千代田区丸の内",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockGeoCodeService)
			handler := NewGeoCodeHandler(mockSvc)

			if tt.query != "" {
				mockSvc.On("Geocode", mock.Anything, tt.query).Return(tt.mockResult, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("q", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.GeoCode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			if tt.query != "" {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}
