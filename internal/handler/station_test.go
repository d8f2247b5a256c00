package handler

import (
	"fmt"
	"net/http"
	"testing"

	"shop-location-api/internal/models"
	"shop-location-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func stationRouter(svc StationService) *gin.Engine {
	h := NewStationHandler(svc)
	r := gin.New()
	r.GET("/stations/nearby", h.Nearby)
	r.GET("/stations/search", h.Search)
	return r
}

func TestStationHandler_Nearby(t *testing.T) {
	distance := 0.4
	minutes := 5
	shibuya := models.GroupedStationCandidate{
		GroupID:            1130205,
		RepresentativeName: "渋谷",
		Lines:              []models.StationLine{{StationID: 1130205, LineName: "JR山手線"}},
		DistanceKm:         &distance,
		WalkingMinutes:     &minutes,
	}

	tests := []struct {
		name           string
		target         string
		query          *models.NearbyQuery
		expectedStatus int
	}{
		{
			name:           "defaults left to the service",
			target:         "/stations/nearby?lat=35.658&lng=139.701",
			query:          &models.NearbyQuery{Lat: 35.658, Lng: 139.701},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit limits",
			target:         "/stations/nearby?lat=35.658&lng=139.701&max_stations=5&max_distance=1.5",
			query:          &models.NearbyQuery{Lat: 35.658, Lng: 139.701, MaxStations: 5, MaxDistanceKm: 1.5},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing lng",
			target:         "/stations/nearby?lat=35.658",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "latitude out of range",
			target:         "/stations/nearby?lat=135.0&lng=139.701",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too many stations",
			target:         "/stations/nearby?lat=35.658&lng=139.701&max_stations=500",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockStationService)
			if tt.query != nil {
				mockSvc.On("Nearby", mock.Anything, *tt.query).Return([]models.GroupedStationCandidate{shibuya}, nil).Once()
			}

			w := serve(stationRouter(mockSvc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				got := decode[[]models.GroupedStationCandidate](t, w)
				assert.Equal(t, []models.GroupedStationCandidate{shibuya}, got)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestStationHandler_Search(t *testing.T) {
	t.Run("passes the keyword through", func(t *testing.T) {
		mockSvc := new(MockStationService)
		mockSvc.On("Search", mock.Anything, models.StationSearchQuery{Keyword: "しぶ", Limit: 0}).
			Return([]models.GroupedStationCandidate{}, nil).Once()

		w := serve(stationRouter(mockSvc), http.MethodGet, "/stations/search?keyword=%E3%81%97%E3%81%B6", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("short keyword", func(t *testing.T) {
		mockSvc := new(MockStationService)
		mockSvc.On("Search", mock.Anything, models.StationSearchQuery{Keyword: "渋"}).
			Return(nil, fmt.Errorf("service: %w", service.ErrKeywordTooShort)).Once()

		w := serve(stationRouter(mockSvc), http.MethodGet, "/stations/search?keyword=%E6%B8%8B", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "keyword must be at least 2 characters", decode[map[string]string](t, w)["error"])
	})

	t.Run("missing keyword", func(t *testing.T) {
		mockSvc := new(MockStationService)

		w := serve(stationRouter(mockSvc), http.MethodGet, "/stations/search", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("backend failure", func(t *testing.T) {
		mockSvc := new(MockStationService)
		mockSvc.On("Search", mock.Anything, mock.Anything).
			Return(nil, &models.UpstreamError{Service: "station api", StatusCode: 503}).Once()

		w := serve(stationRouter(mockSvc), http.MethodGet, "/stations/search?keyword=shibuya", "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "external service is unavailable", decode[map[string]string](t, w)["error"])
	})
}
