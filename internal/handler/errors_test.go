package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-location-api/internal/models"
	"shop-location-api/internal/service"
	"shop-location-api/internal/session"
	"shop-location-api/internal/station"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid postal code", fmt.Errorf("service: %w: got 6", service.ErrInvalidPostalCode), http.StatusBadRequest, service.ErrInvalidPostalCode.Error()},
		{"session not found", fmt.Errorf("session: %w: x", session.ErrSessionNotFound), http.StatusNotFound, session.ErrSessionNotFound.Error()},
		{"incomplete wins over its cause", fmt.Errorf("session: %w: %w", session.ErrIncomplete, session.ErrNoCoordinates), http.StatusUnprocessableEntity, session.ErrIncomplete.Error()},
		{"no coordinates", fmt.Errorf("session: %w", session.ErrNoCoordinates), http.StatusConflict, session.ErrNoCoordinates.Error()},
		{"max subs", fmt.Errorf("session: %w", station.ErrMaxSubStations), http.StatusConflict, station.ErrMaxSubStations.Error()},
		{"upstream with message", &models.UpstreamError{Service: "address normalizer", StatusCode: 400, Message: "住所が不正です"}, http.StatusBadGateway, "住所が不正です"},
		{"upstream without message", &models.UpstreamError{Service: "geocoder", StatusCode: 500}, http.StatusBadGateway, upstreamFailureMessage},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode[map[string]string](t, w)["error"])
		})
	}
}
