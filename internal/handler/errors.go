package handler

import (
	"errors"
	"net/http"

	"shop-location-api/internal/models"
	"shop-location-api/internal/service"
	"shop-location-api/internal/session"
	"shop-location-api/internal/station"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidPostalCode, http.StatusBadRequest},
	{service.ErrEmptyAddress, http.StatusBadRequest},
	{service.ErrKeywordTooShort, http.StatusBadRequest},
	{service.ErrInvalidCoordinates, http.StatusBadRequest},
	{session.ErrCandidateIndex, http.StatusBadRequest},

	{session.ErrSessionNotFound, http.StatusNotFound},
	{session.ErrCandidateNotFound, http.StatusNotFound},

	// ErrIncomplete wraps the missing piece, so it must match first.
	{session.ErrIncomplete, http.StatusUnprocessableEntity},
	{service.ErrPositionNotFound, http.StatusUnprocessableEntity},

	{station.ErrSameAsMain, http.StatusConflict},
	{station.ErrAlreadySelected, http.StatusConflict},
	{station.ErrMaxSubStations, http.StatusConflict},
	{station.ErrMainNotSelected, http.StatusConflict},
	{session.ErrNoBaseAddress, http.StatusConflict},
	{session.ErrNoCoordinates, http.StatusConflict},
}

const upstreamFailureMessage = "external service is unavailable"

// respondError maps an error to a status code and a user-facing message.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}

	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		log.Warn().Err(err).Str("upstream", upstream.Service).Int("upstream_status", upstream.StatusCode).Msg("upstream failure")
		msg := upstream.Message
		if msg == "" {
			msg = upstreamFailureMessage
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
