package handler

import (
	"context"
	"net/http"

	"shop-location-api/internal/models"
	"shop-location-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService resolves an address to its best matching point.
type GeoCodeService interface {
	Geocode(context.Context, string) (*models.GeocodeResult, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
//
//	@Summary	Geocode an address
//	@Tags		geocode
//	@Produce	json
//	@Param		q	query		string	true	"address"
//	@Success	200	{object}	models.GeocodeResult
//	@Failure	400	{object}	map[string]string
//	@Failure	422	{object}	map[string]string
//	@Router		/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	result, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	if result == nil {
		respondError(c, service.ErrPositionNotFound)
		return
	}

	c.JSON(http.StatusOK, result)
}
