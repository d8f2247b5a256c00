package handler

import (
	"context"
	"net/http"

	"shop-location-api/internal/models"

	"github.com/gin-gonic/gin"
)

// StationService fetches grouped station candidates.
type StationService interface {
	Nearby(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error)
	Search(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error)
}

type StationHandler struct {
	service StationService
}

func NewStationHandler(svc StationService) *StationHandler {
	return &StationHandler{service: svc}
}

type nearbyParams struct {
	Lat         *float64 `form:"lat" binding:"required,latitude"`
	Lng         *float64 `form:"lng" binding:"required,longitude"`
	MaxStations int      `form:"max_stations" binding:"omitempty,min=1,max=50"`
	MaxDistance float64  `form:"max_distance" binding:"omitempty,gt=0,max=20"`
}

type searchParams struct {
	Keyword string `form:"keyword" binding:"required"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Nearby handles GET /stations/nearby
//
//	@Summary	Stations near a point
//	@Tags		stations
//	@Produce	json
//	@Param		lat				query		number	true	"latitude"
//	@Param		lng				query		number	true	"longitude"
//	@Param		max_stations	query		int		false	"default 10"
//	@Param		max_distance	query		number	false	"km, default 3"
//	@Success	200				{array}		models.GroupedStationCandidate
//	@Failure	400				{object}	map[string]string
//	@Failure	502				{object}	map[string]string
//	@Router		/stations/nearby [get]
func (h *StationHandler) Nearby(c *gin.Context) {
	var p nearbyParams
	if err := c.ShouldBindQuery(&p); err != nil {
		respondBindError(c, err)
		return
	}

	candidates, err := h.service.Nearby(c.Request.Context(), models.NearbyQuery{
		Lat:           *p.Lat,
		Lng:           *p.Lng,
		MaxStations:   p.MaxStations,
		MaxDistanceKm: p.MaxDistance,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// Search handles GET /stations/search
//
//	@Summary	Stations by name
//	@Tags		stations
//	@Produce	json
//	@Param		keyword	query		string	true	"at least 2 characters"
//	@Param		limit	query		int		false	"default 30"
//	@Success	200		{array}		models.GroupedStationCandidate
//	@Failure	400		{object}	map[string]string
//	@Router		/stations/search [get]
func (h *StationHandler) Search(c *gin.Context) {
	var p searchParams
	if err := c.ShouldBindQuery(&p); err != nil {
		respondBindError(c, err)
		return
	}

	candidates, err := h.service.Search(c.Request.Context(), models.StationSearchQuery{Keyword: p.Keyword, Limit: p.Limit})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}
