package handler

import (
	"net/http"
	"time"

	"shop-location-api/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every route handler. Geocode is nil when no PostGIS
// geocoder is configured.
type Handlers struct {
	Geocode  *GeoCodeHandler
	Postal   *PostalHandler
	Address  *AddressHandler
	Stations *StationHandler
	Sessions *SessionHandler
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	corsConfig := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if h.Geocode != nil {
		r.GET("/geocode", h.Geocode.GeoCode)
	}
	r.GET("/postal-codes/:code", h.Postal.Lookup)
	r.POST("/addresses/resolve", h.Address.Resolve)
	r.GET("/stations/nearby", h.Stations.Nearby)
	r.GET("/stations/search", h.Stations.Search)

	s := r.Group("/sessions")
	{
		s.POST("", h.Sessions.Create)
		s.GET("/:id", h.Sessions.Get)
		s.DELETE("/:id", h.Sessions.Delete)

		s.PUT("/:id/postal-code", h.Sessions.InputPostalCode)
		s.POST("/:id/base-address", h.Sessions.SelectBaseAddress)
		s.DELETE("/:id/base-address", h.Sessions.ResetBaseAddress)
		s.POST("/:id/address", h.Sessions.ResolveAddress)
		s.POST("/:id/address/manual", h.Sessions.ResolveManual)

		s.POST("/:id/stations/nearby", h.Sessions.FetchNearby)
		s.PUT("/:id/station-keyword", h.Sessions.InputKeyword)
		s.POST("/:id/main", h.Sessions.SelectMain)
		s.POST("/:id/subs", h.Sessions.AddSub)
		s.DELETE("/:id/subs/:stationId", h.Sessions.RemoveSub)
		s.POST("/:id/stations/reset", h.Sessions.ResetStations)
		s.GET("/:id/stations/addable", h.Sessions.Addable)
		s.GET("/:id/submission", h.Sessions.Submission)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}
