package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-location-api/internal/cache"
	"shop-location-api/internal/client"
	"shop-location-api/internal/config"
	"shop-location-api/internal/handler"
	"shop-location-api/internal/logger"
	"shop-location-api/internal/repository"
	"shop-location-api/internal/service"
	"shop-location-api/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// @title			Shop Location API
// @version		1.0
// @description	Postal code lookup, address resolution and nearest station assignment for shop registration.
// @BasePath		/
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handler.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("cannot register validations")
	}

	// Database connection, only when a provider needs it
	var repo *repository.Repository
	if cfg.NeedsDatabase() {
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()
		repo = repository.NewRepository(conn)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	// Postal lookup with optional cache
	var postalLookup service.PostalLookup = client.NewPostalClient(cfg.PostalLookupURL, httpClient)
	switch cfg.CacheDriver {
	case config.CacheMemory:
		postalLookup = cache.NewCachedPostalLookup(postalLookup, cache.NewMemoryStore(cfg.CacheSize, cfg.CacheTTL))
	case config.CacheRedis:
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to redis")
		}
		defer store.Close()
		postalLookup = cache.NewCachedPostalLookup(postalLookup, store)
	}

	// Geocode fallback resolver
	var (
		geocoder       service.Geocoder
		geoCodeHandler *handler.GeoCodeHandler
	)
	switch cfg.GeocodeProvider {
	case config.ProviderPostgres:
		geoCodeService := service.NewGeoCodeService(repo)
		geocoder = geoCodeService
		geoCodeHandler = handler.NewGeoCodeHandler(geoCodeService)
	default:
		geocoder = client.NewGeocodeClient(cfg.GeocodeURL, httpClient)
	}

	// Station source
	var stationSource service.StationSource
	switch cfg.StationProvider {
	case config.ProviderPostgres:
		stationSource = repo
	default:
		stationSource = client.NewStationClient(cfg.StationAPIURL, httpClient)
	}

	// Initialize layers
	postalService := service.NewPostalService(postalLookup)
	addressService := service.NewAddressService(client.NewNormalizerClient(cfg.AddressNormalizeURL, httpClient), geocoder)
	stationService := service.NewStationService(stationSource)

	sessions := session.NewManager(ctx, session.Dependencies{
		Postal:   postalService,
		Address:  addressService,
		Stations: stationService,
	}, session.Options{
		PostalDebounce:  cfg.PostalDebounce,
		KeywordDebounce: cfg.KeywordDebounce,
		LookupTimeout:   cfg.HTTPClientTimeout,
	}, cfg.SessionMax, cfg.SessionTTL)

	r := handler.NewRouter(handler.Handlers{
		Geocode:  geoCodeHandler,
		Postal:   handler.NewPostalHandler(postalService),
		Address:  handler.NewAddressHandler(addressService),
		Stations: handler.NewStationHandler(stationService),
		Sessions: handler.NewSessionHandler(sessions),
	}, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).
			Str("geocode_provider", cfg.GeocodeProvider).
			Str("station_provider", cfg.StationProvider).
			Str("cache", cfg.CacheDriver).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
