package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress      string `mapstructure:"SERVER_ADDRESS"`
	DBSource           string `mapstructure:"DB_SOURCE"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogPretty          bool   `mapstructure:"LOG_PRETTY"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	PostalLookupURL     string        `mapstructure:"POSTAL_LOOKUP_URL"`
	AddressNormalizeURL string        `mapstructure:"ADDRESS_NORMALIZE_URL"`
	GeocodeURL          string        `mapstructure:"GEOCODE_URL"`
	StationAPIURL       string        `mapstructure:"STATION_API_URL"`
	HTTPClientTimeout   time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`

	GeocodeProvider string `mapstructure:"GEOCODE_PROVIDER"`
	StationProvider string `mapstructure:"STATION_PROVIDER"`

	CacheDriver string        `mapstructure:"CACHE_DRIVER"`
	CacheSize   int           `mapstructure:"CACHE_SIZE"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL"`
	RedisURL    string        `mapstructure:"REDIS_URL"`

	SessionMax      int           `mapstructure:"SESSION_MAX"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	PostalDebounce  time.Duration `mapstructure:"POSTAL_DEBOUNCE"`
	KeywordDebounce time.Duration `mapstructure:"KEYWORD_DEBOUNCE"`
}

const (
	ProviderHTTP     = "http"
	ProviderPostgres = "postgres"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Every key gets a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	for _, key := range []string{"DB_SOURCE", "POSTAL_LOOKUP_URL", "ADDRESS_NORMALIZE_URL", "GEOCODE_URL", "STATION_API_URL", "REDIS_URL"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", 10*time.Second)
	v.SetDefault("GEOCODE_PROVIDER", ProviderHTTP)
	v.SetDefault("STATION_PROVIDER", ProviderHTTP)
	v.SetDefault("CACHE_DRIVER", CacheMemory)
	v.SetDefault("CACHE_SIZE", 4096)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
	v.SetDefault("SESSION_MAX", 10000)
	v.SetDefault("SESSION_TTL", 2*time.Hour)
	v.SetDefault("POSTAL_DEBOUNCE", 600*time.Millisecond)
	v.SetDefault("KEYWORD_DEBOUNCE", 500*time.Millisecond)
}

// LoadConfig reads configuration from app.env under path, then from the
// environment. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	err = config.Validate()
	return config, err
}

// Validate checks provider selections and their required settings.
func (c Config) Validate() error {
	switch c.GeocodeProvider {
	case ProviderHTTP:
		if c.GeocodeURL == "" {
			return fmt.Errorf("config: GEOCODE_URL is required for provider %q", c.GeocodeProvider)
		}
	case ProviderPostgres:
		if c.DBSource == "" {
			return fmt.Errorf("config: DB_SOURCE is required for provider %q", c.GeocodeProvider)
		}
	default:
		return fmt.Errorf("config: unknown GEOCODE_PROVIDER %q", c.GeocodeProvider)
	}

	switch c.StationProvider {
	case ProviderHTTP:
		if c.StationAPIURL == "" {
			return fmt.Errorf("config: STATION_API_URL is required for provider %q", c.StationProvider)
		}
	case ProviderPostgres:
		if c.DBSource == "" {
			return fmt.Errorf("config: DB_SOURCE is required for provider %q", c.StationProvider)
		}
	default:
		return fmt.Errorf("config: unknown STATION_PROVIDER %q", c.StationProvider)
	}

	switch c.CacheDriver {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for cache driver %q", c.CacheDriver)
		}
	default:
		return fmt.Errorf("config: unknown CACHE_DRIVER %q", c.CacheDriver)
	}

	if c.PostalLookupURL == "" {
		return fmt.Errorf("config: POSTAL_LOOKUP_URL is required")
	}
	if c.AddressNormalizeURL == "" {
		return fmt.Errorf("config: ADDRESS_NORMALIZE_URL is required")
	}

	return nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// NeedsDatabase reports whether any provider is backed by PostgreSQL.
func (c Config) NeedsDatabase() bool {
	return c.GeocodeProvider == ProviderPostgres || c.StationProvider == ProviderPostgres
}
