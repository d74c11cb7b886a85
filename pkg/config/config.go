package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Environment   string
	Server        ServerConfig
	Providers     ProvidersConfig
	LLM           LLMConfig
	Location      LocationConfig
	Observability ObservabilityConfig
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
	CorsOrigins        []string
}

// ProviderConfig holds one upstream data provider's endpoint and credentials.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

// ProvidersConfig holds configuration for all upstream data providers.
type ProvidersConfig struct {
	NewsData    ProviderConfig
	OpenTripMap ProviderConfig
	Foursquare  ProviderConfig
	Nominatim   ProviderConfig
	Overpass    ProviderConfig
	Wikipedia   ProviderConfig

	UserAgent          string
	RequestTimeout     time.Duration
	MaxRetries         int
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// LLMConfig holds the text-generation configuration.
type LLMConfig struct {
	GeminiAPIKey string
	Model        string
}

// LocationConfig holds aggregation tunables.
type LocationConfig struct {
	SearchRadiusMeters int
	CacheTTL           time.Duration
	CacheCleanup       time.Duration
}

// ObservabilityConfig holds logging and metrics configuration.
type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool
}

// Load reads configuration from the environment, with a best-effort .env load
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			Port:               getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:        getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:       getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout:    getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimitPerSecond: getEnvInt("SERVER_RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getEnvInt("SERVER_RATE_LIMIT_BURST", 40),
			CorsOrigins:        getEnvSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Providers: ProvidersConfig{
			NewsData: ProviderConfig{
				BaseURL: getEnv("NEWSDATA_BASE_URL", "https://newsdata.io/api/1/news"),
				APIKey:  os.Getenv("NEWSDATA_API_KEY"),
			},
			OpenTripMap: ProviderConfig{
				BaseURL: getEnv("OPENTRIPMAP_BASE_URL", "https://api.opentripmap.com/0.1/en/places"),
				APIKey:  os.Getenv("OPENTRIPMAP_API_KEY"),
			},
			Foursquare: ProviderConfig{
				BaseURL: getEnv("FOURSQUARE_BASE_URL", "https://api.foursquare.com/v3/places/search"),
				APIKey:  os.Getenv("FOURSQUARE_API_KEY"),
			},
			Nominatim: ProviderConfig{
				BaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			},
			Overpass: ProviderConfig{
				BaseURL: getEnv("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter"),
			},
			Wikipedia: ProviderConfig{
				BaseURL: getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org/api/rest_v1"),
			},
			UserAgent:          getEnv("PROVIDER_USER_AGENT", "CurioCity/1.0 (city discovery backend)"),
			RequestTimeout:     getEnvDuration("PROVIDER_REQUEST_TIMEOUT", 10*time.Second),
			MaxRetries:         getEnvInt("PROVIDER_MAX_RETRIES", 2),
			RateLimitPerSecond: getEnvFloat("PROVIDER_RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getEnvInt("PROVIDER_RATE_LIMIT_BURST", 10),
		},
		LLM: LLMConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Location: LocationConfig{
			SearchRadiusMeters: getEnvInt("LOCATION_SEARCH_RADIUS_METERS", 10000),
			CacheTTL:           getEnvDuration("LOCATION_CACHE_TTL", 5*time.Minute),
			CacheCleanup:       getEnvDuration("LOCATION_CACHE_CLEANUP", 10*time.Minute),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
