package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/curiocity/curiocity-api/pkg/middleware"
)

// SetupRouter configures all routes and returns the HTTP handler.
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	registerLocationRoutes(mux, deps)
	registerUtilityRoutes(mux, deps)

	var limiter *rate.Limiter
	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter = rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
	}

	handler := middleware.Chain(mux,
		middleware.RequestID("X-Request-ID"),
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
		middleware.RateLimit(limiter),
	)

	// Enable CORS for the mobile client's development builds.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: deps.Config.Server.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	})

	return corsHandler.Handler(handler)
}

// registerLocationRoutes registers the location aggregation routes.
func registerLocationRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc("GET /v1/location/resolve", deps.LocationHandler.ResolveLocation)
	mux.HandleFunc("GET /v1/location/search", deps.LocationHandler.SearchLocations)
	mux.HandleFunc("GET /v1/location/details", deps.LocationHandler.LocationDetails)
	mux.HandleFunc("GET /v1/location/default", deps.LocationHandler.DefaultLocation)
	deps.Logger.Info("location routes configured")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes.
func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	if deps.Config.Observability.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
