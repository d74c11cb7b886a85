package main

import (
	"context"
	"log/slog"

	"github.com/curiocity/curiocity-api/internal/domain/location"
	"github.com/curiocity/curiocity-api/internal/llm"
	"github.com/curiocity/curiocity-api/internal/providers"
	"github.com/curiocity/curiocity-api/internal/providers/foursquare"
	"github.com/curiocity/curiocity-api/internal/providers/newsdata"
	"github.com/curiocity/curiocity-api/internal/providers/nominatim"
	"github.com/curiocity/curiocity-api/internal/providers/opentripmap"
	"github.com/curiocity/curiocity-api/internal/providers/overpass"
	"github.com/curiocity/curiocity-api/internal/providers/wikipedia"
	"github.com/curiocity/curiocity-api/pkg/config"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Provider clients
	Nominatim   *nominatim.Client
	NewsData    *newsdata.Client
	OpenTripMap *opentripmap.Client
	Foursquare  *foursquare.Client
	Overpass    *overpass.Client
	Wikipedia   *wikipedia.Client
	AIClient    llm.ChatClient

	// Services
	LocationService location.Service

	// Handlers
	LocationHandler *location.Handler
}

// InitDependencies initializes all application dependencies.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.initProviders(ctx)
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initProviders initializes the upstream provider clients.
func (d *Dependencies) initProviders(ctx context.Context) {
	p := d.Config.Providers
	httpClient := providers.NewClient(providers.Options{
		UserAgent:          p.UserAgent,
		RequestTimeout:     p.RequestTimeout,
		MaxRetries:         p.MaxRetries,
		RateLimitPerSecond: p.RateLimitPerSecond,
		RateLimitBurst:     p.RateLimitBurst,
	}, d.Logger)

	d.Nominatim = nominatim.NewClient(p.Nominatim.BaseURL, httpClient, d.Logger)
	d.NewsData = newsdata.NewClient(p.NewsData.BaseURL, p.NewsData.APIKey, httpClient, d.Logger)
	d.OpenTripMap = opentripmap.NewClient(p.OpenTripMap.BaseURL, p.OpenTripMap.APIKey, httpClient, d.Logger)
	d.Foursquare = foursquare.NewClient(p.Foursquare.BaseURL, p.Foursquare.APIKey, httpClient, d.Logger)
	d.Overpass = overpass.NewClient(p.Overpass.BaseURL, httpClient, d.Logger)
	d.Wikipedia = wikipedia.NewClient(p.Wikipedia.BaseURL, httpClient, d.Logger)

	if d.Config.LLM.GeminiAPIKey != "" {
		aiClient, err := llm.NewGeminiChatClient(ctx, d.Config.LLM.GeminiAPIKey, d.Config.LLM.Model)
		if err != nil {
			// History generation degrades to the templated fallback.
			d.Logger.Error("failed to initialize AI client", slog.Any("error", err))
		} else {
			d.AIClient = aiClient
		}
	} else {
		d.Logger.Warn("GEMINI_API_KEY not set; history generation disabled")
	}

	d.Logger.Info("provider clients initialized")
}

// initServices initializes the service layer.
func (d *Dependencies) initServices() {
	d.LocationService = location.NewService(
		d.Nominatim,
		d.NewsData,
		d.OpenTripMap,
		d.Foursquare,
		d.Overpass,
		d.Wikipedia,
		d.AIClient,
		location.Config{
			SearchRadiusMeters: d.Config.Location.SearchRadiusMeters,
			CacheTTL:           d.Config.Location.CacheTTL,
			CacheCleanup:       d.Config.Location.CacheCleanup,
		},
		d.Logger,
	)
	d.Logger.Info("services initialized")
}

// initHandlers initializes the HTTP handlers.
func (d *Dependencies) initHandlers() {
	d.LocationHandler = location.NewHandler(d.LocationService, d.Logger)
	d.Logger.Info("handlers initialized")
}
