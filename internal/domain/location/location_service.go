package location

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/curiocity/curiocity-api/internal/llm"
	"github.com/curiocity/curiocity-api/internal/providers"
	"github.com/curiocity/curiocity-api/internal/providers/foursquare"
	"github.com/curiocity/curiocity-api/internal/providers/opentripmap"
	"github.com/curiocity/curiocity-api/internal/providers/overpass"
	"github.com/curiocity/curiocity-api/internal/types"
	"github.com/curiocity/curiocity-api/pkg/observability"
)

var _ Service = (*ServiceImpl)(nil)

// Geocoder resolves coordinates or free text to place identities.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]types.PlaceCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (*types.Address, error)
}

// NewsProvider fetches recent articles about a location.
type NewsProvider interface {
	LatestNews(ctx context.Context, locationName string, size int) ([]types.NewsArticle, error)
}

// PlacesProvider runs kinds-filtered radius queries.
type PlacesProvider interface {
	PlacesByRadius(ctx context.Context, lat, lon float64, radiusMeters, limit int, kinds string) ([]opentripmap.Place, error)
}

// RestaurantSearchProvider is the curated place search used for restaurants.
type RestaurantSearchProvider interface {
	SearchNear(ctx context.Context, locationName, categoryID string, limit int) ([]foursquare.Place, error)
}

// WorshipProvider runs the bounding-box place-of-worship query.
type WorshipProvider interface {
	PlacesOfWorship(ctx context.Context, lat, lon, delta float64) ([]overpass.Element, error)
}

// SummaryProvider fetches encyclopedia summaries.
type SummaryProvider interface {
	PageSummary(ctx context.Context, title string) (*types.PageSummary, error)
}

// Service is the location aggregation contract exposed to the HTTP layer.
type Service interface {
	// Aggregate fans out to every data source for a resolved location and
	// assembles one record. It never fails: total provider outage still
	// yields a valid record with empty collections.
	Aggregate(ctx context.Context, locationName string, lat, lon float64) *types.LocationRecord
	// ResolveCoordinates reverse-geocodes a device fix and aggregates for it.
	ResolveCoordinates(ctx context.Context, lat, lon float64) (*types.LocationRecord, error)
	// Search forward-geocodes a free-text query into candidates.
	Search(ctx context.Context, query string) ([]types.PlaceCandidate, error)
	// DefaultLocation returns the static bootstrap record.
	DefaultLocation() *types.LocationRecord
	// DefaultLocationWithLiveData enriches the bootstrap record with live
	// data when possible.
	DefaultLocationWithLiveData(ctx context.Context) *types.LocationRecord
}

// ServiceImpl aggregates location data from the upstream providers.
type ServiceImpl struct {
	logger       *slog.Logger
	geocoder     Geocoder
	news         NewsProvider
	places       PlacesProvider
	restaurants  RestaurantSearchProvider
	worship      WorshipProvider
	summaries    SummaryProvider
	aiClient     llm.ChatClient
	cache        *cache.Cache
	radiusMeters int
}

// Config carries the aggregation tunables.
type Config struct {
	SearchRadiusMeters int
	CacheTTL           time.Duration
	CacheCleanup       time.Duration
}

// NewService wires a location service from its providers. aiClient may be nil
// when no Gemini key is configured; history generation then always falls back
// to the templated sentence.
func NewService(
	geocoder Geocoder,
	news NewsProvider,
	places PlacesProvider,
	restaurants RestaurantSearchProvider,
	worship WorshipProvider,
	summaries SummaryProvider,
	aiClient llm.ChatClient,
	cfg Config,
	logger *slog.Logger,
) *ServiceImpl {
	radius := cfg.SearchRadiusMeters
	if radius <= 0 {
		radius = 10000
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cleanup := cfg.CacheCleanup
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &ServiceImpl{
		logger:       logger,
		geocoder:     geocoder,
		news:         news,
		places:       places,
		restaurants:  restaurants,
		worship:      worship,
		summaries:    summaries,
		aiClient:     aiClient,
		cache:        cache.New(ttl, cleanup),
		radiusMeters: radius,
	}
}

const aggregateWorkerCount = 8

// Aggregate issues one independent request per source adapter, all
// concurrently, waits for every branch to settle, and assembles the record
// from whatever succeeded. A failed branch contributes an empty collection;
// it never cancels or corrupts its siblings.
func (s *ServiceImpl) Aggregate(ctx context.Context, locationName string, lat, lon float64) *types.LocationRecord {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "Aggregate", trace.WithAttributes(
		attribute.String("location.name", locationName),
		attribute.Float64("location.lat", lat),
		attribute.Float64("location.lon", lon),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Aggregate"), slog.String("location", locationName))

	cacheKey := dedupeKey(locationName, lat, lon)
	if cached, found := s.cache.Get(cacheKey); found {
		if record, ok := cached.(*types.LocationRecord); ok {
			observability.AggregationsTotal.WithLabelValues("cache_hit").Inc()
			span.SetStatus(codes.Ok, "Served from cache")
			return record
		}
	}

	resultCh := make(chan categoryResult, aggregateWorkerCount)
	var wg sync.WaitGroup
	wg.Add(aggregateWorkerCount)

	go s.newsWorker(&wg, ctx, locationName, resultCh)
	go s.placesToVisitWorker(&wg, ctx, lat, lon, resultCh)
	go s.restaurantsWorker(&wg, ctx, locationName, lat, lon, resultCh)
	go s.holyPlacesWorker(&wg, ctx, lat, lon, resultCh)
	go s.accommodationWorker(&wg, ctx, lat, lon, resultCh)
	go s.servicesWorker(&wg, ctx, lat, lon, resultCh)
	go s.summaryWorker(&wg, ctx, locationName, resultCh)
	go s.historyWorker(&wg, ctx, locationName, resultCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	record := &types.LocationRecord{
		Name:          locationName,
		Coordinates:   types.Coordinates{Latitude: lat, Longitude: lon},
		News:          []types.NewsArticle{},
		PlacesToVisit: []types.PlaceEntity{},
		Restaurants:   []types.PlaceEntity{},
		HolyPlaces:    []types.PlaceEntity{},
		Accommodation: []types.PlaceEntity{},
		Services:      []types.PlaceEntity{},
	}

	var summary *types.PageSummary
	for result := range resultCh {
		switch result.kind {
		case kindNews:
			record.News = result.news
		case kindPlacesToVisit:
			record.PlacesToVisit = result.places
		case kindRestaurants:
			record.Restaurants = result.places
		case kindHolyPlaces:
			record.HolyPlaces = result.places
		case kindAccommodation:
			record.Accommodation = result.places
		case kindServices:
			record.Services = result.places
		case kindSummary:
			summary = result.summary
		case kindHistory:
			record.History = result.history
		}
	}

	record.Description = descriptionFallback(locationName)
	record.FullDescription = fullDescriptionFallback(locationName)
	if summary != nil {
		record.Description = summary.Description
		record.FullDescription = summary.FullDescription
		record.Thumbnail = summary.Thumbnail
		record.EncyclopediaURL = summary.PageURL
	}
	if record.History == "" {
		record.History = historyFallback(locationName)
	}

	record.HasRealData = true
	record.LastUpdated = time.Now().UTC()

	s.cache.Set(cacheKey, record, cache.DefaultExpiration)
	observability.AggregationsTotal.WithLabelValues("aggregated").Inc()

	l.InfoContext(ctx, "aggregation completed",
		slog.Int("news", len(record.News)),
		slog.Int("places_to_visit", len(record.PlacesToVisit)),
		slog.Int("restaurants", len(record.Restaurants)),
		slog.Int("holy_places", len(record.HolyPlaces)),
		slog.Int("accommodation", len(record.Accommodation)),
		slog.Int("services", len(record.Services)))
	span.SetAttributes(attribute.Int("places_to_visit.count", len(record.PlacesToVisit)))
	span.SetStatus(codes.Ok, "Location aggregated")

	return record
}

// ResolveCoordinates turns a device fix into a full location record. The only
// error it surfaces is failure to resolve the position itself; category data
// failures degrade to empty collections inside Aggregate.
func (s *ServiceImpl) ResolveCoordinates(ctx context.Context, lat, lon float64) (*types.LocationRecord, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "ResolveCoordinates", trace.WithAttributes(
		attribute.Float64("location.lat", lat),
		attribute.Float64("location.lon", lon),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ResolveCoordinates"))

	if !providers.ValidCoordinates(lat, lon) {
		span.SetStatus(codes.Error, "Invalid coordinates")
		return nil, types.ErrBadRequest
	}

	address, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		l.ErrorContext(ctx, "reverse geocoding failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Reverse geocoding failed")
		return nil, fmt.Errorf("%w: %v", types.ErrNoLocation, err)
	}
	if address == nil {
		l.WarnContext(ctx, "reverse geocoder returned no result")
		span.SetStatus(codes.Error, "No geocoding result")
		return nil, types.ErrNoLocation
	}

	record := s.Aggregate(ctx, address.City, lat, lon)

	// Copy before enriching: the aggregate record may be shared via cache.
	enriched := *record
	enriched.Region = address.Region
	enriched.Country = address.Country
	enriched.FormattedAddress = address.FormattedAddress

	span.SetStatus(codes.Ok, "Location resolved")
	return &enriched, nil
}

// Search forward-geocodes a free-text query. Empty-query validation is the
// caller's responsibility.
func (s *ServiceImpl) Search(ctx context.Context, query string) ([]types.PlaceCandidate, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("query", query),
	))
	defer span.End()

	candidates, err := s.geocoder.Search(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "location search failed",
			slog.String("query", query), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search failed")
		return nil, fmt.Errorf("searching locations: %w", err)
	}

	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
	span.SetStatus(codes.Ok, "Search completed")
	return candidates, nil
}
