package location

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/curiocity/curiocity-api/internal/providers/foursquare"
	"github.com/curiocity/curiocity-api/internal/providers/opentripmap"
	"github.com/curiocity/curiocity-api/internal/providers/overpass"
	"github.com/curiocity/curiocity-api/internal/types"
)

// Result kinds emitted by the aggregation workers.
const (
	kindNews          = "news"
	kindPlacesToVisit = "places_to_visit"
	kindRestaurants   = "restaurants"
	kindHolyPlaces    = "holy_places"
	kindAccommodation = "accommodation"
	kindServices      = "services"
	kindSummary       = "summary"
	kindHistory       = "history"
)

// Per-category fetch limits, matching the upstream defaults.
const (
	newsPageSize       = 10
	attractionsLimit   = 15
	restaurantsLimit   = 20
	accommodationLimit = 25
	servicesLimit      = 50
)

// categoryResult carries one worker's outcome. Errors are resolved inside
// each worker (logged and converted to an empty payload), so a result value
// is always sent and the aggregator never inspects failures across branches.
type categoryResult struct {
	kind    string
	places  []types.PlaceEntity
	news    []types.NewsArticle
	summary *types.PageSummary
	history string
}

func (s *ServiceImpl) newsWorker(wg *sync.WaitGroup, ctx context.Context, locationName string, resultCh chan<- categoryResult) {
	defer wg.Done()

	articles, err := s.news.LatestNews(ctx, locationName, newsPageSize)
	if err != nil {
		s.logger.WarnContext(ctx, "news fetch failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindNews, news: []types.NewsArticle{}}
		return
	}
	resultCh <- categoryResult{kind: kindNews, news: articles}
}

// placesToVisitWorker queries the same provider twice with different category
// filters (general attractions vs cultural/historic sites) and concatenates
// both sets, tourist kinds first, before dedup.
func (s *ServiceImpl) placesToVisitWorker(wg *sync.WaitGroup, ctx context.Context, lat, lon float64, resultCh chan<- categoryResult) {
	defer wg.Done()

	var tourist, cultural []opentripmap.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		places, err := s.places.PlacesByRadius(gctx, lat, lon, s.radiusMeters, attractionsLimit, opentripmap.KindsTouristAttractions)
		if err != nil {
			s.logger.WarnContext(gctx, "tourist attractions fetch failed", slog.Any("error", err))
			return nil
		}
		tourist = places
		return nil
	})
	g.Go(func() error {
		places, err := s.places.PlacesByRadius(gctx, lat, lon, s.radiusMeters, attractionsLimit, opentripmap.KindsCulturalSites)
		if err != nil {
			s.logger.WarnContext(gctx, "cultural sites fetch failed", slog.Any("error", err))
			return nil
		}
		cultural = places
		return nil
	})
	_ = g.Wait()

	entities := make([]types.PlaceEntity, 0, len(tourist)+len(cultural))
	for _, p := range tourist {
		entities = append(entities, placeFromOpenTripMap(p, "Tourist Attraction"))
	}
	for _, p := range cultural {
		entities = append(entities, placeFromOpenTripMap(p, "Cultural Site"))
	}

	resultCh <- categoryResult{
		kind:   kindPlacesToVisit,
		places: dedupePlaces(entities, "Tourist Attraction", "Cultural Site"),
	}
}

// restaurantsWorker queries two independent providers in parallel and
// concatenates curated results first, so they win dedup collisions.
func (s *ServiceImpl) restaurantsWorker(wg *sync.WaitGroup, ctx context.Context, locationName string, lat, lon float64, resultCh chan<- categoryResult) {
	defer wg.Done()

	var curated []foursquare.Place
	var nearby []opentripmap.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		places, err := s.restaurants.SearchNear(gctx, locationName, foursquare.CategoryRestaurants, restaurantsLimit)
		if err != nil {
			s.logger.WarnContext(gctx, "foursquare restaurants fetch failed", slog.Any("error", err))
			return nil
		}
		curated = places
		return nil
	})
	g.Go(func() error {
		places, err := s.places.PlacesByRadius(gctx, lat, lon, s.radiusMeters, restaurantsLimit, opentripmap.KindsRestaurants)
		if err != nil {
			s.logger.WarnContext(gctx, "opentripmap restaurants fetch failed", slog.Any("error", err))
			return nil
		}
		nearby = places
		return nil
	})
	_ = g.Wait()

	entities := make([]types.PlaceEntity, 0, len(curated)+len(nearby))
	for _, p := range curated {
		entities = append(entities, restaurantFromFoursquare(p))
	}
	for _, p := range nearby {
		entities = append(entities, restaurantFromOpenTripMap(p))
	}

	resultCh <- categoryResult{kind: kindRestaurants, places: dedupePlaces(entities)}
}

func (s *ServiceImpl) holyPlacesWorker(wg *sync.WaitGroup, ctx context.Context, lat, lon float64, resultCh chan<- categoryResult) {
	defer wg.Done()

	elements, err := s.worship.PlacesOfWorship(ctx, lat, lon, overpass.DefaultBoxDelta)
	if err != nil {
		s.logger.WarnContext(ctx, "holy places fetch failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindHolyPlaces, places: []types.PlaceEntity{}}
		return
	}

	entities := make([]types.PlaceEntity, 0, len(elements))
	for _, e := range elements {
		entities = append(entities, holyPlaceFromOverpass(e))
	}
	resultCh <- categoryResult{kind: kindHolyPlaces, places: dedupePlaces(entities)}
}

func (s *ServiceImpl) accommodationWorker(wg *sync.WaitGroup, ctx context.Context, lat, lon float64, resultCh chan<- categoryResult) {
	defer wg.Done()

	places, err := s.places.PlacesByRadius(ctx, lat, lon, s.radiusMeters, accommodationLimit, opentripmap.KindsAccommodation)
	if err != nil {
		s.logger.WarnContext(ctx, "accommodation fetch failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindAccommodation, places: []types.PlaceEntity{}}
		return
	}

	entities := make([]types.PlaceEntity, 0, len(places))
	for _, p := range places {
		entities = append(entities, accommodationFromOpenTripMap(p))
	}
	resultCh <- categoryResult{kind: kindAccommodation, places: dedupePlaces(entities, "Hotel")}
}

func (s *ServiceImpl) servicesWorker(wg *sync.WaitGroup, ctx context.Context, lat, lon float64, resultCh chan<- categoryResult) {
	defer wg.Done()

	places, err := s.places.PlacesByRadius(ctx, lat, lon, s.radiusMeters, servicesLimit, opentripmap.KindsServices)
	if err != nil {
		s.logger.WarnContext(ctx, "services fetch failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindServices, places: []types.PlaceEntity{}}
		return
	}

	entities := make([]types.PlaceEntity, 0, len(places))
	for _, p := range places {
		entities = append(entities, serviceFromOpenTripMap(p))
	}
	resultCh <- categoryResult{kind: kindServices, places: dedupePlaces(entities, "Unnamed Service")}
}

func (s *ServiceImpl) summaryWorker(wg *sync.WaitGroup, ctx context.Context, locationName string, resultCh chan<- categoryResult) {
	defer wg.Done()

	summary, err := s.summaries.PageSummary(ctx, locationName)
	if err != nil {
		s.logger.WarnContext(ctx, "page summary fetch failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindSummary}
		return
	}
	resultCh <- categoryResult{kind: kindSummary, summary: summary}
}

func (s *ServiceImpl) historyWorker(wg *sync.WaitGroup, ctx context.Context, locationName string, resultCh chan<- categoryResult) {
	defer wg.Done()

	if s.aiClient == nil {
		resultCh <- categoryResult{kind: kindHistory}
		return
	}

	history, err := s.aiClient.GenerateContent(ctx, historyPrompt(locationName))
	if err != nil {
		s.logger.WarnContext(ctx, "history generation failed", slog.Any("error", err))
		resultCh <- categoryResult{kind: kindHistory}
		return
	}
	resultCh <- categoryResult{kind: kindHistory, history: strings.TrimSpace(history)}
}
