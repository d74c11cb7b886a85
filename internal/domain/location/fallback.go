package location

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/curiocity/curiocity-api/internal/types"
)

// The fixed reference city served when geolocation and lookup both fail.
const (
	defaultLocationName = "New York"
	defaultLatitude     = 40.7128
	defaultLongitude    = -74.0060
)

// DefaultLocation returns the static bootstrap record. HasRealData stays
// false: only the descriptive fields are populated.
func (s *ServiceImpl) DefaultLocation() *types.LocationRecord {
	return &types.LocationRecord{
		Name:             defaultLocationName,
		Region:           "New York",
		Country:          "United States",
		FormattedAddress: "New York, NY, USA",
		Coordinates:      types.Coordinates{Latitude: defaultLatitude, Longitude: defaultLongitude},
		Description:      "Welcome to New York, the city that never sleeps! Known as the Big Apple, New York City is a global hub for business, arts, fashion, and culture.",
		FullDescription:  "New York City, often simply called New York, is the most populous city in the United States. Located at the southern tip of the state of New York, it is composed of five boroughs: Manhattan, Brooklyn, Queens, The Bronx, and Staten Island. NYC is a global center for finance, technology, arts, fashion, and culture, home to iconic landmarks like the Statue of Liberty, Empire State Building, and Central Park.",
		News:             []types.NewsArticle{},
		PlacesToVisit:    []types.PlaceEntity{},
		Restaurants:      []types.PlaceEntity{},
		HolyPlaces:       []types.PlaceEntity{},
		Accommodation:    []types.PlaceEntity{},
		Services:         []types.PlaceEntity{},
	}
}

// DefaultLocationWithLiveData attempts a full aggregation for the default
// city. When the aggregation comes back completely empty (total provider
// outage), the static baseline is returned as the last resort.
func (s *ServiceImpl) DefaultLocationWithLiveData(ctx context.Context) *types.LocationRecord {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "DefaultLocationWithLiveData")
	defer span.End()

	base := s.DefaultLocation()

	record := s.Aggregate(ctx, defaultLocationName, defaultLatitude, defaultLongitude)
	if recordIsEmpty(record) {
		s.logger.WarnContext(ctx, "default location enrichment failed, serving static baseline")
		span.SetStatus(codes.Ok, "Served static baseline")
		return base
	}

	enriched := *record
	enriched.Region = base.Region
	enriched.Country = base.Country
	enriched.FormattedAddress = base.FormattedAddress
	if enriched.EncyclopediaURL == "" {
		enriched.Description = base.Description
		enriched.FullDescription = base.FullDescription
	}

	s.logger.InfoContext(ctx, "default location enriched with live data",
		slog.String("location", defaultLocationName))
	span.SetStatus(codes.Ok, "Default location enriched")
	return &enriched
}

// recordIsEmpty reports whether an aggregation produced no live data at all:
// every category collection empty and no encyclopedia summary.
func recordIsEmpty(r *types.LocationRecord) bool {
	return len(r.News) == 0 &&
		len(r.PlacesToVisit) == 0 &&
		len(r.Restaurants) == 0 &&
		len(r.HolyPlaces) == 0 &&
		len(r.Accommodation) == 0 &&
		len(r.Services) == 0 &&
		r.EncyclopediaURL == ""
}
