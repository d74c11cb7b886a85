package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/curiocity/curiocity-api/internal/llm"
	"github.com/curiocity/curiocity-api/internal/providers/foursquare"
	"github.com/curiocity/curiocity-api/internal/providers/opentripmap"
	"github.com/curiocity/curiocity-api/internal/providers/overpass"
	"github.com/curiocity/curiocity-api/internal/types"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]types.PlaceCandidate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PlaceCandidate), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lon float64) (*types.Address, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Address), args.Error(1)
}

type MockNewsProvider struct {
	mock.Mock
}

func (m *MockNewsProvider) LatestNews(ctx context.Context, locationName string, size int) ([]types.NewsArticle, error) {
	args := m.Called(ctx, locationName, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.NewsArticle), args.Error(1)
}

type MockPlacesProvider struct {
	mock.Mock
}

func (m *MockPlacesProvider) PlacesByRadius(ctx context.Context, lat, lon float64, radiusMeters, limit int, kinds string) ([]opentripmap.Place, error) {
	args := m.Called(ctx, lat, lon, radiusMeters, limit, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]opentripmap.Place), args.Error(1)
}

type MockRestaurantProvider struct {
	mock.Mock
}

func (m *MockRestaurantProvider) SearchNear(ctx context.Context, locationName, categoryID string, limit int) ([]foursquare.Place, error) {
	args := m.Called(ctx, locationName, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]foursquare.Place), args.Error(1)
}

type MockWorshipProvider struct {
	mock.Mock
}

func (m *MockWorshipProvider) PlacesOfWorship(ctx context.Context, lat, lon, delta float64) ([]overpass.Element, error) {
	args := m.Called(ctx, lat, lon, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]overpass.Element), args.Error(1)
}

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) PageSummary(ctx context.Context, title string) (*types.PageSummary, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PageSummary), args.Error(1)
}

type stubChatClient struct {
	response string
	err      error
}

func (s *stubChatClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func (s *stubChatClient) Model() string { return "stub-model" }

type serviceMocks struct {
	geocoder    *MockGeocoder
	news        *MockNewsProvider
	places      *MockPlacesProvider
	restaurants *MockRestaurantProvider
	worship     *MockWorshipProvider
	summaries   *MockSummaryProvider
}

func newTestService(chat llm.ChatClient) (*ServiceImpl, *serviceMocks) {
	m := &serviceMocks{
		geocoder:    new(MockGeocoder),
		news:        new(MockNewsProvider),
		places:      new(MockPlacesProvider),
		restaurants: new(MockRestaurantProvider),
		worship:     new(MockWorshipProvider),
		summaries:   new(MockSummaryProvider),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(m.geocoder, m.news, m.places, m.restaurants, m.worship, m.summaries, chat, Config{}, logger)
	return svc, m
}

// failAllProviders arms every mock to return an error on any call.
func failAllProviders(m *serviceMocks) {
	boom := errors.New("provider down")
	m.news.On("LatestNews", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	m.places.On("PlacesByRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	m.restaurants.On("SearchNear", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	m.worship.On("PlacesOfWorship", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	m.summaries.On("PageSummary", mock.Anything, mock.Anything).Return(nil, boom)
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	const (
		name = "Lisbon"
		lat  = 38.7223
		lon  = -9.1393
	)

	t.Run("assembles record from all branches", func(t *testing.T) {
		svc, m := newTestService(&stubChatClient{response: "Lisbon was founded by the Phoenicians."})

		m.news.On("LatestNews", mock.Anything, name, newsPageSize).
			Return([]types.NewsArticle{{Title: "Local festival this weekend"}}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, attractionsLimit, opentripmap.KindsTouristAttractions).
			Return([]opentripmap.Place{{Name: "Belem Tower", Point: opentripmap.Point{Lat: 38.6916, Lon: -9.2160}}}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, attractionsLimit, opentripmap.KindsCulturalSites).
			Return([]opentripmap.Place{{Name: "Jeronimos Monastery", Point: opentripmap.Point{Lat: 38.6979, Lon: -9.2068}}}, nil)
		m.restaurants.On("SearchNear", mock.Anything, name, foursquare.CategoryRestaurants, restaurantsLimit).
			Return([]foursquare.Place{{Name: "Cervejaria Ramiro"}}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, restaurantsLimit, opentripmap.KindsRestaurants).
			Return([]opentripmap.Place{{Name: "Time Out Market", Point: opentripmap.Point{Lat: 38.7071, Lon: -9.1458}}}, nil)
		m.worship.On("PlacesOfWorship", mock.Anything, lat, lon, overpass.DefaultBoxDelta).
			Return([]overpass.Element{{Lat: 38.7098, Lon: -9.1326, Tags: map[string]string{"name": "Lisbon Cathedral", "religion": "christian"}}}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, accommodationLimit, opentripmap.KindsAccommodation).
			Return([]opentripmap.Place{{Name: "Hotel Avenida", Kinds: "accomodations,other_hotels", Point: opentripmap.Point{Lat: 38.72, Lon: -9.14}}}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, servicesLimit, opentripmap.KindsServices).
			Return([]opentripmap.Place{{Name: "Banco Central", Point: opentripmap.Point{Lat: 38.71, Lon: -9.13}}}, nil)
		m.summaries.On("PageSummary", mock.Anything, name).
			Return(&types.PageSummary{
				Title:           "Lisbon",
				Description:     "Capital of Portugal.",
				FullDescription: "Lisbon is the capital and largest city of Portugal.",
				Thumbnail:       "https://img.example/lisbon.jpg",
				PageURL:         "https://en.wikipedia.org/wiki/Lisbon",
			}, nil)

		record := svc.Aggregate(ctx, name, lat, lon)

		require.NotNil(t, record)
		assert.Equal(t, name, record.Name)
		assert.Len(t, record.News, 1)
		assert.Len(t, record.PlacesToVisit, 2)
		assert.Len(t, record.Restaurants, 2)
		assert.Len(t, record.HolyPlaces, 1)
		assert.Len(t, record.Accommodation, 1)
		assert.Len(t, record.Services, 1)
		assert.Equal(t, "Capital of Portugal.", record.Description)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Lisbon", record.EncyclopediaURL)
		assert.Equal(t, "Lisbon was founded by the Phoenicians.", record.History)
		assert.True(t, record.HasRealData)
		assert.False(t, record.LastUpdated.IsZero())

		// Accommodation derives its classification fields.
		assert.Equal(t, "Hotel", record.Accommodation[0].Category)
		assert.NotEmpty(t, record.Accommodation[0].Amenities)
		assert.NotEmpty(t, record.Accommodation[0].PriceRange)

		m.news.AssertExpectations(t)
		m.places.AssertExpectations(t)
		m.restaurants.AssertExpectations(t)
		m.worship.AssertExpectations(t)
		m.summaries.AssertExpectations(t)
	})

	t.Run("deduplicates restaurants across providers, curated source wins", func(t *testing.T) {
		svc, m := newTestService(nil)

		boom := errors.New("provider down")
		m.news.On("LatestNews", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
		m.worship.On("PlacesOfWorship", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
		m.summaries.On("PageSummary", mock.Anything, mock.Anything).Return(nil, boom)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, attractionsLimit, mock.Anything).Return([]opentripmap.Place{}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, accommodationLimit, mock.Anything).Return([]opentripmap.Place{}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, servicesLimit, mock.Anything).Return([]opentripmap.Place{}, nil)

		curated := foursquare.Place{Name: "Taberna Sal Grosso", Rating: 9.0}
		curated.Geocodes.Main.Latitude = 38.7100
		curated.Geocodes.Main.Longitude = -9.1250
		m.restaurants.On("SearchNear", mock.Anything, name, foursquare.CategoryRestaurants, restaurantsLimit).
			Return([]foursquare.Place{curated}, nil)
		m.places.On("PlacesByRadius", mock.Anything, lat, lon, 10000, restaurantsLimit, opentripmap.KindsRestaurants).
			Return([]opentripmap.Place{
				{Name: "Taberna Sal Grosso", Point: opentripmap.Point{Lat: 38.71002, Lon: -9.12498}},
				{Name: "Ponto Final", Point: opentripmap.Point{Lat: 38.6880, Lon: -9.1530}},
			}, nil)

		record := svc.Aggregate(ctx, name, lat, lon)

		require.Len(t, record.Restaurants, 2)
		assert.Equal(t, "Taberna Sal Grosso", record.Restaurants[0].Name)
		assert.Equal(t, foursquare.Source, record.Restaurants[0].Source)
		assert.Equal(t, "Ponto Final", record.Restaurants[1].Name)
	})

	t.Run("total provider outage still yields a valid record", func(t *testing.T) {
		svc, m := newTestService(&stubChatClient{err: errors.New("quota exceeded")})
		failAllProviders(m)

		record := svc.Aggregate(ctx, "Atlantis", 30.0, -40.0)

		require.NotNil(t, record)
		assert.Empty(t, record.News)
		assert.Empty(t, record.PlacesToVisit)
		assert.Empty(t, record.Restaurants)
		assert.Empty(t, record.HolyPlaces)
		assert.Empty(t, record.Accommodation)
		assert.Empty(t, record.Services)
		assert.NotNil(t, record.News)
		assert.NotNil(t, record.PlacesToVisit)
		assert.Contains(t, record.History, "Atlantis")
		assert.Contains(t, record.Description, "Atlantis")
		assert.True(t, record.HasRealData)
	})

	t.Run("nil AI client falls back to templated history", func(t *testing.T) {
		svc, m := newTestService(nil)
		failAllProviders(m)

		record := svc.Aggregate(ctx, "Porto", 41.1579, -8.6291)
		assert.Contains(t, record.History, "Porto")
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		svc, m := newTestService(nil)
		failAllProviders(m)

		first := svc.Aggregate(ctx, "Faro", 37.0194, -7.9304)
		second := svc.Aggregate(ctx, "Faro", 37.0194, -7.9304)

		assert.Same(t, first, second)
		m.news.AssertNumberOfCalls(t, "LatestNews", 1)
		m.summaries.AssertNumberOfCalls(t, "PageSummary", 1)
	})
}

func TestResolveCoordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects out-of-range coordinates without geocoding", func(t *testing.T) {
		svc, m := newTestService(nil)

		_, err := svc.ResolveCoordinates(ctx, 91.0, 0.0)
		assert.ErrorIs(t, err, types.ErrBadRequest)
		m.geocoder.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reverse geocoding failure surfaces ErrNoLocation", func(t *testing.T) {
		svc, m := newTestService(nil)
		m.geocoder.On("Reverse", mock.Anything, 38.7223, -9.1393).Return(nil, errors.New("timeout"))

		_, err := svc.ResolveCoordinates(ctx, 38.7223, -9.1393)
		assert.ErrorIs(t, err, types.ErrNoLocation)
	})

	t.Run("nil address surfaces ErrNoLocation", func(t *testing.T) {
		svc, m := newTestService(nil)
		m.geocoder.On("Reverse", mock.Anything, 0.0, 0.0).Return(nil, nil)

		_, err := svc.ResolveCoordinates(ctx, 0.0, 0.0)
		assert.ErrorIs(t, err, types.ErrNoLocation)
	})

	t.Run("enriches record with address identity without touching cache", func(t *testing.T) {
		svc, m := newTestService(nil)
		failAllProviders(m)
		m.geocoder.On("Reverse", mock.Anything, 38.7223, -9.1393).Return(&types.Address{
			City:             "Lisbon",
			Region:           "Lisboa",
			Country:          "Portugal",
			FormattedAddress: "Lisbon, Lisboa, Portugal",
		}, nil)

		record, err := svc.ResolveCoordinates(ctx, 38.7223, -9.1393)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", record.Name)
		assert.Equal(t, "Lisboa", record.Region)
		assert.Equal(t, "Portugal", record.Country)

		// The cached aggregate stays identity-free for other callers.
		cached := svc.Aggregate(ctx, "Lisbon", 38.7223, -9.1393)
		assert.Empty(t, cached.Region)
		assert.Empty(t, cached.Country)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns candidates", func(t *testing.T) {
		svc, m := newTestService(nil)
		m.geocoder.On("Search", mock.Anything, "porto").Return([]types.PlaceCandidate{
			{Name: "Porto, Portugal", Latitude: 41.1579, Longitude: -8.6291},
		}, nil)

		candidates, err := svc.Search(ctx, "porto")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Porto, Portugal", candidates[0].Name)
	})

	t.Run("propagates geocoder errors", func(t *testing.T) {
		svc, m := newTestService(nil)
		m.geocoder.On("Search", mock.Anything, "porto").Return(nil, errors.New("upstream unavailable"))

		_, err := svc.Search(ctx, "porto")
		assert.Error(t, err)
	})
}
