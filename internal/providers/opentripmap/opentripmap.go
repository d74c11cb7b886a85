// Package opentripmap queries the OpenTripMap places API. One client serves
// several categories (tourist attractions, cultural sites, restaurants,
// services, accommodation) through different kinds filters.
package opentripmap

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/curiocity/curiocity-api/internal/providers"
)

// Source is the provenance label attached to entities produced here.
const Source = "OpenTripMap"

// Kinds filters used by the aggregation layer. Tourist and cultural kinds hit
// the same endpoint with different filters on purpose: the two result sets are
// concatenated into one places-to-visit collection before dedup.
const (
	KindsTouristAttractions = "interesting_places,tourist_facilities,historic,museums,monuments_and_memorials"
	KindsCulturalSites      = "cultural,architecture,archaeological_sites,palaces,castles"
	KindsRestaurants        = "foods"
	// Only kinds the API actually accepts for generic services.
	KindsServices = "banks,shops,sport"
	// The provider's own spelling.
	KindsAccommodation = "accomodations"
)

// Place is one raw radius-query result.
type Place struct {
	Name  string  `json:"name"`
	Kinds string  `json:"kinds"`
	Dist  float64 `json:"dist"`
	Rate  float64 `json:"rate"`
	Point Point   `json:"point"`
}

// Point is the place's center coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Client calls the OpenTripMap radius endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds an OpenTripMap client.
func NewClient(baseURL, apiKey string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient, logger: logger}
}

// PlacesByRadius fetches up to limit places of the given kinds around a
// center point. Invalid coordinates short-circuit to an empty result without
// a network call; the radius is clamped into the accepted bounds.
func (c *Client) PlacesByRadius(ctx context.Context, lat, lon float64, radiusMeters, limit int, kinds string) ([]Place, error) {
	if !providers.ValidCoordinates(lat, lon) {
		c.logger.WarnContext(ctx, "invalid coordinates for OpenTripMap query",
			slog.Float64("lat", lat), slog.Float64("lon", lon))
		return []Place{}, nil
	}
	radiusMeters = providers.ClampRadius(radiusMeters)

	q := url.Values{}
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("lon", fmt.Sprintf("%g", lon))
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("apikey", c.apiKey)
	q.Set("format", "json")
	q.Set("kinds", kinds)
	q.Set("limit", fmt.Sprintf("%d", limit))

	var places []Place
	if err := c.http.GetJSON(ctx, "opentripmap", c.baseURL+"/radius?"+q.Encode(), nil, &places); err != nil {
		return nil, fmt.Errorf("opentripmap radius query: %w", err)
	}
	return places, nil
}
