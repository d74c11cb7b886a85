// Package overpass queries the Overpass API for places of worship inside a
// bounding box around a center point. It is the one provider reached with a
// bbox instead of a radius.
package overpass

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/curiocity/curiocity-api/internal/providers"
)

// Source is the provenance label for entities produced here.
const Source = "Overpass"

// DefaultBoxDelta is the angular half-width of the query box in degrees.
const DefaultBoxDelta = 0.01

// Element is one raw Overpass node.
type Element struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []Element `json:"elements"`
}

// Client calls the Overpass interpreter endpoint.
type Client struct {
	baseURL string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds an Overpass client.
func NewClient(baseURL string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// PlacesOfWorship returns amenity=place_of_worship nodes inside a box
// expanded by delta degrees in each direction around the center point.
// Invalid coordinates short-circuit to an empty result without a network call.
func (c *Client) PlacesOfWorship(ctx context.Context, lat, lon, delta float64) ([]Element, error) {
	if !providers.ValidCoordinates(lat, lon) {
		c.logger.WarnContext(ctx, "invalid coordinates for Overpass query",
			slog.Float64("lat", lat), slog.Float64("lon", lon))
		return []Element{}, nil
	}
	if delta <= 0 {
		delta = DefaultBoxDelta
	}

	latMin, latMax := lat-delta, lat+delta
	lonMin, lonMax := lon-delta, lon+delta
	query := fmt.Sprintf(`[out:json];node["amenity"="place_of_worship"](%g,%g,%g,%g);out;`,
		latMin, lonMin, latMax, lonMax)

	q := url.Values{}
	q.Set("data", query)

	var resp overpassResponse
	if err := c.http.GetJSON(ctx, "overpass", c.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("overpass query: %w", err)
	}
	return resp.Elements, nil
}
