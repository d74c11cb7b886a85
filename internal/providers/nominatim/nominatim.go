// Package nominatim wraps the OpenStreetMap Nominatim geocoder for forward
// search and reverse geocoding.
package nominatim

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/curiocity/curiocity-api/internal/providers"
	"github.com/curiocity/curiocity-api/internal/types"
)

// SearchLimit caps forward-geocoding candidates per query.
const SearchLimit = 5

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"address"`
}

// Client calls the Nominatim search and reverse endpoints.
type Client struct {
	baseURL string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds a Nominatim client.
func NewClient(baseURL string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// Search forward-geocodes a free-text query into at most SearchLimit
// candidates. Query validation (non-empty) is the caller's responsibility.
func (c *Client) Search(ctx context.Context, query string) ([]types.PlaceCandidate, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(SearchLimit))
	q.Set("addressdetails", "1")

	var results []searchResult
	if err := c.http.GetJSON(ctx, "nominatim", c.baseURL+"/search?"+q.Encode(), nil, &results); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	candidates := make([]types.PlaceCandidate, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		candidates = append(candidates, types.PlaceCandidate{
			Latitude:         lat,
			Longitude:        lon,
			Name:             r.DisplayName,
			FormattedAddress: r.DisplayName,
		})
	}
	return candidates, nil
}

// Reverse converts coordinates to a place identity. A nil Address with nil
// error means the geocoder had no answer for the point.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*types.Address, error) {
	if !providers.ValidCoordinates(lat, lon) {
		return nil, types.ErrBadRequest
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))
	q.Set("format", "json")

	var r reverseResult
	if err := c.http.GetJSON(ctx, "nominatim", c.baseURL+"/reverse?"+q.Encode(), nil, &r); err != nil {
		return nil, fmt.Errorf("nominatim reverse: %w", err)
	}
	if r.DisplayName == "" {
		return nil, nil
	}

	city := firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village, "Unknown City")
	region := firstNonEmpty(r.Address.State, r.Address.Region, r.Address.Country, "Unknown Region")
	country := firstNonEmpty(r.Address.Country, "Unknown Country")

	return &types.Address{
		City:             city,
		Region:           region,
		Country:          country,
		FormattedAddress: r.DisplayName,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
