// Package foursquare queries the Foursquare places search API, used as the
// curated restaurant provider.
package foursquare

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/curiocity/curiocity-api/internal/providers"
)

// Source is the provenance label for entities produced here.
const Source = "Foursquare"

// CategoryRestaurants is Foursquare's taxonomy ID for restaurants.
const CategoryRestaurants = "13065"

// Place is one raw search result.
type Place struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	// Foursquare ratings are on a 0-10 scale.
	Rating   float64 `json:"rating"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Categories []Category `json:"categories"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
}

// Category is one taxonomy entry attached to a place.
type Category struct {
	Name string `json:"name"`
}

type searchResponse struct {
	Results []Place `json:"results"`
}

// Client calls the Foursquare place search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds a Foursquare client.
func NewClient(baseURL, apiKey string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient, logger: logger}
}

// SearchNear returns up to limit places of the given category near a freeform
// location name.
func (c *Client) SearchNear(ctx context.Context, locationName, categoryID string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{}
	q.Set("near", locationName)
	q.Set("categories", categoryID)
	q.Set("limit", fmt.Sprintf("%d", limit))

	header := http.Header{}
	header.Set("Authorization", c.apiKey)

	var resp searchResponse
	if err := c.http.GetJSON(ctx, "foursquare", c.baseURL+"?"+q.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("foursquare search: %w", err)
	}
	return resp.Results, nil
}
