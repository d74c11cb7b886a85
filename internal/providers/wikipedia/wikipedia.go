// Package wikipedia fetches page summaries from the Wikipedia REST API.
package wikipedia

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/curiocity/curiocity-api/internal/providers"
	"github.com/curiocity/curiocity-api/internal/types"
)

type summaryResponse struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

// Client calls the Wikipedia page-summary endpoint.
type Client struct {
	baseURL string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds a Wikipedia client.
func NewClient(baseURL string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// PageSummary returns the summary for a page title. Disambiguation pages and
// pages without an extract are reported as not found (nil, nil), not as
// errors.
func (c *Client) PageSummary(ctx context.Context, title string) (*types.PageSummary, error) {
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(title)

	var resp summaryResponse
	if err := c.http.GetJSON(ctx, "wikipedia", endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia summary: %w", err)
	}

	if resp.Type == "disambiguation" || resp.Type == "no-extract" {
		c.logger.DebugContext(ctx, "wikipedia page has no usable extract",
			slog.String("title", title), slog.String("type", resp.Type))
		return nil, nil
	}

	summary := &types.PageSummary{
		Title:           resp.Title,
		Description:     resp.Extract,
		FullDescription: resp.Extract,
		Thumbnail:       resp.Thumbnail.Source,
		PageURL:         resp.ContentURLs.Desktop.Page,
	}
	if summary.Description == "" {
		summary.Description = fmt.Sprintf("%s is a fascinating location with rich history and culture.", title)
		summary.FullDescription = fmt.Sprintf("Explore %s and discover its unique attractions, local culture, and historical significance.", title)
	}
	if resp.Coordinates != nil {
		summary.Coordinates = &types.Coordinates{Latitude: resp.Coordinates.Lat, Longitude: resp.Coordinates.Lon}
	}
	return summary, nil
}
