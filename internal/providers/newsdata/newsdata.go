// Package newsdata fetches local news from NewsData.io.
package newsdata

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/curiocity/curiocity-api/internal/providers"
	"github.com/curiocity/curiocity-api/internal/types"
)

// Source is the provenance label for articles produced here.
const Source = "NewsData"

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	SourceID    string `json:"source_id"`
	ImageURL    string `json:"image_url"`
}

type newsResponse struct {
	Results []article `json:"results"`
}

// Client calls the NewsData.io latest-news endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *providers.Client
	logger  *slog.Logger
}

// NewClient builds a NewsData client.
func NewClient(baseURL, apiKey string, httpClient *providers.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient, logger: logger}
}

// LatestNews returns up to size recent English articles matching the location
// name. Missing fields are left empty; callers treat articles as display-only.
func (c *Client) LatestNews(ctx context.Context, locationName string, size int) ([]types.NewsArticle, error) {
	if size <= 0 {
		size = 10
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("q", locationName)
	q.Set("language", "en")
	q.Set("size", fmt.Sprintf("%d", size))

	var resp newsResponse
	if err := c.http.GetJSON(ctx, "newsdata", c.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("newsdata query: %w", err)
	}

	articles := make([]types.NewsArticle, 0, len(resp.Results))
	for _, a := range resp.Results {
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.Link,
			PublishedAt: a.PubDate,
			Source:      a.SourceID,
			ImageURL:    a.ImageURL,
		})
	}
	return articles, nil
}
