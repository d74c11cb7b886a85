// Package providers holds thin clients for the upstream data providers the
// aggregation layer fans out to. Each provider lives in its own subpackage;
// this package carries the shared outbound HTTP plumbing (user agent, request
// timeout, client-side rate limiting, retry with backoff, metrics).
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/curiocity/curiocity-api/pkg/observability"
)

// Options configures a shared provider HTTP client.
type Options struct {
	UserAgent          string
	RequestTimeout     time.Duration
	MaxRetries         int
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Client is the outbound HTTP helper shared by all provider subpackages.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries uint64
	logger     *slog.Logger
}

// NewClient builds a provider HTTP client from opts.
func NewClient(opts Options, logger *slog.Logger) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RateLimitPerSecond > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), burst)
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		userAgent:  opts.UserAgent,
		maxRetries: uint64(maxRetries),
		logger:     logger,
	}
}

// GetJSON issues a GET against url, decodes the JSON body into v and records
// metrics under the given provider label. Responses with status 429 or 5xx
// are retried with fibonacci backoff; other non-2xx statuses fail immediately.
func (c *Client) GetJSON(ctx context.Context, provider, url string, header http.Header, v any) error {
	start := time.Now()
	defer func() {
		observability.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			observability.ProviderRequestsTotal.WithLabelValues(provider, "rate_limited").Inc()
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(200*time.Millisecond))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		req.Header.Set("Accept", "application/json")
		for k, vals := range header {
			for _, hv := range vals {
				req.Header.Set(k, hv)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%s returned status %d", provider, resp.StatusCode))
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("%s returned status %d", provider, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
		c.logger.WarnContext(ctx, "provider request failed",
			slog.String("provider", provider), slog.Any("error", err))
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(provider, "decode_error").Inc()
		return fmt.Errorf("decoding %s response: %w", provider, err)
	}

	observability.ProviderRequestsTotal.WithLabelValues(provider, "success").Inc()
	return nil
}

// ValidCoordinates reports whether lat/lon form a usable WGS84 point. NaN and
// out-of-range values are rejected before any network call is made.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Radius bounds in meters accepted by radius-based providers.
const (
	MinRadiusMeters = 1000
	MaxRadiusMeters = 50000
)

// ClampRadius forces a requested search radius into the accepted bounds.
func ClampRadius(radius int) int {
	if radius < MinRadiusMeters {
		return MinRadiusMeters
	}
	if radius > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	return radius
}
