package providers

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		valid    bool
	}{
		{"origin", 0, 0, true},
		{"lisbon", 38.7223, -9.1393, true},
		{"lat boundary", 90, 180, true},
		{"negative boundary", -90, -180, true},
		{"lat too high", 90.1, 0, false},
		{"lat too low", -90.1, 0, false},
		{"lon too high", 0, 180.1, false},
		{"lon too low", 0, -180.1, false},
		{"nan latitude", math.NaN(), 0, false},
		{"nan longitude", 0, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestClampRadius(t *testing.T) {
	assert.Equal(t, MinRadiusMeters, ClampRadius(500))
	assert.Equal(t, MinRadiusMeters, ClampRadius(0))
	assert.Equal(t, MinRadiusMeters, ClampRadius(-1))
	assert.Equal(t, MaxRadiusMeters, ClampRadius(100000))
	assert.Equal(t, 10000, ClampRadius(10000))
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "curiocity-test", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Write([]byte(`{"value":"ok"}`))
		}))
		defer server.Close()

		client := NewClient(Options{UserAgent: "curiocity-test"}, testLogger())

		var out struct {
			Value string `json:"value"`
		}
		require.NoError(t, client.GetJSON(ctx, "test", server.URL, nil, &out))
		assert.Equal(t, "ok", out.Value)
	})

	t.Run("passes extra headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret", r.Header.Get("Authorization"))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(Options{}, testLogger())
		header := http.Header{}
		header.Set("Authorization", "secret")

		var out map[string]any
		require.NoError(t, client.GetJSON(ctx, "test", server.URL, header, &out))
	})

	t.Run("retries server errors until success", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"value":"recovered"}`))
		}))
		defer server.Close()

		client := NewClient(Options{MaxRetries: 3}, testLogger())

		var out struct {
			Value string `json:"value"`
		}
		require.NoError(t, client.GetJSON(ctx, "test", server.URL, nil, &out))
		assert.Equal(t, "recovered", out.Value)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client errors fail without retry", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(Options{MaxRetries: 3}, testLogger())

		var out map[string]any
		err := client.GetJSON(ctx, "test", server.URL, nil, &out)
		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("invalid body is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(Options{}, testLogger())

		var out map[string]any
		err := client.GetJSON(ctx, "test", server.URL, nil, &out)
		assert.ErrorContains(t, err, "decoding")
	})
}
