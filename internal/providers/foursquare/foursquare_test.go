package foursquare

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiocity/curiocity-api/internal/providers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.URL, "fsq-key", providers.NewClient(providers.Options{}, logger), logger)
}

func TestSearchNear(t *testing.T) {
	ctx := context.Background()

	t.Run("sends auth header and query parameters", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fsq-key", r.Header.Get("Authorization"))
			q := r.URL.Query()
			assert.Equal(t, "Lisbon", q.Get("near"))
			assert.Equal(t, CategoryRestaurants, q.Get("categories"))
			assert.Equal(t, "20", q.Get("limit"))
			w.Write([]byte(`{"results":[{
				"name": "Cervejaria Ramiro",
				"distance": 742,
				"rating": 9.2,
				"location": {"formatted_address": "Av. Almirante Reis 1, Lisbon"},
				"categories": [{"name": "Seafood Restaurant"}],
				"geocodes": {"main": {"latitude": 38.7205, "longitude": -9.1357}}
			}]}`))
		})

		places, err := client.SearchNear(ctx, "Lisbon", CategoryRestaurants, 20)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Cervejaria Ramiro", places[0].Name)
		assert.Equal(t, 742.0, places[0].Distance)
		assert.Equal(t, 9.2, places[0].Rating)
		assert.Equal(t, "Av. Almirante Reis 1, Lisbon", places[0].Location.FormattedAddress)
		require.Len(t, places[0].Categories, 1)
		assert.Equal(t, "Seafood Restaurant", places[0].Categories[0].Name)
		assert.Equal(t, 38.7205, places[0].Geocodes.Main.Latitude)
	})

	t.Run("non-positive limit uses the default", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"results":[]}`))
		})

		places, err := client.SearchNear(ctx, "Lisbon", CategoryRestaurants, 0)
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("upstream error is surfaced", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.SearchNear(ctx, "Lisbon", CategoryRestaurants, 20)
		assert.Error(t, err)
	})
}
