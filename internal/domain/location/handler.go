package location

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/curiocity/curiocity-api/internal/types"
)

// Handler exposes the location service over HTTP for the mobile client.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a location HTTP handler.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ResolveLocation handles GET /v1/location/resolve?lat=&lon=. When the
// position cannot be resolved it serves the default-location fallback, so the
// client always receives a renderable record.
func (h *Handler) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}

	record, err := h.service.ResolveCoordinates(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, types.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}
		h.logger.WarnContext(r.Context(), "resolution failed, serving default location", slog.Any("error", err))
		writeJSON(w, http.StatusOK, h.service.DefaultLocationWithLiveData(r.Context()))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// SearchLocations handles GET /v1/location/search?q=.
func (h *Handler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	candidates, err := h.service.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "location search unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// LocationDetails handles GET /v1/location/details?name=&lat=&lon= for a
// candidate the client already selected from search results.
func (h *Handler) LocationDetails(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if name == "" || latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "name, lat and lon query parameters are required")
		return
	}

	record := h.service.Aggregate(r.Context(), name, lat, lon)
	writeJSON(w, http.StatusOK, record)
}

// DefaultLocation handles GET /v1/location/default, the explicit fallback
// path for clients with no position at all.
func (h *Handler) DefaultLocation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.DefaultLocationWithLiveData(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
