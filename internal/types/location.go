package types

import "time"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceEntity is a single place item within a category collection.
// Rating is normalized to a 0-5 scale regardless of the provider's native
// scale (Foursquare reports 0-10, OpenTripMap 0-7).
type PlaceEntity struct {
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Coordinates    Coordinates `json:"coordinates"`
	DistanceMeters float64     `json:"distance_meters,omitempty"`
	Rating         float64     `json:"rating,omitempty"`
	Address        string      `json:"address,omitempty"`
	Source         string      `json:"source"`

	// Category-specific fields.
	Cuisines   []string `json:"cuisines,omitempty"`    // restaurants
	Religion   string   `json:"religion,omitempty"`    // holy places
	Amenities  []string `json:"amenities,omitempty"`   // accommodation
	PriceRange string   `json:"price_range,omitempty"` // accommodation
}

// NewsArticle is a single news item about a location.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url,omitempty"`
}

// PageSummary is a normalized encyclopedia summary for a location.
type PageSummary struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	FullDescription string       `json:"full_description"`
	Thumbnail       string       `json:"thumbnail,omitempty"`
	PageURL         string       `json:"page_url,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
}

// Address is a reverse-geocoded place identity.
type Address struct {
	City             string `json:"city"`
	Region           string `json:"region"`
	Country          string `json:"country"`
	FormattedAddress string `json:"formatted_address"`
}

// PlaceCandidate is one forward-geocoding search result.
type PlaceCandidate struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
}

// LocationRecord is the unified output of one aggregation run. It is built
// fresh on every resolution and atomically replaces whatever the caller held
// before; entities are never mutated after construction.
type LocationRecord struct {
	Name             string      `json:"name"`
	Region           string      `json:"region"`
	Country          string      `json:"country"`
	FormattedAddress string      `json:"formatted_address"`
	Coordinates      Coordinates `json:"coordinates"`

	Description     string `json:"description"`
	FullDescription string `json:"full_description"`
	History         string `json:"history"`
	Thumbnail       string `json:"thumbnail,omitempty"`
	EncyclopediaURL string `json:"encyclopedia_url,omitempty"`

	News          []NewsArticle `json:"news"`
	PlacesToVisit []PlaceEntity `json:"places_to_visit"`
	Restaurants   []PlaceEntity `json:"restaurants"`
	HolyPlaces    []PlaceEntity `json:"holy_places"`
	Accommodation []PlaceEntity `json:"accommodation"`
	Services      []PlaceEntity `json:"services"`

	// HasRealData is false only for the static bootstrap fallback; once
	// aggregation has run it is true even when every collection came back
	// empty.
	HasRealData bool      `json:"has_real_data"`
	LastUpdated time.Time `json:"last_updated"`
}
