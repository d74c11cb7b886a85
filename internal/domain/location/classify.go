package location

import (
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"
)

// Heuristic classifiers deriving accommodation type, amenities and price
// range from OpenTripMap's freeform kinds taxonomy string. Pure functions so
// classification rules stay unit-testable without any HTTP mocking.

var (
	accommodationTypeBuilder = a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
	})
	accommodationTypeMatcher = accommodationTypeBuilder.Build([]string{
		"resort", "hostel", "guest_house", "guesthouse", "apartment",
		"villa", "bed_and_breakfast", "bnb", "luxury", "budget",
	})

	amenityBuilder = a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
	})
	amenityMatcher = amenityBuilder.Build([]string{
		"wifi", "pool", "spa", "restaurant", "fitness",
		"parking", "pet", "business", "conference",
	})
)

var keywordToAccommodationType = map[string]string{
	"resort":            "Resort",
	"hostel":            "Hostel",
	"guest_house":       "Guest House",
	"guesthouse":        "Guest House",
	"apartment":         "Apartment",
	"villa":             "Villa",
	"bed_and_breakfast": "B&B",
	"bnb":               "B&B",
	"luxury":            "Luxury Hotel",
	"budget":            "Budget Hotel",
}

// Lower number wins when several type keywords appear in one kinds string.
var accommodationTypePriority = map[string]int{
	"Resort":       1,
	"Hostel":       2,
	"Guest House":  3,
	"Apartment":    4,
	"Villa":        5,
	"B&B":          6,
	"Luxury Hotel": 7,
	"Budget Hotel": 8,
}

var keywordToAmenity = map[string]string{
	"wifi":       "WiFi",
	"pool":       "Swimming Pool",
	"spa":        "Spa",
	"restaurant": "Restaurant",
	"fitness":    "Fitness Center",
	"parking":    "Parking",
	"pet":        "Pet Friendly",
	"business":   "Business Center",
	"conference": "Conference Rooms",
}

// defaultAmenities is assumed for any hotel whose kinds string names none.
var defaultAmenities = []string{"Standard Rooms", "Reception", "Housekeeping"}

// classifyAccommodationType maps a kinds taxonomy string to a display type.
func classifyAccommodationType(kinds string) string {
	if kinds == "" {
		return "Hotel"
	}
	lower := strings.ToLower(kinds)

	matches := accommodationTypeMatcher.FindAll(lower)
	best := "Hotel"
	bestPriority := 999
	for _, match := range matches {
		matchedWord := lower[match.Start():match.End()]
		accType, ok := keywordToAccommodationType[matchedWord]
		if !ok {
			continue
		}
		if priority := accommodationTypePriority[accType]; priority < bestPriority {
			bestPriority = priority
			best = accType
		}
	}
	return best
}

// extractAmenities lists the amenities a kinds taxonomy string hints at.
func extractAmenities(kinds string) []string {
	if kinds == "" {
		return nil
	}
	lower := strings.ToLower(kinds)

	seen := make(map[string]bool)
	var amenities []string
	for _, match := range amenityMatcher.FindAll(lower) {
		matchedWord := lower[match.Start():match.End()]
		amenity, ok := keywordToAmenity[matchedWord]
		if !ok || seen[amenity] {
			continue
		}
		seen[amenity] = true
		amenities = append(amenities, amenity)
	}
	if len(amenities) == 0 {
		return append([]string(nil), defaultAmenities...)
	}
	return amenities
}

// estimatePriceRange guesses a price band from the kinds string and the
// normalized 0-5 rating.
func estimatePriceRange(kinds string, rating float64) string {
	lower := strings.ToLower(kinds)

	switch {
	case strings.Contains(lower, "luxury") || rating >= 4.5:
		return "$$$$ (Luxury)"
	case strings.Contains(lower, "resort") || rating >= 4.0:
		return "$$$ (Premium)"
	case strings.Contains(lower, "budget") || strings.Contains(lower, "hostel"):
		return "$ (Budget)"
	case rating >= 3.5:
		return "$$ (Mid-range)"
	default:
		return "$$ (Standard)"
	}
}
