package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAccommodationType(t *testing.T) {
	tests := []struct {
		name     string
		kinds    string
		expected string
	}{
		{"empty kinds defaults to hotel", "", "Hotel"},
		{"no keyword defaults to hotel", "accomodations,other_hotels", "Hotel"},
		{"resort", "accomodations,resorts,resort", "Resort"},
		{"hostel", "accomodations,hostels,hostel", "Hostel"},
		{"guest house", "guest_house,accomodations", "Guest House"},
		{"apartment", "apartment,accomodations", "Apartment"},
		{"villa", "villas,villa", "Villa"},
		{"bnb", "bed_and_breakfast", "B&B"},
		{"luxury", "accomodations,luxury", "Luxury Hotel"},
		{"budget", "budget,accomodations", "Budget Hotel"},
		{"resort outranks luxury", "luxury,resort", "Resort"},
		{"hostel outranks budget", "budget,hostel", "Hostel"},
		{"case insensitive", "ACCOMODATIONS,RESORT", "Resort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyAccommodationType(tt.kinds))
		})
	}
}

func TestExtractAmenities(t *testing.T) {
	t.Run("empty kinds yields nil", func(t *testing.T) {
		assert.Nil(t, extractAmenities(""))
	})

	t.Run("no keyword yields defaults", func(t *testing.T) {
		amenities := extractAmenities("accomodations,other_hotels")
		assert.Equal(t, []string{"Standard Rooms", "Reception", "Housekeeping"}, amenities)
	})

	t.Run("maps matched keywords", func(t *testing.T) {
		amenities := extractAmenities("accomodations,wifi,pool,spa")
		assert.Equal(t, []string{"WiFi", "Swimming Pool", "Spa"}, amenities)
	})

	t.Run("deduplicates repeated keywords", func(t *testing.T) {
		amenities := extractAmenities("wifi,free_wifi,wifi_zone")
		assert.Equal(t, []string{"WiFi"}, amenities)
	})

	t.Run("case insensitive", func(t *testing.T) {
		amenities := extractAmenities("PARKING,Fitness")
		assert.Equal(t, []string{"Parking", "Fitness Center"}, amenities)
	})
}

func TestEstimatePriceRange(t *testing.T) {
	tests := []struct {
		name     string
		kinds    string
		rating   float64
		expected string
	}{
		{"luxury keyword", "accomodations,luxury", 0, "$$$$ (Luxury)"},
		{"high rating", "accomodations", 4.6, "$$$$ (Luxury)"},
		{"resort keyword", "resort", 0, "$$$ (Premium)"},
		{"premium rating", "accomodations", 4.2, "$$$ (Premium)"},
		{"budget keyword", "budget", 0, "$ (Budget)"},
		{"hostel keyword", "hostel", 3.8, "$ (Budget)"},
		{"mid-range rating", "accomodations", 3.6, "$$ (Mid-range)"},
		{"no signal", "accomodations", 2.0, "$$ (Standard)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimatePriceRange(tt.kinds, tt.rating))
		})
	}
}
