package location

import (
	"math"

	"github.com/curiocity/curiocity-api/internal/providers/foursquare"
	"github.com/curiocity/curiocity-api/internal/providers/opentripmap"
	"github.com/curiocity/curiocity-api/internal/providers/overpass"
	"github.com/curiocity/curiocity-api/internal/types"
)

// Ratings are normalized to one 0-5 scale before entities are merged, since
// the providers disagree on their native scales.
const (
	ratingScaleMax       = 5.0
	foursquareRatingMax  = 10.0
	openTripMapRatingMax = 7.0
)

func normalizeRating(native, nativeMax float64) float64 {
	if native <= 0 || nativeMax <= 0 {
		return 0
	}
	r := native / nativeMax * ratingScaleMax
	if r > ratingScaleMax {
		r = ratingScaleMax
	}
	return math.Round(r*10) / 10
}

// placeFromOpenTripMap maps a raw radius result into the shared entity shape.
// A missing name falls back to the category placeholder, which the
// deduplicator later recognizes and drops.
func placeFromOpenTripMap(p opentripmap.Place, placeholderName string) types.PlaceEntity {
	name := p.Name
	if name == "" {
		name = placeholderName
	}
	return types.PlaceEntity{
		Name:     name,
		Category: p.Kinds,
		Coordinates: types.Coordinates{
			Latitude:  p.Point.Lat,
			Longitude: p.Point.Lon,
		},
		DistanceMeters: p.Dist,
		Rating:         normalizeRating(p.Rate, openTripMapRatingMax),
		Source:         opentripmap.Source,
	}
}

func restaurantFromOpenTripMap(p opentripmap.Place) types.PlaceEntity {
	entity := placeFromOpenTripMap(p, "Restaurant")
	entity.Cuisines = []string{"Restaurant"}
	return entity
}

func restaurantFromFoursquare(p foursquare.Place) types.PlaceEntity {
	cuisines := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		cuisines = append(cuisines, c.Name)
	}
	return types.PlaceEntity{
		Name:     p.Name,
		Category: "restaurant",
		Coordinates: types.Coordinates{
			Latitude:  p.Geocodes.Main.Latitude,
			Longitude: p.Geocodes.Main.Longitude,
		},
		DistanceMeters: p.Distance,
		Rating:         normalizeRating(p.Rating, foursquareRatingMax),
		Address:        p.Location.FormattedAddress,
		Cuisines:       cuisines,
		Source:         foursquare.Source,
	}
}

func holyPlaceFromOverpass(e overpass.Element) types.PlaceEntity {
	name := e.Tags["name"]
	if name == "" {
		name = "Unnamed Place of Worship"
	}
	religion := e.Tags["religion"]
	if religion == "" {
		religion = "Unknown"
	}
	category := e.Tags["place_of_worship"]
	if category == "" {
		category = e.Tags["amenity"]
	}
	address := e.Tags["addr:full"]
	if address == "" {
		address = e.Tags["addr:street"]
	}
	return types.PlaceEntity{
		Name:        name,
		Category:    category,
		Coordinates: types.Coordinates{Latitude: e.Lat, Longitude: e.Lon},
		Address:     address,
		Religion:    religion,
		Source:      overpass.Source,
	}
}

// accommodationFromOpenTripMap additionally derives type, amenities and price
// range from the kinds taxonomy, since the provider does not supply them
// directly.
func accommodationFromOpenTripMap(p opentripmap.Place) types.PlaceEntity {
	entity := placeFromOpenTripMap(p, "Hotel")
	entity.Category = classifyAccommodationType(p.Kinds)
	entity.Amenities = extractAmenities(p.Kinds)
	entity.PriceRange = estimatePriceRange(p.Kinds, entity.Rating)
	return entity
}

func serviceFromOpenTripMap(p opentripmap.Place) types.PlaceEntity {
	return placeFromOpenTripMap(p, "Unnamed Service")
}
