package location

import (
	"fmt"
	"math"
	"strings"

	"github.com/curiocity/curiocity-api/internal/types"
)

// dedupeKey derives the identity of an entity from its lowercased name and
// its coordinate rounded to 3 decimal degrees (~110m grid cell).
func dedupeKey(name string, lat, lon float64) string {
	return fmt.Sprintf("%s_%d_%d",
		strings.ToLower(name),
		int(math.Round(lat*1000)),
		int(math.Round(lon*1000)))
}

// dedupePlaces collapses near-duplicate entities across providers feeding one
// category. First entity to claim a key wins, so concatenation order decides
// which duplicate survives; callers keep that order fixed (curated provider
// first). Entities with a blank name or one of the recognized placeholder
// names are dropped regardless of key collisions, since a generic name
// carries no identity. Idempotent and stable.
func dedupePlaces(entities []types.PlaceEntity, placeholders ...string) []types.PlaceEntity {
	skip := make(map[string]struct{}, len(placeholders))
	for _, p := range placeholders {
		skip[strings.ToLower(p)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(entities))
	unique := make([]types.PlaceEntity, 0, len(entities))
	for _, e := range entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if _, placeholder := skip[strings.ToLower(name)]; placeholder {
			continue
		}
		key := dedupeKey(name, e.Coordinates.Latitude, e.Coordinates.Longitude)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}
