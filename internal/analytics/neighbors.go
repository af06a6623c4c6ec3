package analytics

import (
	"math"
	"sort"
)

const (
	// neighborMaxDegrees is the half-width of the lat/lon box used to find
	// comparison stations.
	neighborMaxDegrees = 1.0

	maxNeighbors = 3
)

// NearbyStations finds up to three comparison stations within ±1° latitude
// and longitude of target that have a known current percent-of-median,
// ordered by Manhattan distance in degrees.
func NearbyStations(target StationMeta, all []StationMeta) []NeighborComparison {
	var candidates []NeighborComparison
	for _, s := range all {
		if s.ID == target.ID {
			continue
		}
		if s.CurrentValue == nil || s.PctOfMedian == nil {
			continue
		}
		dLat := math.Abs(s.Lat - target.Lat)
		dLon := math.Abs(s.Lon - target.Lon)
		if dLat > neighborMaxDegrees || dLon > neighborMaxDegrees {
			continue
		}
		candidates = append(candidates, NeighborComparison{
			ID:          s.ID,
			Name:        s.Name,
			DistanceDeg: dLat + dLon,
			PctOfMedian: *s.PctOfMedian,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceDeg < candidates[j].DistanceDeg
	})

	if len(candidates) > maxNeighbors {
		candidates = candidates[:maxNeighbors]
	}
	return candidates
}
