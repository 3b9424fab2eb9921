package routing

import (
	"sort"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

// BinByThresholds partitions times into disjoint bands from sorted
// ascending thresholds (in seconds): a destination falls into the
// smallest band whose threshold it satisfies and is never repeated in
// a higher band. coords supplies each destination's coordinates; a
// destination with no known coordinate is included with a StationCoord
// that carries only its name (zero Lat/Lon). source's own coordinate is included as the band-0
// center at time 0, matching the "source appears in the innermost
// band" rule. Each station carries the travel time that placed it in
// its band, not just its coordinate.
func BinByThresholds(source models.StationCoord, times []models.TravelTime, coords map[string]models.StationCoord, thresholdsSec []int) []models.ContourBand {
	sorted := append([]int(nil), thresholdsSec...)
	sort.Ints(sorted)

	bands := make([]models.ContourBand, len(sorted))
	for i, t := range sorted {
		bands[i] = models.ContourBand{UpperBoundSeconds: t}
	}

	if len(bands) > 0 {
		bands[0].Stations = append(bands[0].Stations, models.ContourStation{StationCoord: source, Seconds: 0})
	}

	for _, tt := range times {
		idx := smallestFittingBand(sorted, tt.Seconds)
		if idx < 0 {
			continue
		}
		coord, ok := coords[tt.DstStation]
		if !ok {
			coord = models.StationCoord{Name: tt.DstStation}
		}
		bands[idx].Stations = append(bands[idx].Stations, models.ContourStation{StationCoord: coord, Seconds: tt.Seconds})
	}

	return bands
}

// smallestFittingBand returns the index of the smallest threshold that
// seconds satisfies (seconds <= threshold), or -1 if it fits none.
func smallestFittingBand(sortedThresholds []int, seconds int) int {
	for i, t := range sortedThresholds {
		if seconds <= t {
			return i
		}
	}
	return -1
}
