package subway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

// stationCoordRow mirrors the original station_coords.json shape: an
// array of {name, lat, lng} objects, lat/lng occasionally encoded as
// strings rather than numbers.
type stationCoordRow struct {
	Name string      `json:"name"`
	Lat  json.Number `json:"lat"`
	Lng  json.Number `json:"lng"`
}

// LoadStationCoords reads the station coordinate catalog the bridge
// handlers serve from (nearest-station, contour-data's band centers).
func LoadStationCoords(path string) ([]models.StationCoord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station coords: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows []stationCoordRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode station coords: %w", err)
	}

	coords := make([]models.StationCoord, 0, len(rows))
	for _, r := range rows {
		lat, err := r.Lat.Float64()
		if err != nil {
			continue
		}
		lng, err := r.Lng.Float64()
		if err != nil {
			continue
		}
		coords = append(coords, models.StationCoord{Name: r.Name, Lat: lat, Lon: lng})
	}
	return coords, nil
}

// NearestStation finds the catalog entry closest to (lat,lng) by
// haversine distance, returning the station and the distance in
// kilometers. ok is false for an empty catalog.
func NearestStation(coords []models.StationCoord, lat, lng float64) (station models.StationCoord, distanceKM float64, ok bool) {
	if len(coords) == 0 {
		return models.StationCoord{}, 0, false
	}

	best := coords[0]
	bestDist := haversineKM(lat, lng, best.Lat, best.Lon)
	for _, c := range coords[1:] {
		d := haversineKM(lat, lng, c.Lat, c.Lon)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist, true
}

// haversineKM computes great-circle distance in kilometers, the same
// formula the teacher's routing package uses for nearest-node lookups,
// scaled from meters to kilometers to match the original contract.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
