package bridge

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hosunrail/hosunrail_core/internal/cache"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/routing"
	"github.com/hosunrail/hosunrail_core/internal/subway"
)

// timesFromCached serves a source station's full (uncut) travel-time
// set from the route cache when present, falling back to Router and
// populating the cache on a miss. Per-request cutoffs and thresholds
// are applied by the caller against the unbounded result, since the
// cache key only varies with the inputs that change the underlying
// Dijkstra run (source, dwell, default transfer), not a client's
// cutoff choice.
func (s *Server) timesFromCached(ctx context.Context, source string) []models.TravelTime {
	key := cache.Key(source, s.dwellSec, s.defaultTransferSec)
	if cached, err := cache.GetTimes(ctx, key); err == nil && cached != nil {
		return cached
	}

	times := s.router.TimesFrom(source, s.dwellSec, 0)
	_ = cache.SetTimes(ctx, key, times, s.cacheTTL)
	return times
}

type nearestStationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// nearestStation answers POST /api/nearest-station {lat,lng} with the
// closest catalog entry and the distance in kilometers, mirroring the
// original find_nearest_station contract.
func (s *Server) nearestStation(c *fiber.Ctx) error {
	var req nearestStationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Lat == 0 && req.Lng == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing coordinates"})
	}

	station, distanceKM, ok := subway.NearestStation(s.coords, req.Lat, req.Lng)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no stations in catalog"})
	}

	return c.JSON(fiber.Map{
		"name":     station.Name,
		"lat":      station.Lat,
		"lng":      station.Lon,
		"distance": distanceKM,
	})
}

type accessibleRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Minutes int     `json:"minutes"`
}

// accessible answers POST /api/accessible {lat,lng,minutes}: resolve
// the nearest station to (lat,lng), then every destination reachable
// within minutes*60 seconds of it.
func (s *Server) accessible(c *fiber.Ctx) error {
	var req accessibleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Minutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "minutes must be positive"})
	}

	station, _, ok := subway.NearestStation(s.coords, req.Lat, req.Lng)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no stations in catalog"})
	}

	cutoff := req.Minutes * 60
	times := s.timesFromCached(c.Context(), station.Name)

	reachable := make([]models.TravelTime, 0, len(times))
	for _, tt := range times {
		if tt.Seconds <= cutoff {
			reachable = append(reachable, tt)
		}
	}

	return c.JSON(fiber.Map{
		"origin_station": station.Name,
		"cutoff_seconds": cutoff,
		"reachable":      reachable,
	})
}

type contourDataRequest struct {
	Station       string `json:"station"`
	ThresholdsMin []int  `json:"thresholds"`
}

// contourData answers POST /api/contour-data {station,thresholds[]}
// by delegating to ContourBinner, using the full-graph source coordinate
// (if known) as the band-0 center. thresholds arrive in minutes (the
// wire contract), converted to seconds before reaching BinByThresholds,
// which operates in seconds like the rest of the routing package.
func (s *Server) contourData(c *fiber.Ctx) error {
	var req contourDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Station == "" || len(req.ThresholdsMin) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "station and thresholds are required"})
	}
	if !s.g.HasStation(req.Station) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown station"})
	}

	coordsByName := stationCoordMap(s.coords)
	source, ok := coordsByName[req.Station]
	if !ok {
		source = models.StationCoord{Name: req.Station}
	}

	thresholdsSec := make([]int, len(req.ThresholdsMin))
	for i, m := range req.ThresholdsMin {
		thresholdsSec[i] = m * 60
	}

	times := s.timesFromCached(c.Context(), req.Station)
	bands := routing.BinByThresholds(source, times, coordsByName, thresholdsSec)

	return c.JSON(fiber.Map{
		"station": req.Station,
		"bands":   bands,
	})
}

// stationCoordMap indexes a coordinate catalog by station name for
// ContourBinner's per-destination lookup.
func stationCoordMap(coords []models.StationCoord) map[string]models.StationCoord {
	m := make(map[string]models.StationCoord, len(coords))
	for _, c := range coords {
		m[c.Name] = c
	}
	return m
}
