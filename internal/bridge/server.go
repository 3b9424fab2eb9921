// Package bridge is the thin HTTP surface over Router/ContourBinner:
// three fiber handlers, no path reconstruction, no auth, no partner
// tiers — a public single-tenant data API over an immutable graph.
package bridge

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hosunrail/hosunrail_core/internal/cache"
	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/routing"
)

// Server wires the routing graph, a Router over it, the station
// coordinate catalog, and the route-times cache into the three query
// endpoints.
type Server struct {
	app    *fiber.App
	g      *graph.Graph
	router *routing.Router
	coords []models.StationCoord

	defaultTransferSec int
	dwellSec           int
	cacheTTL           time.Duration
}

// NewServer builds the fiber app and registers routes. coords may be
// nil/empty if no station_coords.json was supplied; nearest-station
// and accessible then always report "not found".
func NewServer(g *graph.Graph, coords []models.StationCoord, dwellSec, defaultTransferSec int) *Server {
	s := &Server{
		g:                  g,
		router:             routing.NewRouter(g),
		coords:             coords,
		dwellSec:           dwellSec,
		defaultTransferSec: defaultTransferSec,
		cacheTTL:           cache.LoadConfigFromEnv().TTL,
	}

	app := fiber.New(fiber.Config{
		AppName:      "hosunrail bridge",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", s.health)
	app.Post("/api/nearest-station", s.nearestStation)
	app.Post("/api/accessible", s.accessible)
	app.Post("/api/contour-data", s.contourData)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "endpoint not found"})
	})

	s.app = app
	return s
}

// Listen starts the server, blocking until it stops or errors.
func (s *Server) Listen(addr string) error {
	log.Printf("bridge listening on http://localhost%s", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"graph_loaded": s.g.IsLoaded(),
	})
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("bridge: error: %v", err)
	return c.Status(code).JSON(fiber.Map{"error": fmt.Sprintf("%v", err)})
}
