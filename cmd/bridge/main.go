package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hosunrail/hosunrail_core/internal/bridge"
	"github.com/hosunrail/hosunrail_core/internal/cache"
	"github.com/hosunrail/hosunrail_core/internal/db"
	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/stationstore"
	"github.com/hosunrail/hosunrail_core/internal/subway"
)

func main() {
	log.Println("starting hosunrail bridge server...")

	if _, err := db.GetDB(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("database connection established")

	if _, err := cache.GetClient(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer cache.Close()
	log.Println("Redis connection established")

	pool, _ := db.GetDB()
	rideEdges, stationLines, overrides, err := stationstore.LoadGraphInputs(context.Background(), pool)
	if err != nil {
		log.Fatalf("failed to load graph inputs: %v", err)
	}
	g := graph.Get()
	g.Swap(graph.Build(rideEdges, stationLines, overrides))
	log.Printf("routing graph loaded: %d stations, %d nodes", len(g.Stations()), g.NodeCount())

	var coords []models.StationCoord
	if coordsPath := getEnv("STATION_COORDS_PATH", ""); coordsPath != "" {
		coords, err = subway.LoadStationCoords(coordsPath)
		if err != nil {
			log.Printf("warning: failed to load station coordinates from %s: %v", coordsPath, err)
		} else {
			log.Printf("loaded %d station coordinates", len(coords))
		}
	}

	dwellSec := getEnvInt("DWELL_SEC", 40)
	defaultTransferSec := getEnvInt("DEFAULT_TRANSFER_SEC", 180)

	srv := bridge.NewServer(g, coords, dwellSec, defaultTransferSec)

	port := getEnv("API_PORT", "8080")
	addr := fmt.Sprintf(":%s", port)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("shutting down gracefully...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	}()

	if err := srv.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
