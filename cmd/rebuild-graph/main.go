package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hosunrail/hosunrail_core/internal/db"
	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/stationstore"
)

func main() {
	log.Println("hosunrail core - graph rebuild tool")
	log.Println("===================================")

	log.Println("connecting to database...")
	dbPool, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("database connected")

	ctx := context.Background()

	var rideEdgeCount, stationCount int
	if err := dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM ride_edge").Scan(&rideEdgeCount); err != nil {
		log.Fatalf("failed to count ride edges: %v", err)
	}
	if err := dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM station").Scan(&stationCount); err != nil {
		log.Fatalf("failed to count stations: %v", err)
	}

	log.Printf("stationstore statistics:")
	log.Printf("   stations:  %d", stationCount)
	log.Printf("   ride edges: %d", rideEdgeCount)

	if rideEdgeCount == 0 {
		log.Fatalf("no ride edges found in stationstore. Run the importer first!")
	}

	fmt.Println()
	fmt.Println("This will replace the in-memory routing graph in place.")
	fmt.Print("Continue? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		log.Println("rebuild cancelled")
		return
	}

	fmt.Println()
	log.Println("starting graph rebuild...")
	start := time.Now()

	rideEdges, stationLines, overrides, err := stationstore.LoadGraphInputs(ctx, dbPool)
	if err != nil {
		log.Fatalf("failed to load graph inputs: %v", err)
	}

	next := graph.Build(rideEdges, stationLines, overrides)
	graph.Get().Swap(next)

	duration := time.Since(start)

	fmt.Println()
	log.Println("graph rebuild completed")
	log.Printf("duration: %v", duration)
	log.Printf("graph statistics:")
	log.Printf("   nodes:    %d", next.NodeCount())
	log.Printf("   stations: %d", len(next.Stations()))

	fmt.Println()
	log.Println("graph is ready for routing")
}
