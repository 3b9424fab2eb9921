package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hosunrail/hosunrail_core/internal/db"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/stationstore"
	"github.com/hosunrail/hosunrail_core/internal/subway"
)

func main() {
	mergedCSV := flag.String("merged-csv", "", "Path to the merged ride-edge CSV (required)")
	transferCSV := flag.String("transfer-times-csv", "", "Path to the transfer-penalty CSV (optional)")
	defaultTransferSec := flag.Int("default-transfer-sec", 180, "Fallback transfer seconds when no override matches")

	flag.Parse()

	if *mergedCSV == "" {
		fmt.Println("Usage: importer --merged-csv=<path.csv> [--transfer-times-csv=<path.csv>] [--default-transfer-sec=180]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*mergedCSV); os.IsNotExist(err) {
		log.Fatalf("merged CSV not found: %s", *mergedCSV)
	}

	log.Println("Starting station catalog import...")

	pool, err := db.GetDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	log.Println("Step 1/3: Parsing ride edges...")
	rideEdges, _, report, err := subway.LoadRideEdges(*mergedCSV)
	if err != nil {
		log.Fatalf("Failed to parse ride edges: %v", err)
	}
	log.Printf("  %d rows read, %d skipped, %d duplicate edges, %d malformed cells, encoding=%s",
		report.RowsRead, report.RowsSkipped, report.DuplicateEdges, report.MalformedCells, report.SourceEncoding)

	log.Println("Step 2/3: Parsing transfer overrides...")
	overrides, err := loadOverrides(*transferCSV, *defaultTransferSec)
	if err != nil {
		log.Fatalf("Failed to parse transfer overrides: %v", err)
	}

	log.Println("Step 3/3: Importing into Postgres...")
	importer := stationstore.NewImporter(pool)
	if err := importer.Import(ctx, rideEdges, overrides); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed successfully: %d ride edges", len(rideEdges))
	os.Exit(0)
}

// loadOverrides parses the transfer CSV when one was given, and
// otherwise returns an empty override table carrying just the
// CLI-supplied default so every pair falls through to it.
func loadOverrides(path string, defaultTransferSec int) (*models.TransferOverrides, error) {
	if path == "" {
		return &models.TransferOverrides{
			PerPair:    make(map[string]int),
			PerStation: make(map[string]int),
			Default:    defaultTransferSec,
		}, nil
	}

	overrides, report, err := subway.LoadTransferOverrides(path, defaultTransferSec)
	if err != nil {
		return nil, err
	}
	log.Printf("  %d rows read, %d skipped, %d malformed cells, encoding=%s",
		report.RowsRead, report.RowsSkipped, report.MalformedCells, report.SourceEncoding)
	return overrides, nil
}
