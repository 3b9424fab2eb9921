// Command export-times builds the routing graph from a merged
// ride-edge CSV and an optional transfer-penalty CSV, then writes the
// all-pairs travel-time matrix (and, if --source-station is given, a
// single-source CSV) to disk.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hosunrail/hosunrail_core/internal/export"
	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/routing"
	"github.com/hosunrail/hosunrail_core/internal/subway"
)

func main() {
	mergedCSV := flag.String("merged-csv", "merged_clean.csv", "Path to the merged ride-edge CSV")
	transferCSV := flag.String("transfer-times-csv", "transfer_times.csv", "Path to the transfer-penalty CSV")
	defaultTransferSec := flag.Int("default-transfer-sec", 180, "Fallback transfer seconds when no override matches")
	dwellSec := flag.Int("dwell-sec", 40, "Per-stop dwell seconds charged at every intermediate ride arrival")
	outAll := flag.String("out-all", "station_pairs_all_with_stop.csv", "Output path for the all-pairs CSV")
	sourceStation := flag.String("source-station", "", "If set, also write a single-source CSV for this station")

	flag.Parse()

	if _, err := os.Stat(*mergedCSV); os.IsNotExist(err) {
		log.Fatalf("merged CSV not found: %s", *mergedCSV)
	}

	rideEdges, stationLines, report, err := subway.LoadRideEdges(*mergedCSV)
	if err != nil {
		log.Fatalf("failed to load ride edges: %v", err)
	}
	log.Printf("ride edges: %d read, %d skipped, %d duplicate, %d malformed, encoding=%s",
		report.RowsRead, report.RowsSkipped, report.DuplicateEdges, report.MalformedCells, report.SourceEncoding)

	overrides, err := loadTransferOverrides(*transferCSV, *defaultTransferSec)
	if err != nil {
		log.Fatalf("failed to load transfer overrides: %v", err)
	}

	g := graph.Build(rideEdges, stationLines, overrides)
	if g.NodeCount() == 0 {
		log.Fatalf("graph build produced no nodes; check input CSV schema")
	}
	router := routing.NewRouter(g)

	outFile, err := os.Create(*outAll)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *outAll, err)
	}
	if err := export.WriteAllPairsCSV(outFile, g, router, *dwellSec, 0); err != nil {
		outFile.Close()
		log.Fatalf("failed to write all-pairs CSV: %v", err)
	}
	if err := outFile.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", *outAll, err)
	}
	log.Printf("wrote %s (stations=%d, nodes=%d)", *outAll, len(g.Stations()), g.NodeCount())

	if *sourceStation != "" {
		if !g.HasStation(*sourceStation) {
			log.Fatalf("source station %q not found in graph", *sourceStation)
		}
		outSingle := fmt.Sprintf("station_pairs_from_%s_with_stop.csv", *sourceStation)
		singleFile, err := os.Create(outSingle)
		if err != nil {
			log.Fatalf("failed to create %s: %v", outSingle, err)
		}
		if err := export.WriteSingleSourceCSV(singleFile, router, *sourceStation, *dwellSec, 0); err != nil {
			singleFile.Close()
			log.Fatalf("failed to write single-source CSV: %v", err)
		}
		if err := singleFile.Close(); err != nil {
			log.Fatalf("failed to close %s: %v", outSingle, err)
		}
		log.Printf("wrote %s", outSingle)
	}

	os.Exit(0)
}

func loadTransferOverrides(path string, defaultTransferSec int) (*models.TransferOverrides, error) {
	if path == "" {
		return &models.TransferOverrides{
			PerPair:    make(map[string]int),
			PerStation: make(map[string]int),
			Default:    defaultTransferSec,
		}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("transfer CSV %s not found, falling back to default-transfer-sec=%d for every pair", filepath.Clean(path), defaultTransferSec)
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
	log.Printf("transfer overrides: %d read, %d skipped, %d malformed, encoding=%s",
		report.RowsRead, report.RowsSkipped, report.MalformedCells, report.SourceEncoding)
	return overrides, nil
}
