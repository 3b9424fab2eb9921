// Package stationstore persists the parsed station/line/edge catalog to
// Postgres, so the in-memory routing graph can be rebuilt without
// re-reading the source CSVs.
package stationstore

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

const batchSize = 1000

// Importer upserts a parsed ride-edge/transfer-override catalog into
// Postgres.
type Importer struct {
	db *pgxpool.Pool
}

// NewImporter creates an Importer backed by db.
func NewImporter(db *pgxpool.Pool) *Importer {
	return &Importer{db: db}
}

// Import writes rideEdges and overrides into the station/line/ride_edge/
// transfer_override tables inside a single transaction, following the
// teacher's batched-upsert shape (pgx.Batch; ON CONFLICT DO NOTHING for
// lines, stations and ride edges, DO UPDATE for transfer overrides).
func (im *Importer) Import(ctx context.Context, rideEdges []models.RideEdge, overrides *models.TransferOverrides) error {
	tx, err := im.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := importRideEdges(ctx, tx, rideEdges); err != nil {
		return fmt.Errorf("import ride edges: %w", err)
	}
	if err := importOverrides(ctx, tx, overrides); err != nil {
		return fmt.Errorf("import transfer overrides: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import transaction: %w", err)
	}
	log.Printf("stationstore: imported %d ride edges", len(rideEdges))
	return nil
}

func importRideEdges(ctx context.Context, tx pgx.Tx, rideEdges []models.RideEdge) error {
	batch := &pgx.Batch{}
	for _, e := range rideEdges {
		batch.Queue(`
			INSERT INTO line (label) VALUES ($1)
			ON CONFLICT (label) DO NOTHING
		`, e.Line)
		batch.Queue(`
			INSERT INTO station (name) VALUES ($1), ($2)
			ON CONFLICT (name) DO NOTHING
		`, e.FromStation, e.ToStation)
		batch.Queue(`
			INSERT INTO ride_edge (line, from_station, to_station, seconds)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (line, from_station, to_station) DO NOTHING
		`, e.Line, e.FromStation, e.ToStation, e.Seconds)

		if batch.Len() >= batchSize {
			if err := execBatch(ctx, tx, batch); err != nil {
				return err
			}
			batch = &pgx.Batch{}
		}
	}
	if batch.Len() > 0 {
		return execBatch(ctx, tx, batch)
	}
	return nil
}

func importOverrides(ctx context.Context, tx pgx.Tx, overrides *models.TransferOverrides) error {
	if overrides == nil {
		return nil
	}
	batch := &pgx.Batch{}
	for station, secs := range overrides.PerStation {
		batch.Queue(`
			INSERT INTO transfer_override (station, line_from, line_to, seconds)
			VALUES ($1, NULL, NULL, $2)
			ON CONFLICT (station, line_from, line_to) DO UPDATE SET seconds = EXCLUDED.seconds
		`, station, secs)
	}
	for pairKey, secs := range overrides.PerPair {
		station, lineFrom, lineTo, ok := splitPairKey(pairKey)
		if !ok {
			continue
		}
		batch.Queue(`
			INSERT INTO transfer_override (station, line_from, line_to, seconds)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (station, line_from, line_to) DO UPDATE SET seconds = EXCLUDED.seconds
		`, station, lineFrom, lineTo, secs)
	}
	if batch.Len() > 0 {
		return execBatch(ctx, tx, batch)
	}
	return nil
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch execution failed at query %d: %w", i, err)
		}
	}
	return nil
}

// LoadGraphInputs reads the durable catalog back into the same
// in-memory record shapes EdgeLoader/TransferLoader produce, so
// graph.Build never has to know whether its input came from CSV or
// Postgres.
func LoadGraphInputs(ctx context.Context, db *pgxpool.Pool) ([]models.RideEdge, map[string]map[string]bool, *models.TransferOverrides, error) {
	rideEdges, stationLines, err := loadRideEdges(ctx, db)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load ride edges: %w", err)
	}
	overrides, err := loadOverrides(ctx, db)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load transfer overrides: %w", err)
	}
	return rideEdges, stationLines, overrides, nil
}

func loadRideEdges(ctx context.Context, db *pgxpool.Pool) ([]models.RideEdge, map[string]map[string]bool, error) {
	rows, err := db.Query(ctx, `SELECT line, from_station, to_station, seconds FROM ride_edge`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var edges []models.RideEdge
	stationLines := make(map[string]map[string]bool)
	for rows.Next() {
		var e models.RideEdge
		if err := rows.Scan(&e.Line, &e.FromStation, &e.ToStation, &e.Seconds); err != nil {
			log.Printf("stationstore: warning: failed to scan ride edge: %v", err)
			continue
		}
		edges = append(edges, e)
		addStationLine(stationLines, e.FromStation, e.Line)
		addStationLine(stationLines, e.ToStation, e.Line)
	}
	return edges, stationLines, rows.Err()
}

func loadOverrides(ctx context.Context, db *pgxpool.Pool) (*models.TransferOverrides, error) {
	overrides := &models.TransferOverrides{
		PerPair:    make(map[string]int),
		PerStation: make(map[string]int),
	}

	rows, err := db.Query(ctx, `SELECT station, line_from, line_to, seconds FROM transfer_override`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var station string
		var lineFrom, lineTo *string
		var seconds int
		if err := rows.Scan(&station, &lineFrom, &lineTo, &seconds); err != nil {
			log.Printf("stationstore: warning: failed to scan transfer override: %v", err)
			continue
		}
		if lineFrom != nil && lineTo != nil {
			overrides.PerPair[models.PairKey(station, *lineFrom, *lineTo)] = seconds
		} else {
			overrides.PerStation[station] = seconds
		}
	}
	return overrides, rows.Err()
}

func addStationLine(m map[string]map[string]bool, station, line string) {
	if m[station] == nil {
		m[station] = make(map[string]bool)
	}
	m[station][line] = true
}

func splitPairKey(key string) (station, lineFrom, lineTo string, ok bool) {
	parts := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	parts = append(parts, key[start:])
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
