// Package export writes the all-pairs and single-source travel-time CSV
// outputs, matching the reference exporter's BOM-prefixed UTF-8,
// sorted-row, floor-minutes convention.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
	"github.com/hosunrail/hosunrail_core/internal/routing"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"src_station", "dst_station", "seconds", "minutes"}

// WriteAllPairsCSV computes and writes every reachable ordered pair
// (src≠dst) across the whole graph, iterating sources and destinations
// in sorted order.
func WriteAllPairsCSV(w io.Writer, g *graph.Graph, router *routing.Router, dwellSec, cutoffSec int) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, src := range g.Stations() {
		times := router.TimesFrom(src, dwellSec, cutoffSec)
		if err := writeRows(cw, times); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSingleSourceCSV writes only the rows for the given source
// station.
func WriteSingleSourceCSV(w io.Writer, router *routing.Router, sourceStation string, dwellSec, cutoffSec int) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	times := router.TimesFrom(sourceStation, dwellSec, cutoffSec)
	if err := writeRows(cw, times); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, times []models.TravelTime) error {
	for _, t := range times {
		row := []string{
			t.SrcStation,
			t.DstStation,
			strconv.Itoa(t.Seconds),
			strconv.Itoa(t.Minutes()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s->%s: %w", t.SrcStation, t.DstStation, err)
		}
	}
	return nil
}
