package models

import "time"

// Line identifies a single service line, including express variants,
// which are treated as distinct lines reachable only via transfer.
type Line struct {
	Label string // canonical label, e.g. "2호선" or "2호선급행"
}

// Station identifies a physical stop by its canonical name.
type Station struct {
	Name string
}

// StationCoord carries the lat/lon of a station, used by ContourBinner
// and the nearest-station bridge handler. Not every station in the
// graph necessarily has a coordinate.
type StationCoord struct {
	Name string
	Lat  float64
	Lon  float64
}

// Node is a (station, line) pair — the unit the routing graph is built
// over, since dwell and transfer semantics depend on which line a rider
// is currently on, not just which station they occupy.
type Node struct {
	Station string
	Line    string
}

// RideEdge connects two nodes on the same line between adjacent stops.
// Undirected: loaders emit it once, GraphBuilder installs it both ways.
type RideEdge struct {
	Line        string
	FromStation string
	ToStation   string
	Seconds     int
}

// TransferEdge connects two nodes at the same station across different
// lines. Seconds is resolved by GraphBuilder from TransferOverrides
// before the edge is installed.
type TransferEdge struct {
	Station  string
	LineFrom string
	LineTo   string
	Seconds  int
}

// TransferOverrides holds the per-pair and per-station transfer time
// tables parsed from the transfer-times CSV, plus the CLI/global
// fallback applied when neither matches.
type TransferOverrides struct {
	// PerPair is keyed by an order-independent pair key; see PairKey.
	PerPair map[string]int
	// PerStation is keyed by station name alone.
	PerStation map[string]int
	// Default is the CLI/global fallback (spec default: 180s).
	Default int
}

// PairKey builds an order-independent lookup key for a (station, lineA,
// lineB) transfer pair, so the override resolves the same way regardless
// of which line is named first.
func PairKey(station, lineA, lineB string) string {
	if lineA > lineB {
		lineA, lineB = lineB, lineA
	}
	return station + "\x00" + lineA + "\x00" + lineB
}

// Resolve returns the transfer seconds for moving between lineFrom and
// lineTo at station, honoring precedence: per-pair override, then
// per-station override, then the default.
func (t *TransferOverrides) Resolve(station, lineFrom, lineTo string) int {
	if t == nil {
		return 0
	}
	if secs, ok := t.PerPair[PairKey(station, lineFrom, lineTo)]; ok {
		return secs
	}
	if secs, ok := t.PerStation[station]; ok {
		return secs
	}
	return t.Default
}

// TravelTime is one row of a routing result: the fastest time from a
// source station to Dst, in seconds.
type TravelTime struct {
	SrcStation string
	DstStation string
	Seconds    int
}

// Minutes floors Seconds to whole minutes, matching the reference
// exporter's convention (never rounds or ceils).
func (t TravelTime) Minutes() int {
	return t.Seconds / 60
}

// ContourStation is one destination placed into a ContourBand: its
// coordinate plus the travel time that earned it that band.
type ContourStation struct {
	StationCoord
	Seconds int
}

// ContourBand is one disjoint time band produced by ContourBinner.
type ContourBand struct {
	UpperBoundSeconds int // band covers (previous bound, UpperBoundSeconds]; the first band starts at 0
	Stations          []ContourStation
}

// LoadReport accumulates non-fatal counts from a CSV load, surfaced to
// the caller instead of aborting the whole load on a single bad row.
type LoadReport struct {
	RowsRead       int
	RowsSkipped    int
	DuplicateEdges int
	MalformedCells int
	SourceEncoding string
	LoadedAt       time.Time
}
