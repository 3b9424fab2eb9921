package subway

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

// LoadRideEdges reads the merged ride-edge CSV and emits canonical ride
// edges, detecting one of two schemas by column presence: an explicit
// edge list (line, from_station, to_station, seconds|time), or a
// sequential per-line table (line, station, time, cumulative_km?)
// where consecutive rows on the same line form an edge unless the
// cumulative distance decreases (a branch/restart, which breaks the
// chain without emitting an edge). It also returns the set of lines
// observed at each station, which GraphBuilder needs to place transfer
// edges. Deduplicates (line,a,b) and its reverse whatever their seconds,
// keeping the first occurrence.
func LoadRideEdges(path string) ([]models.RideEdge, map[string]map[string]bool, models.LoadReport, error) {
	var report models.LoadReport

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, report, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	text, encodingName, err := decodeMixedEncoding(raw)
	if err != nil {
		return nil, nil, report, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	report.SourceEncoding = encodingName

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, report, fmt.Errorf("%w: %s: empty file", ErrInputUnreadable, path)
	}
	cols := makeColumnMap(header)

	colLine := pickColumn(cols, "line", "호선", "line_id", "노선", "노선명")
	colFrom := pickColumn(cols, "from_station", "출발역", "from", "시작역", "전역_clean")
	colTo := pickColumn(cols, "to_station", "도착역", "to", "끝역", "역명_clean")
	colSec := pickColumn(cols, "seconds", "sec", "time_sec", "duration_s", "소요초", "소요시간(초)")
	colExpr := pickColumn(cols, "mmss", "소요시간", "time", "duration")

	stationLines := make(map[string]map[string]bool)
	addLine := func(station, line string) {
		if stationLines[station] == nil {
			stationLines[station] = make(map[string]bool)
		}
		stationLines[station][line] = true
	}

	var rawEdges []models.RideEdge

	switch {
	case colLine >= 0 && colFrom >= 0 && colTo >= 0 && (colSec >= 0 || colExpr >= 0):
		rawEdges, err = loadEdgeListSchema(reader, colLine, colFrom, colTo, colSec, colExpr, &report, addLine)
	default:
		colStation := pickColumn(cols, "역명", "station", "station_name", "name")
		colCum := pickColumn(cols, "호선별누계(km)", "누계", "누계km", "cumulative_km")
		if colLine < 0 || colStation < 0 || (colSec < 0 && colExpr < 0) {
			return nil, nil, report, ErrSchemaUndetected
		}
		rawEdges, err = loadSequentialSchema(reader, colLine, colStation, colSec, colExpr, colCum, &report, addLine)
	}
	if err != nil {
		return nil, nil, report, err
	}

	deduped := dedupeRideEdges(rawEdges, &report)
	return deduped, stationLines, report, nil
}

func loadEdgeListSchema(reader *csv.Reader, colLine, colFrom, colTo, colSec, colExpr int, report *models.LoadReport, addLine func(station, line string)) ([]models.RideEdge, error) {
	var edges []models.RideEdge
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.RowsSkipped++
			report.MalformedCells++
			continue
		}
		report.RowsRead++

		line := NormalizeLineLabel(getField(row, colLine))
		from := getField(row, colFrom)
		to := getField(row, colTo)
		if from == "" || to == "" || line == "" {
			report.RowsSkipped++
			continue
		}

		raw := getField(row, colSec)
		if raw == "" {
			raw = getField(row, colExpr)
		}
		seconds, ok := ParseSecondsStrict(raw)
		if !ok || seconds <= 0 {
			report.RowsSkipped++
			report.MalformedCells++
			continue
		}

		edges = append(edges, models.RideEdge{Line: line, FromStation: from, ToStation: to, Seconds: seconds})
		addLine(from, line)
		addLine(to, line)
	}
	return edges, nil
}

func loadSequentialSchema(reader *csv.Reader, colLine, colStation, colSec, colExpr, colCum int, report *models.LoadReport, addLine func(station, line string)) ([]models.RideEdge, error) {
	var edges []models.RideEdge
	type prevEntry struct {
		station string
		cum     float64
		hasCum  bool
	}
	prev := make(map[string]prevEntry)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.RowsSkipped++
			report.MalformedCells++
			continue
		}
		report.RowsRead++

		line := NormalizeLineLabel(getField(row, colLine))
		station := getField(row, colStation)
		if station == "" || line == "" {
			report.RowsSkipped++
			continue
		}
		addLine(station, line)

		raw := getField(row, colSec)
		if raw == "" {
			raw = getField(row, colExpr)
		}
		seconds, secOK := ParseSecondsStrict(raw)

		var cum float64
		hasCum := false
		if colCum >= 0 {
			cumRaw := getField(row, colCum)
			if cumRaw != "" {
				if parsed, ok := parseFloat(cumRaw); ok {
					cum = parsed
					hasCum = true
				}
			}
		}

		if p, ok := prev[line]; ok {
			decreased := p.hasCum && hasCum && cum < p.cum
			if secOK && seconds > 0 && !decreased {
				edges = append(edges, models.RideEdge{Line: line, FromStation: p.station, ToStation: station, Seconds: seconds})
			} else if !secOK {
				report.MalformedCells++
			}
		}
		prev[line] = prevEntry{station: station, cum: cum, hasCum: hasCum}
	}
	return edges, nil
}

// dedupeRideEdges treats (line,a,b) and (line,b,a) as the same
// unordered edge regardless of weight: the first occurrence wins, and
// every later occurrence — whether it repeats the same weight or
// conflicts with a distinct one — is dropped and counted as a
// DuplicateEdge.
func dedupeRideEdges(edges []models.RideEdge, report *models.LoadReport) []models.RideEdge {
	type key struct {
		line, a, b string
	}
	seen := make(map[key]bool, len(edges))
	var out []models.RideEdge
	for _, e := range edges {
		fwd := key{e.Line, e.FromStation, e.ToStation}
		rev := key{e.Line, e.ToStation, e.FromStation}
		if seen[fwd] || seen[rev] {
			report.DuplicateEdges++
			continue
		}
		seen[fwd] = true
		seen[rev] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		if out[i].FromStation != out[j].FromStation {
			return out[i].FromStation < out[j].FromStation
		}
		return out[i].ToStation < out[j].ToStation
	})
	return out
}
