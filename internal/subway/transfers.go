package subway

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

// LoadTransferOverrides reads the transfer-penalty CSV into a
// TransferOverrides table. A row with both line columns present and
// non-empty (and distinct after normalization) records a pair override;
// a row missing either line column records a per-station default
// (TransferWithoutLines — not an error, just the documented fallback
// for that row). defaultTransferSec fills TransferOverrides.Default.
func LoadTransferOverrides(path string, defaultTransferSec int) (*models.TransferOverrides, models.LoadReport, error) {
	var report models.LoadReport

	overrides := &models.TransferOverrides{
		PerPair:    make(map[string]int),
		PerStation: make(map[string]int),
		Default:    defaultTransferSec,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	text, encodingName, err := decodeMixedEncoding(raw)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	report.SourceEncoding = encodingName

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: empty file", ErrInputUnreadable, path)
	}
	cols := makeColumnMap(header)

	colStation := pickColumn(cols, "station", "역", "역명", "station_name", "환승역명")
	if colStation < 0 {
		return nil, report, ErrSchemaUndetected
	}
	colLineFrom := pickColumn(cols, "line_from", "from_line", "linefrom", "출발호선", "호선from", "호선")
	colLineTo := pickColumn(cols, "line_to", "to_line", "lineto", "도착호선", "호선to", "환승노선")
	colSec := pickColumn(cols, "transfer_seconds", "seconds", "sec", "소요초", "환승초", "환승시간(초)")
	colExpr := pickColumn(cols, "mmss", "소요시간", "환승시간", "time", "환승소요시간")

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

		station := getField(row, colStation)
		if station == "" {
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

		lineFrom := getField(row, colLineFrom)
		lineTo := getField(row, colLineTo)
		if lineFrom != "" && lineTo != "" {
			lf := NormalizeLineLabel(lineFrom)
			lt := NormalizeLineLabel(lineTo)
			if lf != "" && lt != "" && lf != lt {
				overrides.PerPair[models.PairKey(station, lf, lt)] = seconds
				continue
			}
		}
		// Either one or both line columns are blank: TransferWithoutLines —
		// treated as a per-station default for this station.
		overrides.PerStation[station] = seconds
	}

	return overrides, report, nil
}
