package subway

import "strings"

// columnMap maps a lower-cased header name to its column index, the way
// the reference GTFS loader keyed columns by name instead of position.
type columnMap map[string]int

func makeColumnMap(header []string) columnMap {
	m := make(columnMap, len(header))
	for i, name := range header {
		m[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return m
}

// pickColumn returns the row index of the first candidate header name
// present in cols, or -1 if none match.
func pickColumn(cols columnMap, candidates ...string) int {
	for _, cand := range candidates {
		if idx, ok := cols[cand]; ok {
			return idx
		}
	}
	return -1
}

// getField returns row[idx] trimmed, or "" if idx is out of range.
func getField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
