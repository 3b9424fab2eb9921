// Package subway normalizes the heterogeneous CSV inputs of a rail
// network (ride edges, transfer penalties) into the canonical records
// the routing graph consumes.
package subway

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var mmssPattern = regexp.MustCompile(`^(\d+):(\d{2})$`)

// ParseSecondsStrict parses a CSV cell into integer seconds. "M:SS" is
// read as minutes:seconds; any other numeric string is taken as seconds
// verbatim and rounded to the nearest integer — it is never multiplied
// by 60. Thousands separators are stripped before parsing. Returns
// (0, false) for empty or unparseable input.
func ParseSecondsStrict(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	if m := mmssPattern.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		return minutes*60 + seconds, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}

// FormatMMSS renders seconds back into "M:SS", the form
// ParseSecondsStrict reads as minutes:seconds.
func FormatMMSS(seconds int) string {
	m := seconds / 60
	s := seconds % 60
	return strconv.Itoa(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// parseFloat parses a cumulative-distance cell, stripping thousands
// separators the same way ParseSecondsStrict does.
func parseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
