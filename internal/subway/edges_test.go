package subway

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRideEdgesEdgeListSchema(t *testing.T) {
	path := writeTempCSV(t, "line,from_station,to_station,seconds\n1호선,A,B,120\n1호선,B,C,90\n")

	edges, stationLines, report, err := LoadRideEdges(path)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
	assert.Equal(t, 2, report.RowsRead)
	assert.True(t, stationLines["A"]["1호선"])
	assert.True(t, stationLines["B"]["1호선"])
}

func TestLoadRideEdgesSequentialSchemaBreaksOnCumulativeDecrease(t *testing.T) {
	path := writeTempCSV(t, "line,station,time,cumulative_km\n"+
		"1호선,A,0,0.0\n"+
		"1호선,B,120,1.5\n"+
		"1호선,C,90,1.0\n"+ // cumulative decreased: no edge B->C
		"1호선,D,100,2.5\n")

	edges, _, _, err := LoadRideEdges(path)
	require.NoError(t, err)

	var pairs [][2]string
	for _, e := range edges {
		pairs = append(pairs, [2]string{e.FromStation, e.ToStation})
	}
	assert.Contains(t, pairs, [2]string{"A", "B"})
	assert.NotContains(t, pairs, [2]string{"B", "C"})
	// the chain resumes from C: only the edge across the decrease is
	// dropped, and C starts the chain for the rows after it.
	assert.Contains(t, pairs, [2]string{"C", "D"})
}

func TestDedupeRideEdgesDropsConflictingWeight(t *testing.T) {
	edges := []models.RideEdge{
		{Line: "1호선", FromStation: "A", ToStation: "B", Seconds: 120},
		{Line: "1호선", FromStation: "B", ToStation: "A", Seconds: 999},
		{Line: "1호선", FromStation: "C", ToStation: "D", Seconds: 60},
	}
	var report models.LoadReport
	out := dedupeRideEdges(edges, &report)

	assert.Len(t, out, 2)
	assert.Equal(t, 1, report.DuplicateEdges)
	for _, e := range out {
		if e.Line == "1호선" && e.FromStation == "A" {
			assert.Equal(t, 120, e.Seconds)
		}
	}
}

func TestLoadRideEdgesUnreadableFile(t *testing.T) {
	_, _, _, err := LoadRideEdges(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrInputUnreadable)
}

func TestLoadRideEdgesUndetectedSchema(t *testing.T) {
	path := writeTempCSV(t, "foo,bar\n1,2\n")
	_, _, _, err := LoadRideEdges(path)
	assert.ErrorIs(t, err, ErrSchemaUndetected)
}
