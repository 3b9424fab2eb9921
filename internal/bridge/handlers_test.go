package bridge

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rideEdges := []models.RideEdge{
		{Line: "1호선", FromStation: "시청", ToStation: "서울역", Seconds: 120},
	}
	g := graph.Build(rideEdges, nil, &models.TransferOverrides{Default: 180})
	coords := []models.StationCoord{
		{Name: "시청", Lat: 37.5, Lon: 126.9},
		{Name: "서울역", Lat: 37.55, Lon: 126.97},
	}
	return NewServer(g, coords, 40, 180)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestNearestStationHandler(t *testing.T) {
	s := newTestServer(t)

	resp, body := doJSON(t, s, "POST", "/api/nearest-station", map[string]float64{"lat": 37.5, "lng": 126.9})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "시청", body["name"])
}

func TestNearestStationHandlerMissingCoordinates(t *testing.T) {
	s := newTestServer(t)

	resp, _ := doJSON(t, s, "POST", "/api/nearest-station", map[string]float64{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAccessibleHandlerFiltersByCutoff(t *testing.T) {
	s := newTestServer(t)

	resp, body := doJSON(t, s, "POST", "/api/accessible", map[string]any{"lat": 37.5, "lng": 126.9, "minutes": 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "시청", body["origin_station"])
	assert.EqualValues(t, 300, body["cutoff_seconds"])

	reachable, ok := body["reachable"].([]any)
	require.True(t, ok)
	require.Len(t, reachable, 1)
	first, ok := reachable[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "서울역", first["DstStation"])
	assert.EqualValues(t, 120, first["Seconds"])
}

func TestContourDataHandlerUnknownStation(t *testing.T) {
	s := newTestServer(t)

	resp, _ := doJSON(t, s, "POST", "/api/contour-data", map[string]any{"station": "없는역", "thresholds": []int{600}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContourDataHandlerReturnsBands(t *testing.T) {
	s := newTestServer(t)

	// thresholds arrive in minutes on the wire: a 2-minute threshold
	// must still enclose the 120-second 시청->서울역 ride.
	resp, body := doJSON(t, s, "POST", "/api/contour-data", map[string]any{"station": "시청", "thresholds": []int{2, 10}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "시청", body["station"])
	require.NotNil(t, body["bands"])

	bands, ok := body["bands"].([]any)
	require.True(t, ok)
	require.Len(t, bands, 2)

	firstBand, ok := bands[0].(map[string]any)
	require.True(t, ok)
	stations, ok := firstBand["Stations"].([]any)
	require.True(t, ok)

	var sawDestination bool
	for _, raw := range stations {
		station, ok := raw.(map[string]any)
		require.True(t, ok)
		if station["Name"] == "서울역" {
			sawDestination = true
			assert.EqualValues(t, 120, station["Seconds"])
		}
	}
	assert.True(t, sawDestination, "서울역 should fall within the 2-minute band given a 120s ride")
}
