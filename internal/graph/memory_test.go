package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

func TestBuildInstallsUndirectedRideEdges(t *testing.T) {
	rideEdges := []models.RideEdge{
		{Line: "1호선", FromStation: "A", ToStation: "B", Seconds: 120},
	}
	g := Build(rideEdges, nil, &models.TransferOverrides{Default: 180})

	require.Equal(t, 2, g.NodeCount())

	a := g.NodesForStation("A")
	require.Len(t, a, 1)
	neighbors := g.Neighbors(a[0])
	require.Len(t, neighbors, 1)
	assert.Equal(t, 120, neighbors[0].Weight)
	assert.False(t, neighbors[0].IsTransfer)
}

func TestBuildInstallsTransferEdgesForMultiLineStations(t *testing.T) {
	rideEdges := []models.RideEdge{
		{Line: "1호선", FromStation: "시청", ToStation: "서울역", Seconds: 120},
		{Line: "2호선", FromStation: "시청", ToStation: "을지로입구", Seconds: 100},
	}
	stationLines := map[string]map[string]bool{
		"시청": {"1호선": true, "2호선": true},
	}
	overrides := &models.TransferOverrides{
		PerPair: map[string]int{models.PairKey("시청", "1호선", "2호선"): 240},
		Default: 180,
	}

	g := Build(rideEdges, stationLines, overrides)

	nodes := g.NodesForStation("시청")
	require.Len(t, nodes, 2)

	var transferSeen bool
	for _, n := range nodes {
		for _, e := range g.Neighbors(n) {
			if e.IsTransfer {
				transferSeen = true
				assert.Equal(t, 240, e.Weight)
			}
		}
	}
	assert.True(t, transferSeen, "expected a transfer edge between 시청's two line nodes")
}

func TestGraphSwapReplacesContents(t *testing.T) {
	g := Get()
	assert.False(t, g.IsLoaded())

	next := Build([]models.RideEdge{{Line: "1호선", FromStation: "A", ToStation: "B", Seconds: 60}}, nil, &models.TransferOverrides{})
	g.Swap(next)

	assert.True(t, g.IsLoaded())
	assert.True(t, g.HasStation("A"))
}

func TestStationsReturnsSortedNames(t *testing.T) {
	rideEdges := []models.RideEdge{
		{Line: "1호선", FromStation: "Z", ToStation: "A", Seconds: 60},
	}
	g := Build(rideEdges, nil, &models.TransferOverrides{})
	assert.Equal(t, []string{"A", "Z"}, g.Stations())
}
