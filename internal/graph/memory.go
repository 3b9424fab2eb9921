package graph

import (
	"sort"
	"sync"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

// Edge is one outgoing adjacency-list entry: the target node id, the
// weight in seconds, and whether the edge is a transfer (as opposed to
// a ride).
type Edge struct {
	To         int
	Weight     int
	IsTransfer bool
}

// Graph is the in-memory routing graph: nodes indexed as (station,line)
// pairs, with a per-node adjacency list. Built once, then read-only —
// concurrent queries share it by reference; a rebuild swaps the whole
// structure in one atomic step rather than mutating it in place.
type Graph struct {
	mu sync.RWMutex

	nodeID       map[models.Node]int
	nodes        []models.Node
	adj          [][]Edge
	stationNodes map[string][]int // station -> node ids, all lines

	loaded bool
}

var (
	globalGraph     *Graph
	globalGraphOnce sync.Once
)

// Get returns the process-wide singleton graph (empty until Build or
// Swap populates it).
func Get() *Graph {
	globalGraphOnce.Do(func() {
		globalGraph = &Graph{}
	})
	return globalGraph
}

// Build constructs a graph from ride edges, a per-station line
// observation table, and transfer overrides, following the GraphBuilder
// contract: node ids are interned (station,line) pairs, ride edges are
// installed undirected, and every station observed on ≥2 lines gets an
// undirected transfer edge between each unordered line pair, weighted
// by TransferOverrides.Resolve.
func Build(rideEdges []models.RideEdge, stationLines map[string]map[string]bool, overrides *models.TransferOverrides) *Graph {
	g := &Graph{
		nodeID:       make(map[models.Node]int),
		stationNodes: make(map[string][]int),
	}

	getID := func(station, line string) int {
		key := models.Node{Station: station, Line: line}
		if id, ok := g.nodeID[key]; ok {
			return id
		}
		id := len(g.nodes)
		g.nodeID[key] = id
		g.nodes = append(g.nodes, key)
		g.adj = append(g.adj, nil)
		g.stationNodes[station] = append(g.stationNodes[station], id)
		return id
	}

	for _, e := range rideEdges {
		u := getID(e.FromStation, e.Line)
		v := getID(e.ToStation, e.Line)
		g.adj[u] = append(g.adj[u], Edge{To: v, Weight: e.Seconds, IsTransfer: false})
		g.adj[v] = append(g.adj[v], Edge{To: u, Weight: e.Seconds, IsTransfer: false})
	}

	for station, lineSet := range stationLines {
		lines := make([]string, 0, len(lineSet))
		for l := range lineSet {
			lines = append(lines, l)
		}
		sort.Strings(lines)
		for i := 0; i < len(lines); i++ {
			for j := i + 1; j < len(lines); j++ {
				lf, lt := lines[i], lines[j]
				weight := overrides.Resolve(station, lf, lt)
				a, okA := g.nodeID[models.Node{Station: station, Line: lf}]
				b, okB := g.nodeID[models.Node{Station: station, Line: lt}]
				if !okA || !okB {
					continue
				}
				g.adj[a] = append(g.adj[a], Edge{To: b, Weight: weight, IsTransfer: true})
				g.adj[b] = append(g.adj[b], Edge{To: a, Weight: weight, IsTransfer: true})
			}
		}
	}

	g.loaded = true
	return g
}

// Swap atomically replaces the singleton graph's contents with next's,
// the external exclusivity guard the concurrency model requires for a
// rebuild: readers either see the old graph in full or the new one, never
// a partially built one.
func (g *Graph) Swap(next *Graph) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodeID = next.nodeID
	g.nodes = next.nodes
	g.adj = next.adj
	g.stationNodes = next.stationNodes
	g.loaded = next.loaded
}

// IsLoaded reports whether the graph has been built at least once.
func (g *Graph) IsLoaded() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loaded
}

// NodesForStation returns every (station,line) node id for station,
// across all lines serving it.
func (g *Graph) NodesForStation(station string) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stationNodes[station]
}

// Stations returns every known station name, sorted — the iteration
// order Exporter and the all-pairs query rely on.
func (g *Graph) Stations() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	stations := make([]string, 0, len(g.stationNodes))
	for s := range g.stationNodes {
		stations = append(stations, s)
	}
	sort.Strings(stations)
	return stations
}

// NodeCount returns the total number of (station,line) nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Neighbors returns the outgoing adjacency list for node id u. Callers
// (the Router) must treat the result as read-only.
func (g *Graph) Neighbors(u int) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.adj[u]
}

// HasStation reports whether station has at least one node.
func (g *Graph) HasStation(station string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.stationNodes[station]
	return ok
}
