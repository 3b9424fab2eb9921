// Package routing implements the state-separated Dijkstra query and the
// contour-banding view over the routing graph.
package routing

import (
	"container/heap"
	"math"
	"sort"

	"github.com/hosunrail/hosunrail_core/internal/graph"
	"github.com/hosunrail/hosunrail_core/internal/models"
)

const infinity = math.MaxInt64 / 2

// arrivalMode distinguishes the two distance vectors the motivation in
// §4.6 requires: a node's last hop was either a transfer (dwell not
// yet applied) or a ride (dwell already added on arrival).
type arrivalMode int

const (
	modeTransfer arrivalMode = iota
	modeRide
)

// Router runs dwell-aware shortest-time queries against a built Graph.
// It borrows the graph read-only; every query owns its own distance
// vectors and heap, so concurrent queries never interfere.
type Router struct {
	graph *graph.Graph
}

// NewRouter creates a Router over the given graph (typically
// graph.Get()).
func NewRouter(g *graph.Graph) *Router {
	return &Router{graph: g}
}

// TimesFrom computes the fastest time from every node of source station
// to every other reachable station, applying dwellSec at every
// intermediate ride arrival and never at the final destination or at a
// transfer arrival. cutoffSec, if > 0, prunes any relaxation whose
// tentative distance would exceed it; pass 0 for no cutoff. Results are
// sorted by destination station name.
func (r *Router) TimesFrom(sourceStation string, dwellSec int, cutoffSec int) []models.TravelTime {
	sources := r.graph.NodesForStation(sourceStation)
	if len(sources) == 0 {
		return nil
	}

	distT, distR := r.dijkstra(sources, dwellSec, cutoffSec)

	var out []models.TravelTime
	for _, dst := range r.graph.Stations() {
		if dst == sourceStation {
			continue
		}
		nodes := r.graph.NodesForStation(dst)
		best := bestSecondsForStation(distT, distR, nodes, dwellSec)
		if best >= infinity {
			continue
		}
		out = append(out, models.TravelTime{SrcStation: sourceStation, DstStation: dst, Seconds: best})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DstStation < out[j].DstStation })
	return out
}

// dijkstra runs the split-mode relaxation described in §4.6: dist_T is
// indexed by "last hop was transfer", dist_R by "last hop was ride".
// Sources start in dist_T at 0, since the origin is treated as an
// already-arrived transfer with no dwell charged at departure.
func (r *Router) dijkstra(sources []int, dwellSec, cutoffSec int) (distT, distR []int) {
	n := r.graph.NodeCount()
	distT = make([]int, n)
	distR = make([]int, n)
	for i := range distT {
		distT[i] = infinity
		distR[i] = infinity
	}

	pq := &entryHeap{}
	heap.Init(pq)
	for _, s := range sources {
		distT[s] = 0
		heap.Push(pq, &heapEntry{dist: 0, node: s, mode: modeTransfer})
	}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*heapEntry)

		switch cur.mode {
		case modeTransfer:
			if cur.dist != distT[cur.node] {
				continue
			}
		case modeRide:
			if cur.dist != distR[cur.node] {
				continue
			}
		}

		for _, edge := range r.graph.Neighbors(cur.node) {
			if edge.IsTransfer {
				nd := cur.dist + edge.Weight
				if cutoffSec > 0 && nd > cutoffSec {
					continue
				}
				if nd < distT[edge.To] {
					distT[edge.To] = nd
					heap.Push(pq, &heapEntry{dist: nd, node: edge.To, mode: modeTransfer})
				}
			} else {
				nd := cur.dist + edge.Weight + dwellSec
				if cutoffSec > 0 && nd > cutoffSec {
					continue
				}
				if nd < distR[edge.To] {
					distR[edge.To] = nd
					heap.Push(pq, &heapEntry{dist: nd, node: edge.To, mode: modeRide})
				}
			}
		}
	}

	return distT, distR
}

// bestSecondsForStation aggregates the per-node distances of a
// destination station into a single value, removing exactly one dwell
// when the best arrival was via ride (it is not an intermediate stop),
// and applying no adjustment when the best arrival was via transfer.
func bestSecondsForStation(distT, distR []int, nodes []int, dwellSec int) int {
	best := infinity
	for _, n := range nodes {
		if distT[n] < best {
			best = distT[n]
		}
		if distR[n] < infinity {
			cand := distR[n] - dwellSec
			if cand < 0 {
				cand = 0
			}
			if cand < best {
				best = cand
			}
		}
	}
	return best
}

// heapEntry is one candidate distance pushed onto the priority queue.
type heapEntry struct {
	dist int
	node int
	mode arrivalMode
}

// entryHeap implements container/heap.Interface, keyed by distance —
// the same shape as the teacher's PriorityQueue for A*, minus the
// f-score heuristic term this query has no use for.
type entryHeap []*heapEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(*heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}
