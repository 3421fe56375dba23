package pathengine

import (
	"container/heap"
	"math"

	"github.com/networmix/netgraph/multigraph"
)

// nodeItem is one entry in the SPF priority queue.
type nodeItem struct {
	node string
	cost float64
	idx  int
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].idx = i; pq[j].idx = j }
func (pq *nodePQ) Push(x interface{}) {
	it := x.(*nodeItem)
	it.idx = len(*pq)
	*pq = append(*pq, it)
}
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// SPF runs shortest-path-first from source over g, using lazy-decrease-key
// Dijkstra on a container/heap priority queue.
//
// Steps:
//  1. Validate source.
//  2. Seed every node's cost as +Inf, push source at 0.
//  3. Repeatedly pop the minimum; skip stale entries (cost greater than the
//     now-settled cost); relax every non-self-loop outgoing edge with
//     non-negative cost.
//  4. On a tie with the current best cost to a neighbor: if multipath is
//     true, append the predecessor to the existing entry (recording every
//     parallel key on the arc when edgeSelect is AllMinCost, else only the
//     first key seen); otherwise the first-found predecessor wins and later
//     ties are ignored.
//
// Returns cost (node -> shortest cost from source, +Inf if unreachable) and
// pred (node -> equal-cost predecessor DAG entries).
func SPF(g *multigraph.Graph, source string, edgeSelect EdgeSelect, multipath bool) (map[string]float64, map[string][]PredEntry, error) {
	if source == "" {
		return nil, nil, ErrEmptySource
	}
	if !g.HasNode(source) {
		return nil, nil, ErrSourceNotFound
	}

	cost := make(map[string]float64)
	for _, n := range g.Nodes() {
		cost[n] = math.Inf(1)
	}
	cost[source] = 0

	pred := make(map[string][]PredEntry)
	visited := make(map[string]bool)

	pq := &nodePQ{}
	heap.Init(pq)
	heap.Push(pq, &nodeItem{node: source, cost: 0})

	// arcKeyIndex[v][u] locates the PredEntry for predecessor u within pred[v].
	arcKeyIndex := make(map[string]map[string]int)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(*nodeItem)
		u, d := top.node, top.cost
		if visited[u] {
			continue
		}
		if d > cost[u] {
			continue
		}
		visited[u] = true

		for _, e := range g.OutEdges(u) {
			if e.From == e.To {
				continue // self-loop, ignored per spec
			}
			if e.Cost < 0 {
				return nil, nil, ErrNegativeCost
			}
			v := e.To
			nd := d + e.Cost
			if nd > cost[v] {
				continue
			}
			if nd < cost[v] {
				cost[v] = nd
				pred[v] = []PredEntry{{Node: u, Keys: []string{e.Key}}}
				arcKeyIndex[v] = map[string]int{u: 0}
				heap.Push(pq, &nodeItem{node: v, cost: nd})
				continue
			}
			// nd == cost[v]: tie.
			if !multipath {
				continue
			}
			idx, ok := arcKeyIndex[v][u]
			if ok {
				if edgeSelect == AllMinCost {
					pred[v][idx].Keys = append(pred[v][idx].Keys, e.Key)
				}
				continue
			}
			pred[v] = append(pred[v], PredEntry{Node: u, Keys: []string{e.Key}})
			if arcKeyIndex[v] == nil {
				arcKeyIndex[v] = make(map[string]int)
			}
			arcKeyIndex[v][u] = len(pred[v]) - 1
			heap.Push(pq, &nodeItem{node: v, cost: nd})
		}
	}

	return cost, pred, nil
}
