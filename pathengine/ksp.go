package pathengine

import (
	"math"
	"sort"

	"github.com/networmix/netgraph/multigraph"
)

// spfExcluding is SPF restricted to a subgraph: edges in excludeEdges and
// nodes in excludeNodes are treated as absent. Used internally by KSP to
// implement Yen's spur-path search without mutating g.
func spfExcluding(g *multigraph.Graph, source string, excludeNodes, excludeEdges map[string]struct{}, edgeSelect EdgeSelect) (map[string]float64, map[string][]PredEntry, error) {
	if source == "" {
		return nil, nil, ErrEmptySource
	}
	if _, blocked := excludeNodes[source]; blocked || !g.HasNode(source) {
		return nil, nil, ErrSourceNotFound
	}

	cost := make(map[string]float64)
	pred := make(map[string][]PredEntry)
	for _, n := range g.Nodes() {
		cost[n] = math.Inf(1)
	}
	cost[source] = 0

	visited := make(map[string]bool)
	pq := &nodePQ{}
	*pq = append(*pq, &nodeItem{node: source, cost: 0})

	for pq.Len() > 0 {
		minIdx := 0
		for i := 1; i < pq.Len(); i++ {
			if (*pq)[i].cost < (*pq)[minIdx].cost {
				minIdx = i
			}
		}
		top := (*pq)[minIdx]
		*pq = append((*pq)[:minIdx], (*pq)[minIdx+1:]...)
		u, d := top.node, top.cost
		if visited[u] {
			continue
		}
		if _, blocked := excludeNodes[u]; blocked {
			continue
		}
		visited[u] = true

		for _, e := range g.OutEdges(u) {
			if e.From == e.To {
				continue
			}
			if _, blocked := excludeEdges[e.Key]; blocked {
				continue
			}
			if _, blocked := excludeNodes[e.To]; blocked {
				continue
			}
			nd := d + e.Cost
			if nd > cost[e.To] {
				continue
			}
			if nd < cost[e.To] {
				cost[e.To] = nd
				pred[e.To] = []PredEntry{{Node: u, Keys: []string{e.Key}}}
				*pq = append(*pq, &nodeItem{node: e.To, cost: nd})
				continue
			}
			if edgeSelect == AllMinCost {
				pred[e.To] = append(pred[e.To], PredEntry{Node: u, Keys: []string{e.Key}})
			}
		}
	}
	return cost, pred, nil
}

// shortestSimplePath returns the single best path source->sink in the
// subgraph obtained by excluding excludeNodes/excludeEdges, or ok=false if
// unreachable.
func shortestSimplePath(g *multigraph.Graph, source, sink string, excludeNodes, excludeEdges map[string]struct{}, edgeSelect EdgeSelect) (Path, bool) {
	cost, pred, err := spfExcluding(g, source, excludeNodes, excludeEdges, edgeSelect)
	if err != nil {
		return Path{}, false
	}
	if math.IsInf(cost[sink], 1) {
		return Path{}, false
	}
	paths := ResolveToPaths(source, sink, pred, cost, false)
	if len(paths) == 0 {
		return Path{}, false
	}
	return paths[0], true
}

// KShortestPaths returns up to maxK loopless shortest paths from source to
// sink via Yen's algorithm, seeded by a single-spine SPF and widened by
// spur-node search. Results are bounded by maxK, by the absolute ceiling
// maxPathCost, and (if non-nil) by maxPathCostFactor times the first path's
// cost. When splitParallel is true, each returned path's parallel-edge
// bundles are expanded into distinct paths before the bound is applied.
func KShortestPaths(g *multigraph.Graph, source, sink string, edgeSelect EdgeSelect, maxK int, maxPathCost float64, maxPathCostFactor *float64, splitParallel bool) []Path {
	if maxK <= 0 {
		return nil
	}
	first, ok := shortestSimplePath(g, source, sink, nil, nil, edgeSelect)
	if !ok {
		return nil
	}

	ceiling := maxPathCost
	if maxPathCostFactor != nil {
		factorCeiling := first.Cost * (*maxPathCostFactor)
		if factorCeiling < ceiling {
			ceiling = factorCeiling
		}
	}
	if first.Cost > ceiling {
		return nil
	}

	A := []Path{first}
	var B []Path

	for len(A) < maxK {
		prev := A[len(A)-1]
		nodeSeq := pathNodes(prev)

		for i := 0; i < len(nodeSeq)-1; i++ {
			spurNode := nodeSeq[i]
			rootNodes := nodeSeq[:i+1]

			excludeEdges := make(map[string]struct{})
			for _, p := range A {
				pn := pathNodes(p)
				if len(pn) > i && sameRoot(pn[:i+1], rootNodes) {
					for _, k := range p.Hops[i+1].Keys {
						excludeEdges[k] = struct{}{}
					}
				}
			}
			excludeNodes := make(map[string]struct{})
			for _, n := range rootNodes[:len(rootNodes)-1] {
				excludeNodes[n] = struct{}{}
			}

			spur, ok := shortestSimplePath(g, spurNode, sink, excludeNodes, excludeEdges, edgeSelect)
			if !ok {
				continue
			}
			rootCost := pathCostPrefix(g, prev, i)
			total := rootCost + spur.Cost
			if total > ceiling {
				continue
			}
			candidate := joinPaths(prev, i, spur, total)
			if containsPath(A, candidate) || containsPath(B, candidate) {
				continue
			}
			B = append(B, candidate)
		}

		if len(B) == 0 {
			break
		}
		sort.Slice(B, func(i, j int) bool { return B[i].Cost < B[j].Cost })
		A = append(A, B[0])
		B = B[1:]
	}

	if !splitParallel {
		return A
	}
	var out []Path
	for _, p := range A {
		out = append(out, expandParallel(p)...)
		if len(out) >= maxK {
			break
		}
	}
	if len(out) > maxK {
		out = out[:maxK]
	}
	return out
}

func pathNodes(p Path) []string {
	out := make([]string, len(p.Hops))
	for i, h := range p.Hops {
		out[i] = h.Node
	}
	return out
}

func sameRoot(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pathCostPrefix sums the edge cost of p's first i hops (source to the i-th
// node), looking up each hop's arc cost in g via its first recorded key.
func pathCostPrefix(g *multigraph.Graph, p Path, i int) float64 {
	total := 0.0
	for h := 1; h <= i; h++ {
		keys := p.Hops[h].Keys
		if len(keys) == 0 {
			continue
		}
		e, err := g.Edge(keys[0])
		if err != nil {
			continue
		}
		total += e.Cost
	}
	return total
}

func joinPaths(prev Path, spurIdx int, spur Path, total float64) Path {
	hops := make([]Hop, 0, spurIdx+len(spur.Hops))
	hops = append(hops, prev.Hops[:spurIdx+1]...)
	hops = append(hops, spur.Hops[1:]...)
	return Path{Hops: hops, Cost: total}
}

func containsPath(paths []Path, candidate Path) bool {
	for _, p := range paths {
		if len(p.Hops) != len(candidate.Hops) {
			continue
		}
		match := true
		for i := range p.Hops {
			if p.Hops[i].Node != candidate.Hops[i].Node {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func expandParallel(p Path) []Path {
	var out []Path
	var build func(i int, acc []Hop)
	build = func(i int, acc []Hop) {
		if i == len(p.Hops) {
			hops := make([]Hop, len(acc))
			copy(hops, acc)
			out = append(out, Path{Hops: hops, Cost: p.Cost})
			return
		}
		h := p.Hops[i]
		if len(h.Keys) <= 1 {
			build(i+1, append(acc, h))
			return
		}
		for _, k := range h.Keys {
			build(i+1, append(acc, Hop{Node: h.Node, Keys: []string{k}}))
		}
	}
	build(0, nil)
	return out
}
