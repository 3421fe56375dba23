package maxflow

import "math"

// pushOnDAG pushes flow from source to sink across dag, using residual as
// the per-edge-key spare capacity (mutated in place) and edgeFlow as the
// accumulated per-key flow (mutated in place). Returns the total volume
// pushed in this tier.
func pushOnDAG(dag map[string][]arc, source, sink string, residual, edgeFlow map[string]float64, placement Placement, tol float64) float64 {
	switch placement {
	case EqualBalanced:
		return pushEqualBalanced(dag, source, sink, residual, edgeFlow, tol)
	default:
		return pushProportional(dag, source, sink, residual, edgeFlow, tol)
	}
}

// arcCapacity sums the residual capacity of every parallel key on arc a.
func arcCapacity(a arc, residual map[string]float64) float64 {
	total := 0.0
	for _, k := range a.keys {
		total += residual[k]
	}
	return total
}

// distributeArcFlow applies a flow delta across arc a's parallel keys,
// proportionally to each key's remaining residual capacity, per spec §4.5
// ("multiple parallel equal-cost edges at a hop share proportionally to
// their remaining capacity").
func distributeArcFlow(a arc, delta float64, residual, edgeFlow map[string]float64) {
	cap := arcCapacity(a, residual)
	if cap <= 0 || delta <= 0 {
		return
	}
	remaining := delta
	for i, k := range a.keys {
		var share float64
		if i == len(a.keys)-1 {
			share = remaining
		} else {
			share = delta * (residual[k] / cap)
			if share > remaining {
				share = remaining
			}
		}
		residual[k] -= share
		edgeFlow[k] += share
		remaining -= share
	}
}

// pushProportional solves the DAG's exact max-flow via repeated BFS
// augmenting paths (the DAG is acyclic and typically shallow, so a classic
// Edmonds-Karp-style loop terminates quickly and needs no level graph).
func pushProportional(dag map[string][]arc, source, sink string, residual, edgeFlow map[string]float64, tol float64) float64 {
	// adjacency by "from" node for BFS traversal.
	adj := make(map[string][]arc)
	for _, arcs := range dag {
		for _, a := range arcs {
			adj[a.from] = append(adj[a.from], a)
		}
	}

	total := 0.0
	for {
		parent := map[string]arc{}
		visited := map[string]bool{source: true}
		queue := []string{source}
		found := false
		for len(queue) > 0 && !found {
			u := queue[0]
			queue = queue[1:]
			for _, a := range adj[u] {
				if visited[a.to] {
					continue
				}
				if arcCapacity(a, residual) <= tol {
					continue
				}
				visited[a.to] = true
				parent[a.to] = a
				if a.to == sink {
					found = true
					break
				}
				queue = append(queue, a.to)
			}
		}
		if !found {
			break
		}

		// bottleneck along the discovered path.
		bottleneck := math.Inf(1)
		for v := sink; v != source; {
			a := parent[v]
			if c := arcCapacity(a, residual); c < bottleneck {
				bottleneck = c
			}
			v = a.from
		}
		if bottleneck <= tol || math.IsInf(bottleneck, 1) {
			break
		}
		for v := sink; v != source; {
			a := parent[v]
			distributeArcFlow(a, bottleneck, residual, edgeFlow)
			v = a.from
		}
		total += bottleneck
	}
	return total
}

// pushEqualBalanced implements strict ECMP: at every vertex, outgoing DAG
// arcs (not individual parallel keys) split inbound flow equally. The
// feasible push volume from source is bounded by the most restrictive arc
// along the way. Per the Open Question resolution, this repeats within the
// tier (recomputing the bound each pass) until no further volume can be
// pushed, preserving the tier-saturation property even under
// shortest_path=true.
func pushEqualBalanced(dag map[string][]arc, source, sink string, residual, edgeFlow map[string]float64, tol float64) float64 {
	adj := make(map[string][]arc)
	for _, arcs := range dag {
		for _, a := range arcs {
			adj[a.from] = append(adj[a.from], a)
		}
	}

	total := 0.0
	for {
		order, ok := topoOrder(adj, source, sink)
		if !ok || len(order) == 0 {
			break
		}

		// mult[v] = fraction of one source unit arriving at v under equal
		// splits at every branching vertex.
		mult := map[string]float64{source: 1}
		// liveAdj keeps only arcs with spare capacity whose head can still
		// forward flow to sink; walking order backwards classifies every
		// head before its tail.
		liveAdj := make(map[string][]arc)
		reachesSink := map[string]bool{sink: true}
		for i := len(order) - 1; i >= 0; i-- {
			u := order[i]
			if u == sink {
				continue
			}
			var live []arc
			for _, a := range adj[u] {
				if reachesSink[a.to] && arcCapacity(a, residual) > tol {
					live = append(live, a)
				}
			}
			liveAdj[u] = live
			if len(live) > 0 {
				reachesSink[u] = true
			}
		}
		for _, u := range order {
			share := mult[u]
			if share <= 0 {
				continue
			}
			live := liveAdj[u]
			if len(live) == 0 {
				continue
			}
			per := share / float64(len(live))
			for _, a := range live {
				mult[a.to] += per
			}
		}

		if mult[sink] <= 0 {
			break
		}

		// Bound X (source-unit push) by every live arc's capacity / its coefficient.
		bound := math.Inf(1)
		type coeffArc struct {
			a     arc
			coeff float64
		}
		var arcsWithCoeff []coeffArc
		for _, u := range order {
			share := mult[u]
			live := liveAdj[u]
			if share <= 0 || len(live) == 0 {
				continue
			}
			coeff := share / float64(len(live))
			for _, a := range live {
				cap := arcCapacity(a, residual)
				if coeff > 0 {
					if ratio := cap / coeff; ratio < bound {
						bound = ratio
					}
				}
				arcsWithCoeff = append(arcsWithCoeff, coeffArc{a: a, coeff: coeff})
			}
		}
		if math.IsInf(bound, 1) || bound <= tol {
			break
		}

		for _, ac := range arcsWithCoeff {
			distributeArcFlow(ac.a, bound*ac.coeff, residual, edgeFlow)
		}
		total += bound * mult[sink]

		if bound*mult[sink] <= tol {
			break
		}
	}
	return total
}

// topoOrder returns a topological order (reverse DFS postorder) of every
// node reachable from source via adj. Nodes that cannot reach sink are not
// removed here; the caller drops arcs into them, and arcs with no spare
// capacity, when it builds liveAdj.
func topoOrder(adj map[string][]arc, source, sink string) ([]string, bool) {
	visited := map[string]bool{}
	var order []string
	var visit func(u string)
	visit = func(u string) {
		if visited[u] {
			return
		}
		visited[u] = true
		for _, a := range adj[u] {
			visit(a.to)
		}
		order = append(order, u)
	}
	visit(source)
	// reverse postorder = topological order for a DAG.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	if !visited[sink] {
		return order, len(order) > 0
	}
	return order, true
}
