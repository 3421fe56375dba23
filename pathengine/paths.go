package pathengine

// ResolveToPaths enumerates every path from source to sink encoded by pred,
// by DAG traversal backwards from sink: at each node it recurses into every
// PredEntry, not just one, so genuine branching (distinct predecessor nodes
// sharing a cost tier, e.g. disjoint routes A->B->D and A->C->D) yields one
// sub-path per node sequence, not a single arbitrarily-chosen spine. With
// splitParallel false, each node-sequence yields exactly one Path whose
// Hop.Keys carry the full parallel-edge bundle for that arc; with
// splitParallel true, each bundle is expanded into distinct paths (the
// cartesian product across hops).
//
// Returns an empty slice if sink is unreachable (absent from pred and not
// equal to source).
func ResolveToPaths(source, sink string, pred map[string][]PredEntry, cost map[string]float64, splitParallel bool) []Path {
	if sink == source {
		return []Path{{Hops: []Hop{{Node: source}}, Cost: 0}}
	}
	if _, ok := pred[sink]; !ok {
		return nil
	}

	memo := map[string][][]Hop{source: {{{Node: source}}}}
	visiting := map[string]bool{}

	var build func(node string) [][]Hop
	build = func(node string) [][]Hop {
		if seqs, ok := memo[node]; ok {
			return seqs
		}
		if visiting[node] {
			return nil // defensive: cyclic pred would only occur on a malformed graph.
		}
		visiting[node] = true

		var seqs [][]Hop
		for _, e := range pred[node] {
			prefixes := build(e.Node)
			if !splitParallel {
				for _, prefix := range prefixes {
					seq := append(append([]Hop{}, prefix...), Hop{Node: node, Keys: e.Keys})
					seqs = append(seqs, seq)
				}
				continue
			}
			for _, k := range e.Keys {
				for _, prefix := range prefixes {
					seq := append(append([]Hop{}, prefix...), Hop{Node: node, Keys: []string{k}})
					seqs = append(seqs, seq)
				}
			}
		}

		delete(visiting, node)
		memo[node] = seqs
		return seqs
	}

	seqs := build(sink)
	c := 0.0
	if cost != nil {
		c = cost[sink]
	}
	out := make([]Path, len(seqs))
	for i, seq := range seqs {
		out[i] = Path{Hops: seq, Cost: c}
	}
	return out
}
