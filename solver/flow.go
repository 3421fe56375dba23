package solver

import (
	"github.com/networmix/netgraph/maxflow"
	"github.com/networmix/netgraph/multigraph"
)

// pairPlan is one (source-group, sink-group) computation to run, already
// resolved for overlap.
type pairPlan struct {
	pair     Pair
	src, snk group
	overlap  bool
}

func planPairs(srcGroups, snkGroups []group, mode string) []pairPlan {
	if mode == ModeCombine {
		src := combinedGroup(srcGroups)
		snk := combinedGroup(snkGroups)
		return []pairPlan{{
			pair:    Pair{Source: src.label, Sink: snk.label},
			src:     src,
			snk:     snk,
			overlap: overlaps(activeNodes(src.nodes), activeNodes(snk.nodes)),
		}}
	}
	var plans []pairPlan
	for _, s := range srcGroups {
		for _, t := range snkGroups {
			plans = append(plans, pairPlan{
				pair:    Pair{Source: s.label, Sink: t.label},
				src:     s,
				snk:     t,
				overlap: overlaps(activeNodes(s.nodes), activeNodes(t.nodes)),
			})
		}
	}
	return plans
}

func emptySummary() *maxflow.FlowSummary {
	return &maxflow.FlowSummary{
		EdgeFlow:         map[string]float64{},
		ResidualCap:      map[string]float64{},
		Reachable:        map[string]struct{}{},
		CostDistribution: map[float64]float64{},
	}
}

// stripPseudo removes pseudo-edge keys from the surfaces returned to callers
// (edge_flow, residual_cap, min_cut), per spec §4.5.
func stripPseudo(fs *maxflow.FlowSummary, pseudoKeys []string) *maxflow.FlowSummary {
	drop := make(map[string]struct{}, len(pseudoKeys))
	for _, k := range pseudoKeys {
		drop[k] = struct{}{}
	}
	for k := range drop {
		delete(fs.EdgeFlow, k)
		delete(fs.ResidualCap, k)
	}
	cut := fs.MinCut[:0]
	for _, k := range fs.MinCut {
		if _, hidden := drop[k]; !hidden {
			cut = append(cut, k)
		}
	}
	fs.MinCut = cut
	return fs
}

func runPair(ctx Context, plan pairPlan, opts maxflow.Options) (*maxflow.FlowSummary, *multigraph.Graph, error) {
	if plan.overlap {
		return emptySummary(), nil, nil
	}
	activeSrc := activeNodes(plan.src.nodes)
	activeSnk := activeNodes(plan.snk.nodes)
	if len(activeSrc) == 0 || len(activeSnk) == 0 {
		return emptySummary(), nil, nil
	}

	g, pseudoKeys, err := buildPseudoGraph(ctx, plan.src, plan.snk)
	if err != nil {
		return nil, nil, err
	}
	fs, err := maxflow.Run(g, pseudoSource, pseudoSink, opts)
	if err != nil {
		return nil, nil, err
	}
	return stripPseudo(fs, pseudoKeys), g, nil
}

// MaxFlow returns the total flow value for each resolved (source, sink) pair.
func MaxFlow(ctx Context, sourcePath, sinkPath, mode string, opts maxflow.Options) (map[Pair]float64, error) {
	details, err := MaxFlowWithDetails(ctx, sourcePath, sinkPath, mode, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair]float64, len(details))
	for p, fs := range details {
		out[p] = fs.TotalFlow
	}
	return out, nil
}

// MaxFlowWithDetails returns the full FlowSummary for each resolved pair.
func MaxFlowWithDetails(ctx Context, sourcePath, sinkPath, mode string, opts maxflow.Options) (map[Pair]*maxflow.FlowSummary, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair]*maxflow.FlowSummary)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		fs, _, err := runPair(ctx, plan, opts)
		if err != nil {
			return nil, err
		}
		out[plan.pair] = fs
	}
	return out, nil
}

// MaxFlowWithGraph returns both the FlowSummary and the working graph
// (including pseudo source/sink) used to compute it, for each resolved pair.
// The graph keeps its original capacities; per-edge flow is reported only in
// the FlowSummary. The graph is nil for pairs that were not run (overlap or
// an empty active side).
func MaxFlowWithGraph(ctx Context, sourcePath, sinkPath, mode string, opts maxflow.Options) (map[Pair]*maxflow.FlowSummary, map[Pair]*multigraph.Graph, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, nil, err
	}
	summaries := make(map[Pair]*maxflow.FlowSummary)
	graphs := make(map[Pair]*multigraph.Graph)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		fs, g, err := runPair(ctx, plan, opts)
		if err != nil {
			return nil, nil, err
		}
		summaries[plan.pair] = fs
		graphs[plan.pair] = g
	}
	return summaries, graphs, nil
}

// SaturatedEdges returns, for each resolved pair, the edge keys in that
// pair's min-cut (i.e. saturated under the placement/shortest_path options).
func SaturatedEdges(ctx Context, sourcePath, sinkPath, mode string, opts maxflow.Options) (map[Pair][]string, error) {
	details, err := MaxFlowWithDetails(ctx, sourcePath, sinkPath, mode, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair][]string, len(details))
	for p, fs := range details {
		out[p] = fs.MinCut
	}
	return out, nil
}

// SensitivityAnalysis reruns MaxFlowWithDetails's baseline for each resolved
// pair and perturbs every edge in that pair's min-cut by changeAmount,
// reporting the resulting total-flow delta per edge.
func SensitivityAnalysis(ctx Context, sourcePath, sinkPath, mode string, changeAmount float64, opts maxflow.Options) (map[Pair][]maxflow.SensitivityResult, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair][]maxflow.SensitivityResult)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		fs, g, err := runPair(ctx, plan, opts)
		if err != nil {
			return nil, err
		}
		if g == nil || len(fs.MinCut) == 0 {
			out[plan.pair] = nil
			continue
		}
		results, err := maxflow.SensitivityAnalysis(g, pseudoSource, pseudoSink, fs, changeAmount, opts)
		if err != nil {
			return nil, err
		}
		out[plan.pair] = results
	}
	return out, nil
}
