package solver

import (
	"math"

	"github.com/networmix/netgraph/pathengine"
)

// ShortestPathCosts returns the minimal path cost for each resolved pair;
// overlapping pairs or pairs with an empty active side report +Inf, matching
// the max-flow family's zero-flow treatment of the same conditions.
func ShortestPathCosts(ctx Context, sourcePath, sinkPath, mode string, edgeSelect pathengine.EdgeSelect) (map[Pair]float64, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair]float64)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		if plan.overlap || len(activeNodes(plan.src.nodes)) == 0 || len(activeNodes(plan.snk.nodes)) == 0 {
			out[plan.pair] = math.Inf(1)
			continue
		}
		g, _, err := buildPseudoGraph(ctx, plan.src, plan.snk)
		if err != nil {
			return nil, err
		}
		cost, _, err := pathengine.SPF(g, pseudoSource, edgeSelect, false)
		if err != nil {
			return nil, err
		}
		if c, ok := cost[pseudoSink]; ok {
			out[plan.pair] = c
		} else {
			out[plan.pair] = math.Inf(1)
		}
	}
	return out, nil
}

// ShortestPaths returns the concrete best-cost path(s) for each resolved
// pair, with the pseudo source/sink hops stripped back out; overlapping
// pairs or pairs with an empty active side report an empty list.
func ShortestPaths(ctx Context, sourcePath, sinkPath, mode string, edgeSelect pathengine.EdgeSelect, splitParallel bool) (map[Pair][]pathengine.Path, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair][]pathengine.Path)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		if plan.overlap || len(activeNodes(plan.src.nodes)) == 0 || len(activeNodes(plan.snk.nodes)) == 0 {
			out[plan.pair] = nil
			continue
		}
		g, _, err := buildPseudoGraph(ctx, plan.src, plan.snk)
		if err != nil {
			return nil, err
		}
		cost, pred, err := pathengine.SPF(g, pseudoSource, edgeSelect, edgeSelect == pathengine.AllMinCost)
		if err != nil {
			return nil, err
		}
		if _, ok := cost[pseudoSink]; !ok {
			out[plan.pair] = nil
			continue
		}
		raw := pathengine.ResolveToPaths(pseudoSource, pseudoSink, pred, cost, splitParallel)
		paths := make([]pathengine.Path, 0, len(raw))
		for _, p := range raw {
			paths = append(paths, stripPseudoPath(p))
		}
		out[plan.pair] = paths
	}
	return out, nil
}

// KShortestPaths returns up to maxK shortest paths for each resolved pair,
// computed on the same pseudo source/sink graph as ShortestPaths so that
// multi-node source/sink groups are handled uniformly.
func KShortestPaths(ctx Context, sourcePath, sinkPath, mode string, maxK int, edgeSelect pathengine.EdgeSelect, maxPathCost float64, maxPathCostFactor *float64, splitParallel bool) (map[Pair][]pathengine.Path, error) {
	srcGroups, snkGroups, err := resolveGroups(ctx, sourcePath, sinkPath, mode)
	if err != nil {
		return nil, err
	}
	out := make(map[Pair][]pathengine.Path)
	for _, plan := range planPairs(srcGroups, snkGroups, mode) {
		if plan.overlap || len(activeNodes(plan.src.nodes)) == 0 || len(activeNodes(plan.snk.nodes)) == 0 {
			out[plan.pair] = nil
			continue
		}
		g, _, err := buildPseudoGraph(ctx, plan.src, plan.snk)
		if err != nil {
			return nil, err
		}
		raw := pathengine.KShortestPaths(g, pseudoSource, pseudoSink, edgeSelect, maxK, maxPathCost, maxPathCostFactor, splitParallel)
		paths := make([]pathengine.Path, 0, len(raw))
		for _, p := range raw {
			paths = append(paths, stripPseudoPath(p))
		}
		out[plan.pair] = paths
	}
	return out, nil
}

// stripPseudoPath removes the leading __S__ and trailing __T__ hops added by
// buildPseudoGraph. Both pseudo edges carry zero cost, so Cost is unaffected.
// Hop.Keys records the incoming arc for each hop, so the new first hop (the
// real source node) has its Keys cleared, since the pseudo edge reaching it
// no longer exists in the stripped path.
func stripPseudoPath(p pathengine.Path) pathengine.Path {
	if len(p.Hops) < 2 {
		return p
	}
	hops := p.Hops[1 : len(p.Hops)-1]
	out := make([]pathengine.Hop, len(hops))
	copy(out, hops)
	if len(out) > 0 {
		out[0].Keys = nil
	}
	return pathengine.Path{Hops: out, Cost: p.Cost}
}
