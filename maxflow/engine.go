package maxflow

import (
	"math"

	"github.com/networmix/netgraph/multigraph"
	"github.com/networmix/netgraph/pathengine"
)

// arc is one (u -> v) hop of the shortest-path DAG for the current tier,
// aggregating every parallel edge key that realizes it.
type arc struct {
	from, to string
	keys     []string
}

// Run computes a FlowSummary for source -> sink on g.
//
// Conceptual loop, over cost tiers (spec §4.5):
//  1. SPF from source, all-min-cost, multipath=true, over the *residual*
//     view of g (edges with spare capacity above tolerance). If sink is
//     unreachable, terminate.
//  2. Extract the shortest-path DAG for the current tier.
//  3. Push flow across the DAG per Options.Placement.
//  4. Update residual capacities and the cost distribution.
//  5. If Options.ShortestPath, stop after this tier (but only once it is
//     fully saturated); otherwise loop.
func Run(g *multigraph.Graph, source, sink string, opts Options) (*FlowSummary, error) {
	if !g.HasNode(source) {
		return nil, ErrSourceNotFound
	}
	if !g.HasNode(sink) {
		return nil, ErrSinkNotFound
	}

	tol := opts.tolerance()
	residual := make(map[string]float64)
	capacity := make(map[string]float64)
	for _, e := range g.Edges() {
		residual[e.Key] = e.Capacity
		capacity[e.Key] = e.Capacity
	}
	edgeFlow := make(map[string]float64)
	costDist := make(map[float64]float64)
	totalFlow := 0.0

	for {
		view := buildResidualView(g, residual, tol)
		cost, pred, err := pathengine.SPF(view, source, pathengine.AllMinCost, true)
		if err != nil {
			return nil, err
		}
		tierCost, ok := cost[sink]
		if !ok || math.IsInf(tierCost, 1) {
			break
		}

		dag := extractDAG(pred, cost, tierCost)
		pushed := pushOnDAG(dag, source, sink, residual, edgeFlow, opts.Placement, tol)
		if pushed <= tol {
			break
		}

		totalFlow += pushed
		costDist[tierCost] += pushed

		if opts.ShortestPath {
			break
		}
	}

	if math.IsNaN(totalFlow) || math.IsInf(totalFlow, 0) {
		return nil, ErrNumericFailure
	}

	reachable := reachableSet(g, residual, source, tol)
	minCut := minCutEdges(g, reachable, residual, tol)

	return &FlowSummary{
		TotalFlow:        totalFlow,
		EdgeFlow:         edgeFlow,
		ResidualCap:      residual,
		Reachable:        reachable,
		MinCut:           minCut,
		CostDistribution: costDist,
	}, nil
}

// buildResidualView materializes a plain (non-compact) graph mirroring g's
// nodes and every edge whose residual capacity exceeds tolerance, so SPF can
// run cost-tiered iterations without mutating g.
func buildResidualView(g *multigraph.Graph, residual map[string]float64, tol float64) *multigraph.Graph {
	view := multigraph.New()
	for _, n := range g.Nodes() {
		_ = view.AddNode(n)
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		cap := residual[e.Key]
		if cap <= tol {
			continue
		}
		_, _ = view.AddEdge(e.From, e.To, e.Key, cap, e.Cost, nil)
	}
	return view
}

// extractDAG collects, for every node reachable at cost <= tierCost, the
// forward arcs recorded by pred, aggregating parallel keys per (u,v) hop.
func extractDAG(pred map[string][]pathengine.PredEntry, cost map[string]float64, tierCost float64) map[string][]arc {
	dag := make(map[string][]arc)
	for v, entries := range pred {
		if cost[v] > tierCost {
			continue
		}
		for _, e := range entries {
			dag[e.Node] = append(dag[e.Node], arc{from: e.Node, to: v, keys: e.Keys})
		}
	}
	return dag
}

func reachableSet(g *multigraph.Graph, residual map[string]float64, source string, tol float64) map[string]struct{} {
	visited := map[string]struct{}{source: {}}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range g.OutEdges(u) {
			if e.From == e.To {
				continue
			}
			if residual[e.Key] <= tol {
				continue
			}
			if _, seen := visited[e.To]; seen {
				continue
			}
			visited[e.To] = struct{}{}
			queue = append(queue, e.To)
		}
	}
	return visited
}

func minCutEdges(g *multigraph.Graph, reachable map[string]struct{}, residual map[string]float64, tol float64) []string {
	var cut []string
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		_, uIn := reachable[e.From]
		_, vIn := reachable[e.To]
		if uIn && !vIn && residual[e.Key] <= tol {
			cut = append(cut, e.Key)
		}
	}
	return cut
}
