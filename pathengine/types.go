// Package pathengine implements the SPF/KSP path engine (spec component D):
// Dijkstra-style shortest path first over a multigraph.Graph producing a
// cost map and an equal-cost predecessor DAG, K-shortest-paths with cost
// thresholds, and path materialization with optional parallel-edge
// expansion.
package pathengine

import "errors"

// Sentinel errors for pathengine operations.
var (
	// ErrEmptySource indicates SPF was called with an empty source node name.
	ErrEmptySource = errors.New("pathengine: empty source")

	// ErrSourceNotFound indicates the source node does not exist in the graph.
	ErrSourceNotFound = errors.New("pathengine: source not found")

	// ErrNegativeCost indicates an edge with negative cost was encountered; SPF requires non-negative costs.
	ErrNegativeCost = errors.New("pathengine: negative edge cost")
)

// EdgeSelect chooses which parallel arcs at equal cost are recorded on the
// predecessor DAG.
type EdgeSelect int

const (
	// AllMinCost records every arc (u,v) whose cost matches the current
	// best cost to v, including all parallel keys on it.
	AllMinCost EdgeSelect = iota
	// SingleMinCost records only the first parallel key discovered on each
	// equal-cost predecessor arc.
	SingleMinCost
)

// PredEntry is one predecessor of a node in the SPF DAG: the predecessor's
// name plus every parallel-edge key on the (predecessor -> node) arc that
// achieves the node's shortest cost.
type PredEntry struct {
	Node string
	Keys []string
}

// Hop is one step of a materialized path: the node reached, and the set of
// parallel-edge keys (on the incoming arc) used to reach it. Hop[0] always
// has a nil/empty Keys (it is the path's source).
type Hop struct {
	Node string
	Keys []string
}

// Path is a materialized source-to-sink path with its total cost.
type Path struct {
	Hops []Hop
	Cost float64
}
