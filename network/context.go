package network

import "github.com/networmix/netgraph/multigraph"

// WorkingGraph builds a working graph from the full network (no exclusions),
// satisfying the solver package's Context interface alongside
// networkview.NetworkView.WorkingGraph.
func (n *Network) WorkingGraph(addReverse, compact bool) (*multigraph.Graph, error) {
	return n.ToStrictMultiDigraph(addReverse, compact)
}
