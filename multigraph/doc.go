// Package multigraph implements the StrictMultiDigraph working-graph
// representation used by the path and max-flow engines: a directed
// multigraph with opaque keyed parallel edges, each carrying a capacity and
// a cost.
//
//	go get github.com/networmix/netgraph/multigraph
package multigraph
