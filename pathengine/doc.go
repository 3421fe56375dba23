// Package pathengine implements the SPF/KSP path engine (spec component D)
// over a multigraph.Graph: Dijkstra-style shortest-path-first producing a
// cost map and equal-cost predecessor DAG, K-shortest-paths via a Yen-style
// spur search bounded by count and cost ceilings, and backward DAG
// traversal to materialize concrete node/edge-key paths.
//
//	go get github.com/networmix/netgraph/pathengine
package pathengine
