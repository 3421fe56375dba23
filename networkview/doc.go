// Package networkview implements the immutable NetworkView overlay (spec
// component C): it hides a caller-specified subset of nodes and links from
// a base network.Network without mutating it, and lazily caches the derived
// working graph per (add_reverse, compact) pair.
//
//	go get github.com/networmix/netgraph/networkview
package networkview
