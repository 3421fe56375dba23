// Package netgraph is a network topology analysis engine: given a directed,
// capacitated, costed multigraph of nodes and links, it computes maximum
// flows, shortest paths, and capacity envelopes under random failure
// scenarios.
//
// The module is a pipeline of small packages, each owning one layer of the
// model:
//
//	multigraph/     — StrictMultiDigraph: keyed parallel-edge working graph
//	network/        — Node/Link/RiskGroup domain model + selectors
//	networkview/    — immutable exclusion overlay over a Network
//	pathengine/     — SPF/KSP shortest-path-first and K-shortest-paths
//	maxflow/        — cost-tiered max-flow engine (proportional / ECMP)
//	solver/         — selector-driven wrappers binding the two engines
//	failurepolicy/  — declarative per-trial failure-rule evaluation
//	failuremanager/ — parallel Monte Carlo failure-envelope driver
//
// A caller typically builds a network.Network, optionally wraps it in a
// networkview.NetworkView, and calls into solver for a single max-flow or
// shortest-path query, or hands the Network plus a failurepolicy.Policy to
// failuremanager.Run for a capacity-envelope campaign across many random
// failure realizations.
package netgraph
