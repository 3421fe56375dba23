// Package maxflow implements the cost-tiered max-flow engine (spec
// component E, "the heart"): iterative SPF over the residual graph to find
// the next min-cost augmenting DAG, PROPORTIONAL (exact blocking flow) or
// EQUAL_BALANCED (strict ECMP) placement across that DAG, residual/flow
// bookkeeping, and post-hoc min-cut/reachability extraction plus
// sensitivity analysis.
//
//	go get github.com/networmix/netgraph/maxflow
package maxflow
