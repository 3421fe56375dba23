// Package solver implements combine/pairwise aggregation over node-group
// selectors, binding them to the path engine (pathengine) and max-flow
// engine (maxflow) through a pseudo source/sink construction (spec
// component F).
package solver
