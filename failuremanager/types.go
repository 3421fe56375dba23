// Package failuremanager implements the Monte Carlo failure-envelope driver
// (spec component H): repeatedly sampling a FailurePolicy against a base
// Network, building a NetworkView per trial, running a caller-supplied
// analysis function over it, and aggregating the per-pair results into
// CapacityEnvelopes.
package failuremanager

import (
	"errors"

	"github.com/networmix/netgraph/networkview"
)

// Sentinel errors for FailureManager configuration.
var (
	// ErrIterationsWithoutRules indicates Iterations > 1 was requested
	// without a policy that has any rules (every iteration would be
	// identical, per spec §4.8 step 2).
	ErrIterationsWithoutRules = errors.New("failuremanager: iterations > 1 requires a failure policy with rules")

	// ErrInvalidIterations indicates Iterations < 1.
	ErrInvalidIterations = errors.New("failuremanager: iterations must be >= 1")

	// ErrInvalidParallelism indicates Parallelism < 1.
	ErrInvalidParallelism = errors.New("failuremanager: parallelism must be >= 1")
)

// PairFlow is one (source-label, sink-label, flow) sample produced by an
// analysis function for a single iteration.
type PairFlow struct {
	SourceLabel string
	SinkLabel   string
	Flow        float64
}

// IterationResult is what an AnalysisFunc returns for one trial.
type IterationResult struct {
	Flows         []PairFlow
	TotalCapacity float64
}

// AnalysisFunc runs the caller's analysis (typically a solver.MaxFlow call)
// against one trial's NetworkView.
type AnalysisFunc func(view *networkview.NetworkView, iteration int, seed int64) (IterationResult, error)

// Pair keys an envelope by its (source-label, sink-label) pair.
type Pair struct {
	Source string
	Sink   string
}

func (p Pair) String() string { return p.Source + "->" + p.Sink }

// FailurePattern records one iteration's exclusion sets, retained only when
// Options.StoreFailurePatterns is set.
type FailurePattern struct {
	Iteration     int
	ExcludedNodes []string
	ExcludedLinks []string
}

// Options configures one FailureManager run.
type Options struct {
	// SourcePattern, SinkPattern, and Mode are carried through to the
	// resulting CapacityEnvelopes for provenance; they are not interpreted
	// by FailureManager itself (the analysis function owns selection).
	SourcePattern string
	SinkPattern   string
	Mode          string

	Iterations  int
	Parallelism int
	// MasterSeed, if non-nil, makes the run fully deterministic: iteration
	// i uses seed *MasterSeed + int64(i). If nil, each iteration seeds from
	// an OS-entropy source.
	MasterSeed *int64
	// Baseline, if true, makes iteration 0 run with empty exclusion sets
	// regardless of the policy.
	Baseline bool
	// StoreFailurePatterns, if true, retains each iteration's exclusion
	// sets in Result.Patterns.
	StoreFailurePatterns bool
}

// Result is the aggregated outcome of a FailureManager run.
type Result struct {
	Envelopes map[Pair]*CapacityEnvelope
	Patterns  []FailurePattern
}
