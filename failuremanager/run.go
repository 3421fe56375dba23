package failuremanager

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"sort"
	"sync"

	"github.com/networmix/netgraph/failurepolicy"
	"github.com/networmix/netgraph/network"
	"github.com/networmix/netgraph/networkview"
)

type iterationOutcome struct {
	started bool
	result  IterationResult
	pattern FailurePattern
	err     error
}

// Run executes opts.Iterations trials of analysis over base, applying
// policy per trial (except iteration 0 when opts.Baseline is set), and
// aggregates the resulting flows into CapacityEnvelopes. Workers share only
// a read-only base Network reference; each constructs its own NetworkView,
// per spec §4.8/§5.
func Run(ctx context.Context, base *network.Network, policy failurepolicy.Policy, analysis AnalysisFunc, opts Options) (*Result, error) {
	if opts.Iterations < 1 {
		return nil, ErrInvalidIterations
	}
	if opts.Parallelism < 1 {
		return nil, ErrInvalidParallelism
	}
	if !policy.HasRules() && opts.Iterations > 1 {
		return nil, ErrIterationsWithoutRules
	}

	iterations := opts.Iterations
	if !policy.HasRules() {
		iterations = 1
	}

	outcomes := make([]iterationOutcome, iterations)

	workers := opts.Parallelism
	if workers > iterations {
		workers = iterations
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = runIteration(base, policy, analysis, opts, i)
			}
		}()
	}

feed:
	for i := 0; i < iterations; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	// Cancellation is cooperative (spec §5/§7): a worker that was mid-job
	// still finishes it and reports its outcome, but no further jobs are
	// dispatched; aggregate() below only folds in iterations that actually
	// started, so a cancelled run yields a partial, not a failed, Result.
	return aggregate(outcomes, opts)
}

func runIteration(base *network.Network, policy failurepolicy.Policy, analysis AnalysisFunc, opts Options, i int) iterationOutcome {
	seed := iterationSeed(opts.MasterSeed, i)

	var excludedNodes, excludedLinks []string
	if !(opts.Baseline && i == 0) {
		res := policy.Apply(base, mrand.New(mrand.NewSource(seed)))
		excludedNodes = res.ExcludedNodes
		excludedLinks = res.ExcludedLinks
	}

	view := networkview.New(base, excludedNodes, excludedLinks)
	result, err := analysis(view, i, seed)
	return iterationOutcome{
		started: true,
		result:  result,
		pattern: FailurePattern{
			Iteration:     i,
			ExcludedNodes: excludedNodes,
			ExcludedLinks: excludedLinks,
		},
		err: err,
	}
}

// iterationSeed derives the per-iteration seed per spec §4.8: master+i when
// a master seed is configured, else an OS-entropy seed.
func iterationSeed(master *int64, i int) int64 {
	if master != nil {
		return *master + int64(i)
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return int64(i)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// aggregate is order-independent by construction (spec §5): every
// iteration writes to its own outcomes[i] slot, so result order never
// depends on goroutine scheduling, and pair samples are appended in
// iteration order during this single-threaded pass.
func aggregate(outcomes []iterationOutcome, opts Options) (*Result, error) {
	samples := make(map[Pair][]float64)
	var order []Pair
	var patterns []FailurePattern

	for _, o := range outcomes {
		if !o.started {
			continue
		}
		if o.err != nil {
			return nil, fmt.Errorf("failuremanager: iteration %d: %w", o.pattern.Iteration, o.err)
		}
		for _, pf := range o.result.Flows {
			p := Pair{Source: pf.SourceLabel, Sink: pf.SinkLabel}
			if _, seen := samples[p]; !seen {
				order = append(order, p)
			}
			samples[p] = append(samples[p], pf.Flow)
		}
		if opts.StoreFailurePatterns {
			patterns = append(patterns, o.pattern)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Source != order[j].Source {
			return order[i].Source < order[j].Source
		}
		return order[i].Sink < order[j].Sink
	})

	envelopes := make(map[Pair]*CapacityEnvelope, len(order))
	for _, p := range order {
		envelopes[p] = newEnvelope(opts.SourcePattern, opts.SinkPattern, opts.Mode, samples[p])
	}

	return &Result{Envelopes: envelopes, Patterns: patterns}, nil
}
