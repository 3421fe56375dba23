package failuremanager

import (
	"github.com/networmix/netgraph/maxflow"
	"github.com/networmix/netgraph/networkview"
	"github.com/networmix/netgraph/solver"
)

// CapacityAnalysis builds an AnalysisFunc that runs solver.MaxFlow over
// each trial's NetworkView, the standard analysis function for capacity
// envelope sampling per spec §4.8.
func CapacityAnalysis(sourcePath, sinkPath, mode string, opts maxflow.Options) AnalysisFunc {
	return func(view *networkview.NetworkView, iteration int, seed int64) (IterationResult, error) {
		flows, err := solver.MaxFlow(view, sourcePath, sinkPath, mode, opts)
		if err != nil {
			return IterationResult{}, err
		}
		res := IterationResult{Flows: make([]PairFlow, 0, len(flows))}
		for pair, flow := range flows {
			res.Flows = append(res.Flows, PairFlow{SourceLabel: pair.Source, SinkLabel: pair.Sink, Flow: flow})
			res.TotalCapacity += flow
		}
		return res, nil
	}
}
