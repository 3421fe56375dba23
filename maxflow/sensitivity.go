package maxflow

import "github.com/networmix/netgraph/multigraph"

// SensitivityResult is the total-flow delta observed when one min-cut edge's
// capacity is perturbed by changeAmount.
type SensitivityResult struct {
	EdgeKey      string
	ChangeAmount float64
	FlowDelta    float64
}

// SensitivityAnalysis reruns Run once per edge in baseline's min-cut,
// each time perturbing that edge's capacity by changeAmount (clamped at
// zero from below) on an independent scratch clone of g, and reports the
// resulting change in total flow relative to baseline. shortest_path is
// honored identically in the baseline and every perturbation, per spec §4.5.
func SensitivityAnalysis(g *multigraph.Graph, source, sink string, baseline *FlowSummary, changeAmount float64, opts Options) ([]SensitivityResult, error) {
	results := make([]SensitivityResult, 0, len(baseline.MinCut))
	for _, key := range baseline.MinCut {
		scratch := g.Clone()
		e, err := scratch.Edge(key)
		if err != nil {
			return nil, err
		}
		newCap := e.Capacity + changeAmount
		if newCap < 0 {
			newCap = 0
		}
		if err := scratch.SetCapacity(key, newCap); err != nil {
			return nil, err
		}

		perturbed, err := Run(scratch, source, sink, opts)
		if err != nil {
			return nil, err
		}

		results = append(results, SensitivityResult{
			EdgeKey:      key,
			ChangeAmount: changeAmount,
			FlowDelta:    perturbed.TotalFlow - baseline.TotalFlow,
		})
	}
	return results, nil
}
