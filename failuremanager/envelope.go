package failuremanager

import "gonum.org/v1/gonum/stat"

// CapacityEnvelope is the raw sample set for one (source, sink) pair across
// all Monte Carlo iterations, plus its derived statistics.
type CapacityEnvelope struct {
	SourcePattern string
	SinkPattern   string
	Mode          string

	Values []float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// newEnvelope computes Min/Max/Mean/StdDev over values. Mean and StdDev use
// gonum/stat; Min/Max have no single-pass gonum equivalent so they are
// folded by hand alongside the gonum calls.
func newEnvelope(sourcePattern, sinkPattern, mode string, values []float64) *CapacityEnvelope {
	e := &CapacityEnvelope{
		SourcePattern: sourcePattern,
		SinkPattern:   sinkPattern,
		Mode:          mode,
		Values:        values,
	}
	if len(values) == 0 {
		return e
	}
	e.Min, e.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < e.Min {
			e.Min = v
		}
		if v > e.Max {
			e.Max = v
		}
	}
	e.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		e.StdDev = stat.StdDev(values, e.Mean, nil)
	}
	return e
}
