// Package failuremanager drives Monte Carlo failure-envelope analysis
// (spec component H): a worker pool samples a FailurePolicy against a base
// Network, building one NetworkView per trial, and aggregates a
// caller-supplied analysis function's results into CapacityEnvelopes.
package failuremanager
