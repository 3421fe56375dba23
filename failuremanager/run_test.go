package failuremanager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/failuremanager"
	"github.com/networmix/netgraph/failurepolicy"
	"github.com/networmix/netgraph/maxflow"
	"github.com/networmix/netgraph/network"
)

func buildLinearNet(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "A"}))
	require.NoError(t, n.AddNode(&network.Node{Name: "B"}))
	require.NoError(t, n.AddNode(&network.Node{Name: "C"}))
	l1 := network.NewLink("A", "B", 10, 1, nil)
	l1.RiskGroups = map[string]struct{}{"rgA": {}}
	require.NoError(t, n.AddLink(l1))
	require.NoError(t, n.AddLink(network.NewLink("B", "C", 10, 1, nil)))
	return n
}

func TestRunRejectsIterationsWithoutRules(t *testing.T) {
	n := buildLinearNet(t)
	analysis := failuremanager.CapacityAnalysis("^A$", "^C$", "combine", maxflow.Options{})
	_, err := failuremanager.Run(context.Background(), n, failurepolicy.Policy{}, analysis, failuremanager.Options{Iterations: 3, Parallelism: 1})
	assert.ErrorIs(t, err, failuremanager.ErrIterationsWithoutRules)
}

func TestRunWithoutPolicyCapsToOneIteration(t *testing.T) {
	n := buildLinearNet(t)
	analysis := failuremanager.CapacityAnalysis("^A$", "^C$", "combine", maxflow.Options{})
	res, err := failuremanager.Run(context.Background(), n, failurepolicy.Policy{}, analysis, failuremanager.Options{Iterations: 1, Parallelism: 4})
	require.NoError(t, err)
	for _, env := range res.Envelopes {
		assert.Len(t, env.Values, 1)
	}
}

func TestRunIsDeterministicAcrossParallelismLevels(t *testing.T) {
	n := buildLinearNet(t)
	policy := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeLink,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleRandom,
		Probability: 0.5,
	}}}
	analysis := failuremanager.CapacityAnalysis("^A$", "^C$", "combine", maxflow.Options{})
	seed := int64(99)

	serial, err := failuremanager.Run(context.Background(), n, policy, analysis, failuremanager.Options{
		Iterations: 20, Parallelism: 1, MasterSeed: &seed,
	})
	require.NoError(t, err)

	parallel, err := failuremanager.Run(context.Background(), n, policy, analysis, failuremanager.Options{
		Iterations: 20, Parallelism: 8, MasterSeed: &seed,
	})
	require.NoError(t, err)

	require.Equal(t, len(serial.Envelopes), len(parallel.Envelopes))
	for pair, env := range serial.Envelopes {
		other, ok := parallel.Envelopes[pair]
		require.True(t, ok)
		assert.Equal(t, env.Values, other.Values)
	}
}

func TestRunBaselineFirstIterationHasNoFailures(t *testing.T) {
	n := buildLinearNet(t)
	policy := failurepolicy.Policy{
		Rules: []failurepolicy.Rule{{
			EntityScope: failurepolicy.ScopeLink,
			Logic:       failurepolicy.LogicAny,
			RuleType:    failurepolicy.RuleAll,
		}},
	}
	seed := int64(1)
	analysis := failuremanager.CapacityAnalysis("^A$", "^C$", "combine", maxflow.Options{})
	res, err := failuremanager.Run(context.Background(), n, policy, analysis, failuremanager.Options{
		Iterations: 2, Parallelism: 1, MasterSeed: &seed, Baseline: true, StoreFailurePatterns: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Patterns, 2)
	assert.Empty(t, res.Patterns[0].ExcludedLinks)
	assert.NotEmpty(t, res.Patterns[1].ExcludedLinks)
}

func TestRunCancelledContextStopsEarly(t *testing.T) {
	n := buildLinearNet(t)
	policy := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeLink,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleRandom,
		Probability: 0.1,
	}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	analysis := failuremanager.CapacityAnalysis("^A$", "^C$", "combine", maxflow.Options{})
	res, err := failuremanager.Run(ctx, n, policy, analysis, failuremanager.Options{Iterations: 50, Parallelism: 1})
	require.NoError(t, err)
	require.NotNil(t, res)
	for _, env := range res.Envelopes {
		assert.Less(t, len(env.Values), 50)
	}
}
