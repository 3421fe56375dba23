package failurepolicy_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/failurepolicy"
	"github.com/networmix/netgraph/network"
)

func buildNet(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "A", Attrs: map[string]interface{}{"tier": "edge"}}))
	require.NoError(t, n.AddNode(&network.Node{Name: "B", Attrs: map[string]interface{}{"tier": "core"}, RiskGroups: map[string]struct{}{"rg1": {}}}))
	require.NoError(t, n.AddNode(&network.Node{Name: "C", Attrs: map[string]interface{}{"tier": "core"}}))
	l := network.NewLink("B", "C", 10, 1, nil)
	l.RiskGroups = map[string]struct{}{"rg1": {}}
	require.NoError(t, n.AddLink(l))
	return n
}

func TestApplyAllRuleTypeSelectsEveryMatch(t *testing.T) {
	n := buildNet(t)
	p := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Conditions:  []failurepolicy.Condition{{Attr: "tier", Operator: failurepolicy.OpEq, Value: "core"}},
		Logic:       failurepolicy.LogicAnd,
		RuleType:    failurepolicy.RuleAll,
	}}}
	res := p.Apply(n, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, []string{"B", "C"}, res.ExcludedNodes)
}

func TestApplyAnyLogicIgnoresConditions(t *testing.T) {
	n := buildNet(t)
	p := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleAll,
	}}}
	res := p.Apply(n, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, res.ExcludedNodes)
}

func TestApplyChoiceIsDeterministicForFixedSeed(t *testing.T) {
	n := buildNet(t)
	rule := failurepolicy.Rule{
		EntityScope: failurepolicy.ScopeNode,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleChoice,
		Count:       1,
	}
	p := failurepolicy.Policy{Rules: []failurepolicy.Rule{rule}}

	first := p.Apply(n, rand.New(rand.NewSource(42)))
	second := p.Apply(n, rand.New(rand.NewSource(42)))
	assert.Equal(t, first.ExcludedNodes, second.ExcludedNodes)
	assert.Len(t, first.ExcludedNodes, 1)
}

func TestApplyRandomRespectsProbabilityBounds(t *testing.T) {
	n := buildNet(t)
	zero := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleRandom,
		Probability: 0,
	}}}
	res := zero.Apply(n, rand.New(rand.NewSource(7)))
	assert.Empty(t, res.ExcludedNodes)

	all := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Logic:       failurepolicy.LogicAny,
		RuleType:    failurepolicy.RuleRandom,
		Probability: 1,
	}}}
	res = all.Apply(n, rand.New(rand.NewSource(7)))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, res.ExcludedNodes)
}

func TestApplyFailRiskGroupsExpandsSharedMembership(t *testing.T) {
	n := buildNet(t)
	p := failurepolicy.Policy{
		Rules: []failurepolicy.Rule{{
			EntityScope: failurepolicy.ScopeNode,
			Conditions:  []failurepolicy.Condition{{Attr: "name", Operator: failurepolicy.OpEq, Value: "B"}},
			Logic:       failurepolicy.LogicAnd,
			RuleType:    failurepolicy.RuleAll,
		}},
		Attrs: map[string]interface{}{"fail_risk_groups": true},
	}
	res := p.Apply(n, rand.New(rand.NewSource(1)))
	assert.Contains(t, res.ExcludedNodes, "B")
	require.Len(t, res.ExcludedLinks, 1)
}

func TestApplyRiskGroupScopeWithChildrenExpansion(t *testing.T) {
	n := buildNet(t)
	require.NoError(t, n.AddRiskGroup(&network.RiskGroup{Name: "site", Children: []string{"rg1"}}))

	p := failurepolicy.Policy{
		Rules: []failurepolicy.Rule{{
			EntityScope: failurepolicy.ScopeRiskGroup,
			Conditions:  []failurepolicy.Condition{{Attr: "name", Operator: failurepolicy.OpEq, Value: "site"}},
			Logic:       failurepolicy.LogicAnd,
			RuleType:    failurepolicy.RuleAll,
		}},
		Attrs: map[string]interface{}{"fail_risk_groups": true, "fail_risk_group_children": true},
	}
	res := p.Apply(n, rand.New(rand.NewSource(1)))
	assert.Contains(t, res.ExcludedNodes, "B")
	assert.Len(t, res.ExcludedLinks, 1)
}

func TestApplyMissingAttributeNeqAndNotContainsMatchByDefault(t *testing.T) {
	n := buildNet(t)
	neq := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Conditions:  []failurepolicy.Condition{{Attr: "rack", Operator: failurepolicy.OpNeq, Value: "edge"}},
		Logic:       failurepolicy.LogicAnd,
		RuleType:    failurepolicy.RuleAll,
	}}}
	res := neq.Apply(n, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, res.ExcludedNodes, "nodes lacking 'rack' are not equal to 'edge'")

	notContains := failurepolicy.Policy{Rules: []failurepolicy.Rule{{
		EntityScope: failurepolicy.ScopeNode,
		Conditions:  []failurepolicy.Condition{{Attr: "rack", Operator: failurepolicy.OpNotContains, Value: "x"}},
		Logic:       failurepolicy.LogicAnd,
		RuleType:    failurepolicy.RuleAll,
	}}}
	res = notContains.Apply(n, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, res.ExcludedNodes, "nothing to search vacuously satisfies not_contains")
}

func TestRuleValidateRejectsBadFields(t *testing.T) {
	bad := failurepolicy.Rule{EntityScope: "bogus", Logic: failurepolicy.LogicAny, RuleType: failurepolicy.RuleAll}
	assert.ErrorIs(t, bad.Validate(), failurepolicy.ErrInvalidScope)

	badProb := failurepolicy.Rule{EntityScope: failurepolicy.ScopeNode, Logic: failurepolicy.LogicAny, RuleType: failurepolicy.RuleRandom, Probability: 2}
	assert.ErrorIs(t, badProb.Validate(), failurepolicy.ErrInvalidProbability)
}
