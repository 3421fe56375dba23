package failurepolicy

import (
	"math"
	"math/rand"
	"sort"

	"github.com/networmix/netgraph/network"
)

// entity is one candidate for matching/selection: its id, its attribute map
// (as seen by Condition evaluation), and the risk-group names it belongs to.
type entity struct {
	id         string
	attrs      map[string]interface{}
	riskGroups map[string]struct{}
}

// Result is the outcome of applying a Policy to a Network for one trial:
// the concrete node names and link ids to exclude from the working graph.
type Result struct {
	ExcludedNodes []string
	ExcludedLinks []string
}

// Apply evaluates every rule in p against net, selects entities per rule,
// expands the result by risk-group membership per Attrs["fail_risk_groups"]
// / Attrs["fail_risk_group_children"], and returns the concrete excluded
// node/link sets. rng drives all random selection; callers seed it per
// spec §4.7's determinism requirement (one *rand.Rand per trial, never the
// package-global generator).
func (p Policy) Apply(net *network.Network, rng *rand.Rand) Result {
	nodeEntities, linkEntities, rgEntities := buildEntities(net)

	failedNodes := make(map[string]struct{})
	failedLinks := make(map[string]struct{})
	failedGroups := make(map[string]struct{})

	for _, rule := range p.Rules {
		var pool []entity
		switch rule.EntityScope {
		case ScopeNode:
			pool = nodeEntities
		case ScopeLink:
			pool = linkEntities
		case ScopeRiskGroup:
			pool = rgEntities
		default:
			continue
		}
		matched := matchEntities(pool, rule.Conditions, rule.Logic)
		selected := selectEntities(matched, rule, rng)
		for _, e := range selected {
			switch rule.EntityScope {
			case ScopeNode:
				failedNodes[e.id] = struct{}{}
			case ScopeLink:
				failedLinks[e.id] = struct{}{}
			case ScopeRiskGroup:
				failedGroups[e.id] = struct{}{}
			}
		}
	}

	if p.failRiskGroupChildren() {
		expandRiskGroupChildren(net, failedGroups)
	}
	if p.failRiskGroups() {
		expandByRiskGroupMembership(nodeEntities, linkEntities, failedGroups, failedNodes, failedLinks)
	}

	return Result{
		ExcludedNodes: sortedKeys(failedNodes),
		ExcludedLinks: sortedKeys(failedLinks),
	}
}

func buildEntities(net *network.Network) (nodes, links, riskGroups []entity) {
	for name, n := range net.Nodes() {
		attrs := make(map[string]interface{}, len(n.Attrs)+1)
		for k, v := range n.Attrs {
			attrs[k] = v
		}
		attrs["name"] = name
		nodes = append(nodes, entity{id: name, attrs: attrs, riskGroups: n.RiskGroups})
	}
	for id, l := range net.Links() {
		attrs := make(map[string]interface{}, len(l.Attrs)+3)
		for k, v := range l.Attrs {
			attrs[k] = v
		}
		attrs["capacity"] = l.Capacity
		attrs["cost"] = l.Cost
		attrs["source"] = l.Source
		attrs["target"] = l.Target
		links = append(links, entity{id: id, attrs: attrs, riskGroups: l.RiskGroups})
	}
	for name, rg := range net.RiskGroups() {
		attrs := make(map[string]interface{}, len(rg.Attrs)+1)
		for k, v := range rg.Attrs {
			attrs[k] = v
		}
		attrs["name"] = name
		riskGroups = append(riskGroups, entity{id: name, attrs: attrs})
	}
	sortEntities(nodes)
	sortEntities(links)
	sortEntities(riskGroups)
	return nodes, links, riskGroups
}

func sortEntities(es []entity) {
	sort.Slice(es, func(i, j int) bool { return es[i].id < es[j].id })
}

func matchEntities(pool []entity, conditions []Condition, logic string) []entity {
	if logic == LogicAny {
		return pool
	}
	var out []entity
	for _, e := range pool {
		if evaluateConditions(e.attrs, conditions, logic) {
			out = append(out, e)
		}
	}
	return out
}

func selectEntities(matched []entity, rule Rule, rng *rand.Rand) []entity {
	if len(matched) == 0 {
		return nil
	}
	switch rule.RuleType {
	case RuleAll:
		return matched
	case RuleRandom:
		var out []entity
		for _, e := range matched {
			if rng.Float64() < rule.Probability {
				out = append(out, e)
			}
		}
		return out
	case RuleChoice:
		count := rule.Count
		if count > len(matched) {
			count = len(matched)
		}
		if count <= 0 {
			return nil
		}
		if rule.WeightAttr == "" {
			return uniformSample(matched, count, rng)
		}
		return weightedSample(matched, count, rule.WeightAttr, rng)
	default:
		return nil
	}
}

func uniformSample(matched []entity, count int, rng *rand.Rand) []entity {
	perm := rng.Perm(len(matched))
	out := make([]entity, count)
	for i := 0; i < count; i++ {
		out[i] = matched[perm[i]]
	}
	return out
}

// weightedSample picks count entities without replacement, weighted by the
// numeric attribute named weightAttr (missing/non-numeric weight defaults
// to 1), via the Efraimidis-Spirakis exponential-key algorithm.
func weightedSample(matched []entity, count int, weightAttr string, rng *rand.Rand) []entity {
	type keyed struct {
		e   entity
		key float64
	}
	ks := make([]keyed, len(matched))
	for i, e := range matched {
		w := 1.0
		if v, ok := e.attrs[weightAttr]; ok {
			if f, ok := toFloat(v); ok && f > 0 {
				w = f
			}
		}
		u := rng.Float64()
		if u <= 0 {
			u = 1e-12
		}
		ks[i] = keyed{e: e, key: -math.Log(u) / w}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	out := make([]entity, count)
	for i := 0; i < count; i++ {
		out[i] = ks[i].e
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
