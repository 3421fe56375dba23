// Package failurepolicy implements declarative failure rules (spec
// component G): scope + condition matching over nodes, links, and risk
// groups, a per-rule selection strategy, and risk-group expansion of the
// matched set, all driven by a deterministic per-call RNG.
package failurepolicy

import "errors"

// Sentinel errors for failure-policy construction and evaluation.
var (
	// ErrInvalidScope indicates an EntityScope outside {node, link, risk_group}.
	ErrInvalidScope = errors.New("failurepolicy: invalid entity_scope")

	// ErrInvalidLogic indicates a Logic outside {and, or, any}.
	ErrInvalidLogic = errors.New("failurepolicy: invalid logic")

	// ErrInvalidRuleType indicates a RuleType outside {random, choice, all}.
	ErrInvalidRuleType = errors.New("failurepolicy: invalid rule_type")

	// ErrInvalidOperator indicates a condition operator outside the supported set.
	ErrInvalidOperator = errors.New("failurepolicy: invalid operator")

	// ErrInvalidProbability indicates Probability outside [0,1] for rule_type="random".
	ErrInvalidProbability = errors.New("failurepolicy: probability must be within [0,1]")
)

// Entity scopes a rule matches against.
const (
	ScopeNode      = "node"
	ScopeLink      = "link"
	ScopeRiskGroup = "risk_group"
)

// Condition logics.
const (
	LogicAnd = "and"
	LogicOr  = "or"
	LogicAny = "any"
)

// Selection strategies.
const (
	RuleRandom = "random"
	RuleChoice = "choice"
	RuleAll    = "all"
)

// Condition operators.
const (
	OpEq           = "=="
	OpNeq          = "!="
	OpLt           = "<"
	OpLte          = "<="
	OpGt           = ">"
	OpGte          = ">="
	OpContains     = "contains"
	OpNotContains  = "not_contains"
	OpIn           = "in"
	OpNotIn        = "not_in"
	OpExists       = "exists"
	OpNotExists    = "not_exists"
	OpAnyValue     = "any_value"
	OpNoValue      = "no_value"
)

// Condition is one (attribute, operator, value) test against an entity's
// attribute map.
type Condition struct {
	Attr     string
	Operator string
	Value    interface{}
}

// Rule selects a subset of one entity scope by condition matching plus a
// selection strategy.
type Rule struct {
	EntityScope string
	Conditions  []Condition
	Logic       string
	RuleType    string
	Probability float64
	Count       int
	// WeightAttr, if non-empty, names the numeric attribute used for
	// weighted sampling under RuleChoice; empty means uniform sampling.
	WeightAttr string
}

// Validate checks Rule fields for structural validity, matching the
// InvalidConfig surface of spec §7.
func (r Rule) Validate() error {
	switch r.EntityScope {
	case ScopeNode, ScopeLink, ScopeRiskGroup:
	default:
		return ErrInvalidScope
	}
	switch r.Logic {
	case LogicAnd, LogicOr, LogicAny:
	default:
		return ErrInvalidLogic
	}
	switch r.RuleType {
	case RuleRandom, RuleChoice, RuleAll:
	default:
		return ErrInvalidRuleType
	}
	if r.RuleType == RuleRandom && (r.Probability < 0 || r.Probability > 1) {
		return ErrInvalidProbability
	}
	for _, c := range r.Conditions {
		switch c.Operator {
		case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpContains, OpNotContains,
			OpIn, OpNotIn, OpExists, OpNotExists, OpAnyValue, OpNoValue:
		default:
			return ErrInvalidOperator
		}
	}
	return nil
}

// Policy is an ordered set of rules plus free-form attributes. Attrs["fail_risk_groups"]
// and Attrs["fail_risk_group_children"], if true, drive post-match expansion per spec §4.7.
type Policy struct {
	Rules []Rule
	Attrs map[string]interface{}
}

func (p Policy) boolAttr(name string) bool {
	v, ok := p.Attrs[name]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (p Policy) failRiskGroups() bool         { return p.boolAttr("fail_risk_groups") }
func (p Policy) failRiskGroupChildren() bool  { return p.boolAttr("fail_risk_group_children") }

// HasRules reports whether the policy has at least one rule, used by
// FailureManager's iterations>1-without-rules validation.
func (p Policy) HasRules() bool { return len(p.Rules) > 0 }
