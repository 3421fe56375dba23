package failurepolicy

import (
	"reflect"
	"strings"
)

func evaluateConditions(attrs map[string]interface{}, conditions []Condition, logic string) bool {
	if logic == LogicAny {
		return true
	}
	if len(conditions) == 0 {
		return false
	}
	if logic == LogicOr {
		for _, c := range conditions {
			if evaluateCondition(attrs, c) {
				return true
			}
		}
		return false
	}
	for _, c := range conditions {
		if !evaluateCondition(attrs, c) {
			return false
		}
	}
	return true
}

func evaluateCondition(attrs map[string]interface{}, cond Condition) bool {
	value, hasAttr := attrs[cond.Attr]

	switch cond.Operator {
	case OpExists:
		return hasAttr
	case OpNotExists:
		return !hasAttr
	case OpAnyValue:
		return hasAttr && value != nil
	case OpNoValue:
		return !hasAttr || value == nil
	}

	// A missing attribute is treated as a nil value (as if looked up with a
	// nil default), not as an automatic non-match: == and != compare that
	// nil against cond.Value like any other value, and not_contains treats
	// "nothing to search" as vacuously true, matching the original's
	// None-aware condition evaluation.
	switch cond.Operator {
	case OpEq:
		return reflect.DeepEqual(value, cond.Value)
	case OpNeq:
		return !reflect.DeepEqual(value, cond.Value)
	case OpNotContains:
		if !hasAttr || value == nil {
			return true
		}
		return !containsMember(value, cond.Value)
	}

	if !hasAttr || value == nil {
		return false
	}

	switch cond.Operator {
	case OpLt:
		return compareOrdered(value, cond.Value, func(a, b float64) bool { return a < b })
	case OpLte:
		return compareOrdered(value, cond.Value, func(a, b float64) bool { return a <= b })
	case OpGt:
		return compareOrdered(value, cond.Value, func(a, b float64) bool { return a > b })
	case OpGte:
		return compareOrdered(value, cond.Value, func(a, b float64) bool { return a >= b })
	case OpContains:
		return containsMember(value, cond.Value)
	case OpIn:
		return containsMember(cond.Value, value)
	case OpNotIn:
		return !containsMember(cond.Value, value)
	default:
		return false
	}
}

// compareOrdered converts a and b to float64 (supporting int/int64/float32/64)
// and applies cmp; non-numeric values never match an ordering operator.
func compareOrdered(a, b interface{}, cmp func(x, y float64) bool) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return false
	}
	return cmp(af, bf)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// containsMember reports whether member is an element of collection, where
// collection is a slice/array (reflectively) or a string (substring match
// when member is a string).
func containsMember(collection, member interface{}) bool {
	if s, ok := collection.(string); ok {
		m, ok := member.(string)
		if !ok {
			return false
		}
		return strings.Contains(s, m)
	}
	rv := reflect.ValueOf(collection)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if reflect.DeepEqual(rv.Index(i).Interface(), member) {
			return true
		}
	}
	return false
}
