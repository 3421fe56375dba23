package network

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrInvalidSelector indicates an attr: directive failed its strict syntax check.
var ErrInvalidSelector = errors.New("network: invalid selector")

var attrDirectiveRe = regexp.MustCompile(`^attr:([A-Za-z_]\w*)$`)

// SelectNodeGroupsByPath groups nodes by a selector, which is either:
//
//   - a regex applied to node.Name, anchored at the start. If the pattern
//     has capture groups, the group label is the "|"-join of its
//     participating captures (groups that matched, including an empty
//     match); groups the regex engine never entered are dropped. Otherwise
//     the label is the pattern text itself.
//   - an attribute directive `attr:<name>` (strictly `attr:[A-Za-z_]\w*`).
//     Nodes are grouped by fmt.Sprintf("%v", node.Attrs[name]); nodes
//     lacking the attribute are omitted.
//
// Disabled nodes are included here; callers that need disabled-filtering
// (NetworkView) apply it on top of this raw result, per spec §4.2-§4.3.
func (n *Network) SelectNodeGroupsByPath(path string) (map[string][]*Node, error) {
	nodes := n.Nodes()

	if m := attrDirectiveRe.FindStringSubmatch(path); m != nil {
		attrName := m[1]
		groups := make(map[string][]*Node)
		for _, name := range sortedNames(nodes) {
			node := nodes[name]
			v, ok := node.Attrs[attrName]
			if !ok {
				continue
			}
			label := fmt.Sprintf("%v", v)
			groups[label] = append(groups[label], node)
		}
		return groups, nil
	}
	if isMalformedAttrDirective(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, path)
	}

	re, err := regexp.Compile("^(?:" + path + ")")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, path, err)
	}

	groups := make(map[string][]*Node)
	for _, name := range sortedNames(nodes) {
		loc := re.FindStringSubmatchIndex(name)
		if loc == nil {
			continue
		}
		label := groupLabel(re, name, loc, path)
		groups[label] = append(groups[label], nodes[name])
	}
	return groups, nil
}

// isMalformedAttrDirective reports whether path looks like an attempted
// attr: directive but fails the strict name syntax, so it can be rejected
// as InvalidSelector rather than silently treated as a literal regex.
func isMalformedAttrDirective(path string) bool {
	return len(path) > 5 && path[:5] == "attr:" && !attrDirectiveRe.MatchString(path)
}

func groupLabel(re *regexp.Regexp, name string, loc []int, path string) string {
	names := re.SubexpNames()
	if len(loc) <= 2 {
		return path
	}
	var captures []string
	for i := 1; i < len(loc)/2; i++ {
		s, e := loc[2*i], loc[2*i+1]
		if s < 0 || e < 0 {
			continue // group did not participate in the match
		}
		captures = append(captures, name[s:e])
	}
	if len(captures) == 0 {
		if len(names) <= 1 {
			return path
		}
		return path
	}
	return joinPipe(captures)
}

func joinPipe(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}

func sortedNames(nodes map[string]*Node) []string {
	out := make([]string, 0, len(nodes))
	for name := range nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
