// Package networkview implements NetworkView: an immutable overlay over a
// network.Network that hides a caller-specified set of nodes and links
// without mutating the base, and caches derived working graphs per
// (add_reverse, compact) key (spec component C).
package networkview

import (
	"sync"

	"github.com/networmix/netgraph/multigraph"
	"github.com/networmix/netgraph/network"
)

type cacheKey struct {
	addReverse bool
	compact    bool
}

// NetworkView is a value type referencing a base Network plus two exclusion
// sets. It never mutates the base. A node is hidden iff it is disabled on
// the base or present in ExcludedNodes, or does not exist. A link is hidden
// iff disabled, excluded, or either endpoint is hidden.
type NetworkView struct {
	base          *network.Network
	excludedNodes map[string]struct{}
	excludedLinks map[string]struct{}

	muCache sync.Mutex
	cache   map[cacheKey]*multigraph.Graph
}

// New builds a NetworkView over base, hiding excludedNodes and excludedLinks.
// Nil slices are treated as empty.
func New(base *network.Network, excludedNodes, excludedLinks []string) *NetworkView {
	v := &NetworkView{
		base:          base,
		excludedNodes: toSet(excludedNodes),
		excludedLinks: toSet(excludedLinks),
		cache:         make(map[cacheKey]*multigraph.Graph),
	}
	return v
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

// Base returns the underlying Network. Callers must not mutate it through
// this reference during a concurrent campaign; see spec §5.
func (v *NetworkView) Base() *network.Network { return v.base }

// IsNodeHidden reports whether name is disabled on the base, excluded by
// this view, or unknown.
func (v *NetworkView) IsNodeHidden(name string) bool {
	node, ok := v.base.GetNode(name)
	if !ok {
		return true
	}
	if node.Disabled {
		return true
	}
	_, excluded := v.excludedNodes[name]
	return excluded
}

// IsLinkHidden reports whether id is disabled, excluded, or incident to a
// hidden node.
func (v *NetworkView) IsLinkHidden(id string) bool {
	link, ok := v.base.GetLink(id)
	if !ok {
		return true
	}
	if link.Disabled {
		return true
	}
	if _, excluded := v.excludedLinks[id]; excluded {
		return true
	}
	return v.IsNodeHidden(link.Source) || v.IsNodeHidden(link.Target)
}

// Nodes returns every visible node, keyed by name.
func (v *NetworkView) Nodes() map[string]*network.Node {
	out := make(map[string]*network.Node)
	for name, node := range v.base.Nodes() {
		if !v.IsNodeHidden(name) {
			out[name] = node
		}
	}
	return out
}

// Links returns every visible link, keyed by id.
func (v *NetworkView) Links() map[string]*network.Link {
	out := make(map[string]*network.Link)
	for id, link := range v.base.Links() {
		if !v.IsLinkHidden(id) {
			out[id] = link
		}
	}
	return out
}

// SelectNodeGroupsByPath delegates to the base selector, then drops hidden
// nodes from each group and removes groups that end up empty, per spec §4.3.
func (v *NetworkView) SelectNodeGroupsByPath(path string) (map[string][]*network.Node, error) {
	raw, err := v.base.SelectNodeGroupsByPath(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*network.Node, len(raw))
	for label, nodes := range raw {
		var visible []*network.Node
		for _, node := range nodes {
			if !v.IsNodeHidden(node.Name) {
				visible = append(visible, node)
			}
		}
		if len(visible) > 0 {
			out[label] = visible
		}
	}
	return out, nil
}

// WorkingGraph is an alias for ToWorkingGraph, satisfying the solver
// package's Context interface alongside network.Network.WorkingGraph.
func (v *NetworkView) WorkingGraph(addReverse, compact bool) (*multigraph.Graph, error) {
	return v.ToWorkingGraph(addReverse, compact)
}

// ToWorkingGraph materializes a StrictMultiDigraph from the visible nodes
// and links, caching the result by (addReverse, compact). The first build
// for a given key is synchronized; subsequent reads of a populated entry
// still pass through the same lock (the graph itself is then treated as
// read-only by callers, who Clone() before mutating).
func (v *NetworkView) ToWorkingGraph(addReverse, compact bool) (*multigraph.Graph, error) {
	key := cacheKey{addReverse: addReverse, compact: compact}

	v.muCache.Lock()
	defer v.muCache.Unlock()

	if g, ok := v.cache[key]; ok {
		return g, nil
	}
	g, err := v.base.BuildWorkingGraph(addReverse, compact, v.excludedNodes, v.excludedLinks)
	if err != nil {
		return nil, err
	}
	v.cache[key] = g
	return g, nil
}
