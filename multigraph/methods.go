package multigraph

import "sort"

// AddNode registers a node ID. Re-adding an existing ID is a no-op.
// Complexity: O(1).
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.muNode.Lock()
	g.nodes[id] = struct{}{}
	g.muNode.Unlock()

	g.muEdge.Lock()
	if _, ok := g.adjOut[id]; !ok {
		g.adjOut[id] = make(map[EdgeKey]struct{})
	}
	if _, ok := g.adjIn[id]; !ok {
		g.adjIn[id] = make(map[EdgeKey]struct{})
	}
	g.muEdge.Unlock()
	return nil
}

// HasNode reports whether id is a known node.
func (g *Graph) HasNode(id string) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// AddEdge adds a directed edge from→to with the given capacity and cost.
//
// Steps:
//  1. Validate both endpoints exist.
//  2. Validate capacity and cost are non-negative.
//  3. In compact mode, mint a monotonic key and clear attrs; otherwise use
//     the caller-supplied key, failing on a collision.
//  4. Record the edge and update both adjacency indexes.
//
// Self-loops (from == to) are accepted here — StrictMultiDigraph is a pure
// data structure; it is the solver's/path-engine's responsibility to ignore
// them, per spec.
func (g *Graph) AddEdge(from, to string, key EdgeKey, capacity, cost float64, attrs map[string]interface{}) (EdgeKey, error) {
	if !g.HasNode(from) {
		return "", ErrNodeNotFound
	}
	if !g.HasNode(to) {
		return "", ErrNodeNotFound
	}
	if capacity < 0 {
		return "", ErrNegativeCapacity
	}
	if cost < 0 {
		return "", ErrNegativeCost
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	if g.compact {
		key = g.nextCompactKey()
		attrs = nil
	} else {
		if key == "" {
			key = g.nextCompactKey()
		} else if _, exists := g.edges[key]; exists {
			return "", ErrDuplicateKey
		}
	}

	e := &Edge{From: from, To: to, Key: key, Capacity: capacity, Cost: cost, Attrs: attrs}
	g.edges[key] = e
	g.adjOut[from][key] = struct{}{}
	g.adjIn[to][key] = struct{}{}
	return key, nil
}

// SetCapacity updates the capacity of the edge identified by key. Used by
// sensitivity analysis to perturb a single edge on a scratch clone without
// rebuilding the whole graph.
func (g *Graph) SetCapacity(key EdgeKey, capacity float64) error {
	if capacity < 0 {
		return ErrNegativeCapacity
	}
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e, ok := g.edges[key]
	if !ok {
		return ErrEdgeNotFound
	}
	e.Capacity = capacity
	return nil
}

// RemoveEdge deletes the edge identified by key.
func (g *Graph) RemoveEdge(key EdgeKey) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	e, ok := g.edges[key]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, key)
	delete(g.adjOut[e.From], key)
	delete(g.adjIn[e.To], key)
	return nil
}

// Edge returns the edge for key, or ErrEdgeNotFound.
func (g *Graph) Edge(key EdgeKey) (*Edge, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	e, ok := g.edges[key]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	cp := *e
	return &cp, nil
}

// Nodes returns all node IDs in sorted order.
func (g *Graph) Nodes() []string {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Edges returns all edges in the graph, sorted by key.
func (g *Graph) Edges() []*Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// OutEdges returns the outgoing edges of node, sorted by key.
func (g *Graph) OutEdges(node string) []*Edge {
	return g.edgesFrom(g.adjOut, node)
}

// InEdges returns the incoming edges of node, sorted by key.
func (g *Graph) InEdges(node string) []*Edge {
	return g.edgesFrom(g.adjIn, node)
}

func (g *Graph) edgesFrom(index map[string]map[EdgeKey]struct{}, node string) []*Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	keys := index[node]
	out := make([]*Edge, 0, len(keys))
	for k := range keys {
		if e, ok := g.edges[k]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	return len(g.edges)
}

// Clone returns a deep copy: independent node set, edge map, and adjacency
// indexes. Mutating the clone (e.g. a solver adjusting residual capacity on
// a copy) never affects the source graph.
func (g *Graph) Clone() *Graph {
	out := New()
	out.compact = g.compact

	g.muNode.RLock()
	for id := range g.nodes {
		out.nodes[id] = struct{}{}
		out.adjOut[id] = make(map[EdgeKey]struct{})
		out.adjIn[id] = make(map[EdgeKey]struct{})
	}
	g.muNode.RUnlock()

	g.muEdge.RLock()
	for k, e := range g.edges {
		var attrs map[string]interface{}
		if e.Attrs != nil {
			attrs = make(map[string]interface{}, len(e.Attrs))
			for ak, av := range e.Attrs {
				attrs[ak] = av
			}
		}
		ne := &Edge{Key: e.Key, From: e.From, To: e.To, Capacity: e.Capacity, Cost: e.Cost, Attrs: attrs}
		out.edges[k] = ne
		out.adjOut[ne.From][k] = struct{}{}
		out.adjIn[ne.To][k] = struct{}{}
	}
	out.nextKey = g.nextKey
	g.muEdge.RUnlock()

	return out
}
