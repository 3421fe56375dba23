package network

import "github.com/networmix/netgraph/multigraph"

// ToStrictMultiDigraph materializes a working multigraph.Graph from every
// node and link in the network (none hidden). See BuildWorkingGraph for the
// exclusion-aware variant used by networkview.
func (n *Network) ToStrictMultiDigraph(addReverse, compact bool) (*multigraph.Graph, error) {
	return n.BuildWorkingGraph(addReverse, compact, nil, nil)
}

// BuildWorkingGraph materializes a working graph from the subset of nodes
// and links not present in excludedNodes/excludedLinks and not individually
// disabled. It is the shared construction routine behind both
// Network.ToStrictMultiDigraph and networkview.NetworkView's working-graph
// cache.
//
// Steps:
//  1. Add every visible node.
//  2. For each visible link whose endpoints are both visible, add the
//     forward edge; when addReverse is set, also add a reverse edge with
//     identical capacity and cost (modeling bidirectional links declared
//     only once).
//  3. In compact mode, edge keys are minted monotonically and only
//     capacity/cost travel with the edge; otherwise the link id is the key
//     and the link's attribute bag is preserved.
func (n *Network) BuildWorkingGraph(addReverse, compact bool, excludedNodes, excludedLinks map[string]struct{}) (*multigraph.Graph, error) {
	var opts []multigraph.Option
	if compact {
		opts = append(opts, multigraph.WithCompact())
	}
	g := multigraph.New(opts...)

	nodes := n.Nodes()
	visible := make(map[string]bool, len(nodes))
	for name, node := range nodes {
		if node.Disabled {
			continue
		}
		if excludedNodes != nil {
			if _, hidden := excludedNodes[name]; hidden {
				continue
			}
		}
		visible[name] = true
		if err := g.AddNode(name); err != nil {
			return nil, err
		}
	}

	links := n.Links()
	for id, link := range links {
		if link.Disabled {
			continue
		}
		if excludedLinks != nil {
			if _, hidden := excludedLinks[id]; hidden {
				continue
			}
		}
		if !visible[link.Source] || !visible[link.Target] {
			continue
		}

		key := id
		var attrs map[string]interface{}
		if !compact && link.Attrs != nil {
			attrs = make(map[string]interface{}, len(link.Attrs))
			for k, v := range link.Attrs {
				attrs[k] = v
			}
		}
		if _, err := g.AddEdge(link.Source, link.Target, key, link.Capacity, link.Cost, attrs); err != nil {
			return nil, err
		}
		if addReverse {
			revKey := id + "|rev"
			if _, err := g.AddEdge(link.Target, link.Source, revKey, link.Capacity, link.Cost, attrs); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
