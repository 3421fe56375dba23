package failurepolicy

import "github.com/networmix/netgraph/network"

// expandRiskGroupChildren mutates failedGroups in place to include every
// descendant of each already-failed risk group, per spec §4.7's
// fail_risk_group_children flag.
func expandRiskGroupChildren(net *network.Network, failedGroups map[string]struct{}) {
	all := net.RiskGroups()
	queue := make([]string, 0, len(failedGroups))
	for name := range failedGroups {
		queue = append(queue, name)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		rg, ok := all[name]
		if !ok {
			continue
		}
		for _, child := range rg.Children {
			if _, seen := failedGroups[child]; seen {
				continue
			}
			failedGroups[child] = struct{}{}
			queue = append(queue, child)
		}
	}
}

// expandByRiskGroupMembership performs a fixed-point expansion of
// failedNodes/failedLinks: starting from every node/link directly failed
// plus every node/link belonging to a failed risk group, it repeatedly
// pulls in any other node/link sharing a risk group with something already
// failed, mirroring the original _expand_shared_risk_groups fixed point but
// over the set-valued RiskGroups membership carried by Node/Link.
func expandByRiskGroupMembership(nodeEntities, linkEntities []entity, failedGroups map[string]struct{}, failedNodes, failedLinks map[string]struct{}) {
	groupMembers := make(map[string][]entity)
	memberKind := make(map[string]bool) // true = node, false = link
	index := func(es []entity, isNode bool) {
		for _, e := range es {
			memberKind[e.id] = isNode
			for g := range e.riskGroups {
				groupMembers[g] = append(groupMembers[g], e)
			}
		}
	}
	index(nodeEntities, true)
	index(linkEntities, false)

	markFailed := func(e entity) bool {
		if memberKind[e.id] {
			if _, ok := failedNodes[e.id]; ok {
				return false
			}
			failedNodes[e.id] = struct{}{}
		} else {
			if _, ok := failedLinks[e.id]; ok {
				return false
			}
			failedLinks[e.id] = struct{}{}
		}
		return true
	}

	var queue []entity
	seed := func(es []entity) {
		for _, e := range es {
			if failedEntity(e, memberKind, failedNodes, failedLinks) {
				queue = append(queue, e)
				continue
			}
			for g := range e.riskGroups {
				if _, failed := failedGroups[g]; failed {
					markFailed(e)
					queue = append(queue, e)
					break
				}
			}
		}
	}
	seed(nodeEntities)
	seed(linkEntities)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for g := range cur.riskGroups {
			for _, other := range groupMembers[g] {
				if markFailed(other) {
					queue = append(queue, other)
				}
			}
		}
	}
}

func failedEntity(e entity, memberKind map[string]bool, failedNodes, failedLinks map[string]struct{}) bool {
	if memberKind[e.id] {
		_, ok := failedNodes[e.id]
		return ok
	}
	_, ok := failedLinks[e.id]
	return ok
}
