package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/network"
)

func buildDiamond(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, n.AddNode(&network.Node{Name: name}))
	}
	links := []struct {
		src, dst      string
		capacity, cost float64
	}{
		{"A", "B", 3, 1},
		{"B", "D", 3, 1},
		{"A", "C", 3, 2},
		{"C", "D", 3, 2},
	}
	for _, l := range links {
		link := network.NewLink(l.src, l.dst, l.capacity, l.cost, nil)
		require.NoError(t, n.AddLink(link))
	}
	return n
}

func TestAddLinkRejectsUnknownEndpoint(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "A"}))
	link := network.NewLink("A", "ghost", 1, 0, nil)
	err := n.AddLink(link)
	assert.ErrorIs(t, err, network.ErrUnknownNode)
}

func TestAddNodeRejectsDuplicate(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "A"}))
	err := n.AddNode(&network.Node{Name: "A"})
	assert.ErrorIs(t, err, network.ErrDuplicateNode)
}

func TestSelectNodeGroupsByRegex(t *testing.T) {
	n := buildDiamond(t)
	groups, err := n.SelectNodeGroupsByPath("A")
	require.NoError(t, err)
	require.Contains(t, groups, "A")
	assert.Len(t, groups["A"], 1)
}

func TestSelectNodeGroupsByAttrDirective(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "r1", Attrs: map[string]interface{}{"role": "leaf"}}))
	require.NoError(t, n.AddNode(&network.Node{Name: "r2", Attrs: map[string]interface{}{"role": "leaf"}}))
	require.NoError(t, n.AddNode(&network.Node{Name: "r3", Attrs: map[string]interface{}{"role": "spine"}}))

	groups, err := n.SelectNodeGroupsByPath("attr:role")
	require.NoError(t, err)
	assert.Len(t, groups["leaf"], 2)
	assert.Len(t, groups["spine"], 1)
}

func TestSelectNodeGroupsByRegexKeepsEmptyCapture(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "a"}))
	require.NoError(t, n.AddNode(&network.Node{Name: "ax"}))

	groups, err := n.SelectNodeGroupsByPath(`(a)(x?)`)
	require.NoError(t, err)
	require.Contains(t, groups, "a|")
	require.Contains(t, groups, "a|x")
	assert.Len(t, groups["a|"], 1)
	assert.Len(t, groups["a|x"], 1)
}

func TestSelectNodeGroupsRejectsMalformedAttrDirective(t *testing.T) {
	n := network.New()
	_, err := n.SelectNodeGroupsByPath("attr:9bad")
	assert.ErrorIs(t, err, network.ErrInvalidSelector)
}

func TestDisableRiskGroupCascades(t *testing.T) {
	n := buildDiamond(t)
	require.NoError(t, n.AddRiskGroup(&network.RiskGroup{Name: "rg1"}))
	node, _ := n.GetNode("B")
	node.RiskGroups["rg1"] = struct{}{}

	require.NoError(t, n.DisableRiskGroup("rg1", false))
	node, _ = n.GetNode("B")
	assert.True(t, node.Disabled)

	other, _ := n.GetNode("C")
	assert.False(t, other.Disabled)
}

func TestToStrictMultiDigraphSkipsDisabled(t *testing.T) {
	n := buildDiamond(t)
	n.DisableNode("B")

	g, err := n.ToStrictMultiDigraph(false, true)
	require.NoError(t, err)
	assert.False(t, g.HasNode("B"))
	for _, e := range g.Edges() {
		assert.NotEqual(t, "B", e.From)
		assert.NotEqual(t, "B", e.To)
	}
}

func TestToStrictMultiDigraphAddReverse(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddNode(&network.Node{Name: "A"}))
	require.NoError(t, n.AddNode(&network.Node{Name: "B"}))
	require.NoError(t, n.AddLink(network.NewLink("A", "B", 5, 1, nil)))

	g, err := n.ToStrictMultiDigraph(true, true)
	require.NoError(t, err)
	assert.Len(t, g.OutEdges("A"), 1)
	assert.Len(t, g.OutEdges("B"), 1)
}
