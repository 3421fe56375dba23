package pathengine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/multigraph"
	"github.com/networmix/netgraph/pathengine"
)

func buildDiamond(t *testing.T) *multigraph.Graph {
	t.Helper()
	g := multigraph.New(multigraph.WithCompact())
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddNode(n))
	}
	_, err := g.AddEdge("A", "B", "", 3, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "D", "", 3, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", "", 3, 2, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("C", "D", "", 3, 2, nil)
	require.NoError(t, err)
	return g
}

func TestSPFShortestCost(t *testing.T) {
	g := buildDiamond(t)
	cost, pred, err := pathengine.SPF(g, "A", pathengine.AllMinCost, true)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cost["D"])
	assert.NotEmpty(t, pred["D"])
}

func TestSPFUnreachable(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("Z"))
	cost, _, err := pathengine.SPF(g, "A", pathengine.AllMinCost, true)
	require.NoError(t, err)
	assert.True(t, math.IsInf(cost["Z"], 1))
}

func TestSPFSourceNotFound(t *testing.T) {
	g := multigraph.New()
	_, _, err := pathengine.SPF(g, "ghost", pathengine.AllMinCost, true)
	assert.ErrorIs(t, err, pathengine.ErrSourceNotFound)
}

func TestResolveToPathsMultipath(t *testing.T) {
	g := multigraph.New(multigraph.WithCompact())
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	_, err := g.AddEdge("A", "B", "", 5, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", "", 5, 1, nil)
	require.NoError(t, err)

	cost, pred, err := pathengine.SPF(g, "A", pathengine.AllMinCost, true)
	require.NoError(t, err)

	paths := pathengine.ResolveToPaths("A", "B", pred, cost, false)
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Hops[1].Keys, 2, "both parallel arcs should be recorded on a single hop")

	split := pathengine.ResolveToPaths("A", "B", pred, cost, true)
	assert.Len(t, split, 2, "splitParallel expands the bundle into distinct paths")
}

func TestResolveToPathsDistinctPredecessorBranches(t *testing.T) {
	g := multigraph.New(multigraph.WithCompact())
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddNode(n))
	}
	_, err := g.AddEdge("A", "B", "", 5, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "D", "", 5, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", "", 5, 1, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("C", "D", "", 5, 1, nil)
	require.NoError(t, err)

	cost, pred, err := pathengine.SPF(g, "A", pathengine.AllMinCost, true)
	require.NoError(t, err)

	paths := pathengine.ResolveToPaths("A", "D", pred, cost, false)
	require.Len(t, paths, 2, "two disjoint equal-cost routes must yield two node sequences")
	seen := make(map[string]bool, 2)
	for _, p := range paths {
		require.Len(t, p.Hops, 3)
		assert.Equal(t, 2.0, p.Cost)
		seen[p.Hops[1].Node] = true
	}
	assert.True(t, seen["B"])
	assert.True(t, seen["C"])
}

func TestSPFRejectsEmptySource(t *testing.T) {
	_, pred, err := pathengine.SPF(multigraph.New(), "", pathengine.AllMinCost, true)
	assert.ErrorIs(t, err, pathengine.ErrEmptySource)
	assert.Nil(t, pred)
}

func TestKShortestPathsBoundedByMaxK(t *testing.T) {
	g := buildDiamond(t)
	paths := pathengine.KShortestPaths(g, "A", "D", pathengine.AllMinCost, 2, math.Inf(1), nil, false)
	require.Len(t, paths, 2)
	assert.LessOrEqual(t, paths[0].Cost, paths[1].Cost)
}
