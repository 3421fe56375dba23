package multigraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/multigraph"
)

func TestAddNodeAndEdge(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	assert.True(t, g.HasNode("A"))
	assert.False(t, g.HasNode("Z"))

	key, err := g.AddEdge("A", "B", "", 10, 1, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	e, err := g.Edge(key)
	require.NoError(t, err)
	assert.Equal(t, "A", e.From)
	assert.Equal(t, "B", e.To)
	assert.Equal(t, 10.0, e.Capacity)
}

func TestAddEdgeRejectsUnknownEndpoints(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	_, err := g.AddEdge("A", "B", "", 1, 0, nil)
	assert.ErrorIs(t, err, multigraph.ErrNodeNotFound)
}

func TestAddEdgeRejectsNegativeCapacity(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	_, err := g.AddEdge("A", "B", "", -1, 0, nil)
	assert.ErrorIs(t, err, multigraph.ErrNegativeCapacity)
}

func TestParallelEdgesAndCompactMode(t *testing.T) {
	g := multigraph.New(multigraph.WithCompact())
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	k1, err := g.AddEdge("A", "B", "ignored", 5, 1, map[string]interface{}{"x": 1})
	require.NoError(t, err)
	k2, err := g.AddEdge("A", "B", "ignored", 5, 1, nil)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	e1, err := g.Edge(k1)
	require.NoError(t, err)
	assert.Nil(t, e1.Attrs, "compact mode must strip attrs")

	out := g.OutEdges("A")
	assert.Len(t, out, 2)
}

func TestDuplicateKeyRejectedInNonCompactMode(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	_, err := g.AddEdge("A", "B", "link1", 1, 0, nil)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", "link1", 1, 0, nil)
	assert.ErrorIs(t, err, multigraph.ErrDuplicateKey)
}

func TestCloneIsIndependent(t *testing.T) {
	g := multigraph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))
	key, err := g.AddEdge("A", "B", "e1", 10, 1, nil)
	require.NoError(t, err)

	clone := g.Clone()
	require.NoError(t, clone.RemoveEdge(key))

	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 0, clone.EdgeCount())
}

func TestRemoveEdgeNotFound(t *testing.T) {
	g := multigraph.New()
	err := g.RemoveEdge("missing")
	assert.ErrorIs(t, err, multigraph.ErrEdgeNotFound)
}
