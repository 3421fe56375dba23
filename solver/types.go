// Package solver implements the solver wrappers (spec component F): binding
// source/sink selectors to the path and max-flow engines, building working
// graphs with pseudo source/sink attached to selected groups, and
// implementing combine/pairwise aggregation with overlap handling.
package solver

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/networmix/netgraph/multigraph"
	"github.com/networmix/netgraph/network"
)

// Sentinel errors for solver operations.
var (
	// ErrNoSourceMatch indicates sourcePath matched no node group.
	ErrNoSourceMatch = errors.New("solver: no source nodes matched")

	// ErrNoSinkMatch indicates sinkPath matched no node group.
	ErrNoSinkMatch = errors.New("solver: no sink nodes matched")

	// ErrInvalidMode indicates mode was neither "combine" nor "pairwise".
	ErrInvalidMode = errors.New("solver: invalid mode")
)

const (
	// ModeCombine unions every matched group into a single pseudo source/sink.
	ModeCombine = "combine"
	// ModePairwise runs one independent computation per (source group, sink group) pair.
	ModePairwise = "pairwise"
)

const pseudoSource = "__S__"
const pseudoSink = "__T__"
const pseudoCapacity = math.MaxFloat64

// Context is satisfied by both network.Network and networkview.NetworkView:
// anything that can select node groups by path and materialize a working
// graph, per spec §4.6.
type Context interface {
	SelectNodeGroupsByPath(path string) (map[string][]*network.Node, error)
	WorkingGraph(addReverse, compact bool) (*multigraph.Graph, error)
}

// Pair keys a solver result by its (source-label, sink-label) pair.
type Pair struct {
	Source string
	Sink   string
}

func (p Pair) String() string { return p.Source + "->" + p.Sink }

// group is one named collection of nodes selected for one side of a pair.
// It may include disabled nodes; activeNodes filters them where needed.
type group struct {
	label string
	nodes []*network.Node
}

func activeNodes(nodes []*network.Node) []*network.Node {
	out := make([]*network.Node, 0, len(nodes))
	for _, n := range nodes {
		if !n.Disabled {
			out = append(out, n)
		}
	}
	return out
}

func nodeNameSet(nodes []*network.Node) map[string]struct{} {
	out := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		out[n.Name] = struct{}{}
	}
	return out
}

func overlaps(a, b []*network.Node) bool {
	as := nodeNameSet(a)
	for _, n := range b {
		if _, ok := as[n.Name]; ok {
			return true
		}
	}
	return false
}

// resolveGroups selects and sorts source/sink groups for sourcePath/sinkPath,
// validating mode and non-empty matches.
func resolveGroups(ctx Context, sourcePath, sinkPath, mode string) ([]group, []group, error) {
	if mode != ModeCombine && mode != ModePairwise {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	srcRaw, err := ctx.SelectNodeGroupsByPath(sourcePath)
	if err != nil {
		return nil, nil, err
	}
	snkRaw, err := ctx.SelectNodeGroupsByPath(sinkPath)
	if err != nil {
		return nil, nil, err
	}
	if len(srcRaw) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoSourceMatch, sourcePath)
	}
	if len(snkRaw) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoSinkMatch, sinkPath)
	}
	return toSortedGroups(srcRaw), toSortedGroups(snkRaw), nil
}

func toSortedGroups(raw map[string][]*network.Node) []group {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([]group, 0, len(labels))
	for _, label := range labels {
		out = append(out, group{label: label, nodes: raw[label]})
	}
	return out
}

func combinedGroup(groups []group) group {
	labels := make([]string, len(groups))
	var nodes []*network.Node
	for i, g := range groups {
		labels[i] = g.label
		nodes = append(nodes, g.nodes...)
	}
	sort.Strings(labels)
	return group{label: strings.Join(labels, "|"), nodes: nodes}
}

// buildPseudoGraph materializes a working graph from ctx and attaches pseudo
// source/sink nodes wired to the active members of src/snk with infinite
// capacity, zero-cost edges, per spec §4.6 steps 1-4.
func buildPseudoGraph(ctx Context, src, snk group) (*multigraph.Graph, []string, error) {
	g, err := ctx.WorkingGraph(true, true)
	if err != nil {
		return nil, nil, err
	}
	g = g.Clone()

	if err := g.AddNode(pseudoSource); err != nil {
		return nil, nil, err
	}
	if err := g.AddNode(pseudoSink); err != nil {
		return nil, nil, err
	}

	var pseudoKeys []string
	for _, n := range activeNodes(src.nodes) {
		if !g.HasNode(n.Name) {
			continue
		}
		k, err := g.AddEdge(pseudoSource, n.Name, "", pseudoCapacity, 0, nil)
		if err != nil {
			return nil, nil, err
		}
		pseudoKeys = append(pseudoKeys, k)
	}
	for _, n := range activeNodes(snk.nodes) {
		if !g.HasNode(n.Name) {
			continue
		}
		k, err := g.AddEdge(n.Name, pseudoSink, "", pseudoCapacity, 0, nil)
		if err != nil {
			return nil, nil, err
		}
		pseudoKeys = append(pseudoKeys, k)
	}
	return g, pseudoKeys, nil
}
