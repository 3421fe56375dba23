// Package network implements the Node/Link/RiskGroup domain model over a
// StrictMultiDigraph working graph, plus selection of node groups by regex
// or attribute directive.
package network

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyName indicates a node or risk-group was given an empty name.
	ErrEmptyName = errors.New("network: name is empty")

	// ErrDuplicateNode indicates a node name collided with an existing one.
	ErrDuplicateNode = errors.New("network: duplicate node name")

	// ErrUnknownNode indicates a link referenced a node name that does not exist.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrDuplicateLink indicates a link id collided with an existing one.
	ErrDuplicateLink = errors.New("network: duplicate link id")

	// ErrUnknownRiskGroup indicates a reference to a risk group that was never added.
	ErrUnknownRiskGroup = errors.New("network: unknown risk group")

	// ErrCyclicRiskGroups indicates the risk-group parent/child tree contains a cycle.
	ErrCyclicRiskGroups = errors.New("network: risk-group hierarchy is cyclic")
)

// Node is a named vertex in the topology. Created once and mutated only by
// scenario loading and explicit enable/disable operations.
type Node struct {
	Name       string
	Disabled   bool
	RiskGroups map[string]struct{}
	Attrs      map[string]interface{}
}

// Link is a directed edge from Source to Target carrying capacity and cost.
// ID is assigned once at construction as "{source}|{target}|{uuid}".
type Link struct {
	ID         string
	Source     string
	Target     string
	Capacity   float64
	Cost       float64
	Disabled   bool
	RiskGroups map[string]struct{}
	Attrs      map[string]interface{}
}

// NewLink constructs a Link with a freshly minted identifier. Capacity and
// cost are not validated here, nor by Network.AddLink, which checks only
// that both endpoints exist and the id is unique; a negative capacity or
// cost is rejected later, when a working graph is built from the link.
func NewLink(source, target string, capacity, cost float64, attrs map[string]interface{}) *Link {
	return &Link{
		ID:         fmt.Sprintf("%s|%s|%s", source, target, uuid.New().String()),
		Source:     source,
		Target:     target,
		Capacity:   capacity,
		Cost:       cost,
		RiskGroups: make(map[string]struct{}),
		Attrs:      attrs,
	}
}

// RiskGroup is a named failure domain with optional nested children. Not a
// first-class entity in the flow/path engines; only its effect on
// node/link `disabled` sets matters to the core.
type RiskGroup struct {
	Name     string
	Children []string
	Attrs    map[string]interface{}
}

// Network is a container of nodes, links, and risk groups. Node names are
// unique; link ids are unique. muNode and muLink guard their respective
// maps independently, mirroring the teacher's per-concern locking.
type Network struct {
	muNode sync.RWMutex
	muLink sync.RWMutex
	muRisk sync.RWMutex

	nodes      map[string]*Node
	links      map[string]*Link
	riskGroups map[string]*RiskGroup
	Attrs      map[string]interface{}
}

// New creates an empty Network.
func New() *Network {
	return &Network{
		nodes:      make(map[string]*Node),
		links:      make(map[string]*Link),
		riskGroups: make(map[string]*RiskGroup),
		Attrs:      make(map[string]interface{}),
	}
}
