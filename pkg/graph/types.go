// Package graph implements the in-memory labeled multigraph used by every
// analysis in this module.
//
// Nodes and edges are stored in arena slices owned by the Graph and are
// addressed by stable integer handles. Edges refer to their endpoints by
// handle, so there are no ownership cycles between graphs, nodes and edges.
// Node and Edge are small value views pairing a handle with its graph.
//
// Topology is expected to be fully built before any analysis runs and is
// treated as read-only afterwards; concurrent readers are safe. The only
// state mutated during analysis is the memoization (per-node sphere maps and
// the per-graph diameter cache), which carries its own locking.
package graph

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Direction selects which incident edges of a node are considered.
type Direction int

const (
	In  Direction = iota // edges whose target is the node
	Out                  // edges whose source is the node
	Any                  // all incident edges
)

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case In:
		return "IN"
	case Out:
		return "OUT"
	case Any:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// Directedness decides whether traversals follow only outgoing edges or
// edges in both directions.
type Directedness int

const (
	Directed Directedness = iota
	Undirected
)

// String returns the string representation of a directedness
func (d Directedness) String() string {
	switch d {
	case Directed:
		return "directed"
	case Undirected:
		return "undirected"
	default:
		return "unknown"
	}
}

// TraversalDirection is OUT for directed traversal and ANY otherwise.
func (d Directedness) TraversalDirection() Direction {
	if d == Directed {
		return Out
	}
	return Any
}

// ParseDirectedness converts a string to a Directedness.
// Anything other than "undirected" is treated as directed.
func ParseDirectedness(s string) Directedness {
	switch s {
	case "undirected", "UNDIRECTED", "Undirected":
		return Undirected
	default:
		return Directed
	}
}

// Unbounded is the max depth used for full sphere decompositions.
const Unbounded = math.MaxInt

// NodeHandle addresses a node inside its graph's arena.
type NodeHandle int32

// EdgeHandle addresses an edge inside its graph's arena.
type EdgeHandle int32

type nodeRecord struct {
	id    string
	attrs map[string]string
	edges []EdgeHandle // incident edges, both directions, each edge once
	memo  *sphereMemo
}

type edgeRecord struct {
	source  NodeHandle
	target  NodeHandle
	attrs   map[string]string
	weight  float64
	removed bool
}

// typeNameKey indexes SuperLemma nodes by (language, part of speech, name).
type typeNameKey struct {
	language string
	pos      string
	name     string
}

// Graph is a labeled multigraph with a fixed directedness.
type Graph struct {
	directedness Directedness
	head         string

	nodes     []nodeRecord
	index     map[string]NodeHandle
	edges     []edgeRecord
	liveEdges int

	nodeAttrCounts map[string]map[string]int64
	edgeAttrCounts map[string]map[string]int64
	nodeTypes      map[string]int64
	edgeTypes      map[string]int64
	typeNameIndex  map[typeNameKey]NodeHandle

	// generation changes on every topology mutation; memoized results
	// computed under an older generation are stale.
	generation atomic.Uint64

	diameterMu     sync.Mutex
	diameters      map[Directedness]diameterEntry
	diameterFlight singleflight.Group

	sphereHits   atomic.Int64
	sphereMisses atomic.Int64
}

type diameterEntry struct {
	value      int
	generation uint64
}

// CacheStats reports memoization activity on a graph.
type CacheStats struct {
	SphereHits   int64
	SphereMisses int64
}

// Node is a view of a node in a graph. The zero value is invalid.
type Node struct {
	g *Graph
	h NodeHandle
}

// Edge is a view of an edge in a graph. The zero value is invalid.
type Edge struct {
	g *Graph
	h EdgeHandle
}

// SuperLemmaType is the node Type value indexed by NodeByTypeAndName.
const SuperLemmaType = "SuperLemma"

// Well-known attribute keys.
const (
	AttrType     = "Type"
	AttrLabel    = "Label"
	AttrName     = "Name"
	AttrPOS      = "POS"
	AttrLanguage = "Language"
)
