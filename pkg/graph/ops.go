package graph

import (
	"maps"
)

// Copy returns a deep copy: new nodes and edges with the same ids,
// attributes and weights. Memoized results are not carried over.
func (g *Graph) Copy() *Graph {
	out := New(g.directedness)
	out.head = g.head
	for _, rec := range g.nodes {
		// ids are unique in g, so AddNode cannot fail here
		_, _ = out.AddNode(rec.id, maps.Clone(rec.attrs))
	}
	for i := range g.edges {
		rec := g.edges[i]
		if rec.removed {
			continue
		}
		src := Node{g: out, h: rec.source}
		tgt := Node{g: out, h: rec.target}
		_, _ = out.AddWeightedEdge(src, tgt, rec.weight, maps.Clone(rec.attrs))
	}
	return out
}

// CreateNodeFrom adds a copy of a node from another graph (same id and
// attributes, no edges).
func (g *Graph) CreateNodeFrom(n Node) (Node, error) {
	return g.AddNode(n.ID(), maps.Clone(n.Attrs()))
}

// Union merges graphs into a new graph. The first graph is deep-copied;
// nodes of later graphs are added by id when missing, and an edge is added
// only if no edge already links the same pair (ordered when directed,
// unordered when undirected). Repeated unions are idempotent on topology.
// An empty input yields an empty graph.
func Union(graphs []*Graph, d Directedness) *Graph {
	if len(graphs) == 0 {
		return New(d)
	}
	result := graphs[0].Copy()
	dir := d.TraversalDirection()

	for _, other := range graphs[1:] {
		for _, n := range other.Nodes() {
			if !result.HasNode(n.ID()) {
				_, _ = result.CreateNodeFrom(n)
			}
		}
		for _, n := range other.Nodes() {
			resultNode, _ := result.Node(n.ID())
			linked := make(map[string]struct{})
			for _, l := range resultNode.LinkedNodes(dir) {
				linked[l.ID()] = struct{}{}
			}
			for _, e := range n.Edges(dir) {
				peerID := e.Other(n).ID()
				if _, ok := linked[peerID]; ok {
					continue
				}
				peer, _ := result.Node(peerID)
				_, _ = result.AddWeightedEdge(resultNode, peer, e.Weight(), maps.Clone(e.Attrs()))
				linked[peerID] = struct{}{}
			}
		}
	}
	return result
}

// EqualDirected reports whether both graphs have the same node ids, the
// same attributes per node, and the same outgoing edges per node where each
// edge of g is matched by an edge of other with equal endpoints and
// attributes.
func (g *Graph) EqualDirected(other *Graph) bool {
	if g.NodeCount() != other.NodeCount() {
		return false
	}
	for _, n1 := range g.Nodes() {
		n2, ok := other.Node(n1.ID())
		if !ok {
			return false
		}
		if !maps.Equal(n1.Attrs(), n2.Attrs()) {
			return false
		}
		out1 := n1.Edges(Out)
		out2 := n2.Edges(Out)
		if len(out1) != len(out2) {
			return false
		}
		for _, e1 := range out1 {
			if !hasMatchingEdge(e1, out2) {
				return false
			}
		}
	}
	return true
}

func hasMatchingEdge(e Edge, candidates []Edge) bool {
	for _, c := range candidates {
		if c.Source().ID() == e.Source().ID() &&
			c.Target().ID() == e.Target().ID() &&
			maps.Equal(c.Attrs(), e.Attrs()) {
			return true
		}
	}
	return false
}

// SortedIDPair returns a canonical key for an unordered id pair.
func SortedIDPair(a, b string) string {
	if a <= b {
		return a + "\t" + b
	}
	return b + "\t" + a
}
