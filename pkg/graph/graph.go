package graph

import (
	"maps"
)

// New creates an empty graph with the given directedness.
func New(directedness Directedness) *Graph {
	return &Graph{
		directedness:   directedness,
		index:          make(map[string]NodeHandle),
		nodeAttrCounts: make(map[string]map[string]int64),
		edgeAttrCounts: make(map[string]map[string]int64),
		nodeTypes:      make(map[string]int64),
		edgeTypes:      make(map[string]int64),
		typeNameIndex:  make(map[typeNameKey]NodeHandle),
		diameters:      make(map[Directedness]diameterEntry),
	}
}

// Directedness returns the mode the graph was constructed with.
func (g *Graph) Directedness() Directedness {
	return g.directedness
}

// Head returns the opaque preamble carried from/to the text encodings.
func (g *Graph) Head() string {
	return g.head
}

// SetHead sets the opaque preamble.
func (g *Graph) SetHead(head string) {
	g.head = head
}

// AddNode creates a node with the given id and attributes. The attribute
// map is owned by the graph afterwards.
func (g *Graph) AddNode(id string, attrs map[string]string) (Node, error) {
	if id == "" {
		return Node{}, NewError("AddNode").Node(id).Cause(ErrInvalidID).Err()
	}
	if _, exists := g.index[id]; exists {
		return Node{}, NewError("AddNode").Node(id).Cause(ErrDuplicateNode).Err()
	}
	if attrs == nil {
		attrs = make(map[string]string)
	}

	h := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, nodeRecord{
		id:    id,
		attrs: attrs,
		memo:  &sphereMemo{},
	})
	g.index[id] = h

	countAttributes(g.nodeAttrCounts, attrs)
	if t := attrs[AttrType]; t != "" {
		g.nodeTypes[t]++
		if t == SuperLemmaType {
			lang, okL := attrs[AttrLanguage]
			pos, okP := attrs[AttrPOS]
			name, okN := attrs[AttrName]
			if okL && okP && okN {
				g.typeNameIndex[typeNameKey{language: lang, pos: pos, name: name}] = h
			}
		}
	}

	g.touch()
	return Node{g: g, h: h}, nil
}

// AddEdge connects source to target. Both nodes must belong to g.
func (g *Graph) AddEdge(source, target Node, attrs map[string]string) (Edge, error) {
	return g.AddWeightedEdge(source, target, 0, attrs)
}

// AddWeightedEdge connects source to target and records a similarity weight.
func (g *Graph) AddWeightedEdge(source, target Node, weight float64, attrs map[string]string) (Edge, error) {
	if !g.owns(source) {
		return Edge{}, NodeNotFoundError("AddEdge", source.safeID())
	}
	if !g.owns(target) {
		return Edge{}, NodeNotFoundError("AddEdge", target.safeID())
	}
	if attrs == nil {
		attrs = make(map[string]string)
	}

	h := EdgeHandle(len(g.edges))
	g.edges = append(g.edges, edgeRecord{
		source: source.h,
		target: target.h,
		attrs:  attrs,
		weight: weight,
	})
	g.nodes[source.h].edges = append(g.nodes[source.h].edges, h)
	if target.h != source.h {
		g.nodes[target.h].edges = append(g.nodes[target.h].edges, h)
	}
	g.liveEdges++

	countAttributes(g.edgeAttrCounts, attrs)
	if t := attrs[AttrType]; t != "" {
		g.edgeTypes[t]++
	}

	g.touch()
	return Edge{g: g, h: h}, nil
}

// AddEdgeByID connects the nodes with the given ids.
func (g *Graph) AddEdgeByID(sourceID, targetID string, attrs map[string]string) (Edge, error) {
	source, ok := g.Node(sourceID)
	if !ok {
		return Edge{}, NodeNotFoundError("AddEdge", sourceID)
	}
	target, ok := g.Node(targetID)
	if !ok {
		return Edge{}, NodeNotFoundError("AddEdge", targetID)
	}
	return g.AddEdge(source, target, attrs)
}

// RemoveEdge detaches the edge from both endpoints.
func (g *Graph) RemoveEdge(e Edge) error {
	if e.g != g || int(e.h) < 0 || int(e.h) >= len(g.edges) || g.edges[e.h].removed {
		return NewError("RemoveEdge").Edge().Cause(ErrEdgeNotFound).Err()
	}
	rec := &g.edges[e.h]
	rec.removed = true
	g.nodes[rec.source].edges = removeHandle(g.nodes[rec.source].edges, e.h)
	if rec.target != rec.source {
		g.nodes[rec.target].edges = removeHandle(g.nodes[rec.target].edges, e.h)
	}
	g.liveEdges--
	g.touch()
	return nil
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	h, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return Node{g: g, h: h}, true
}

// HasNode reports whether a node with the id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = Node{g: g, h: NodeHandle(i)}
	}
	return out
}

// NodeIDs returns the set of node ids.
func (g *Graph) NodeIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(g.nodes))
	for id := range g.index {
		out[id] = struct{}{}
	}
	return out
}

// Edges returns every live edge in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.liveEdges)
	for i := range g.edges {
		if !g.edges[i].removed {
			out = append(out, Edge{g: g, h: EdgeHandle(i)})
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	return g.liveEdges
}

// NodeByTypeAndName returns the SuperLemma node indexed under the triple.
func (g *Graph) NodeByTypeAndName(language, pos, name string) (Node, bool) {
	h, ok := g.typeNameIndex[typeNameKey{language: language, pos: pos, name: name}]
	if !ok {
		return Node{}, false
	}
	return Node{g: g, h: h}, true
}

// NodeAttributeCounts returns attribute name -> value -> occurrences over all
// nodes. The returned map must not be modified.
func (g *Graph) NodeAttributeCounts() map[string]map[string]int64 {
	return g.nodeAttrCounts
}

// EdgeAttributeCounts is NodeAttributeCounts for edges.
func (g *Graph) EdgeAttributeCounts() map[string]map[string]int64 {
	return g.edgeAttrCounts
}

// NodeTypes returns the count of nodes per non-empty Type attribute.
func (g *Graph) NodeTypes() map[string]int64 {
	return maps.Clone(g.nodeTypes)
}

// EdgeTypes returns the count of edges per non-empty Type attribute.
func (g *Graph) EdgeTypes() map[string]int64 {
	return maps.Clone(g.edgeTypes)
}

// CacheStats returns sphere memo hit/miss counters.
func (g *Graph) CacheStats() CacheStats {
	return CacheStats{
		SphereHits:   g.sphereHits.Load(),
		SphereMisses: g.sphereMisses.Load(),
	}
}

func (g *Graph) owns(n Node) bool {
	return n.g == g && int(n.h) >= 0 && int(n.h) < len(g.nodes)
}

func (g *Graph) touch() {
	g.generation.Add(1)
}

func countAttributes(table map[string]map[string]int64, attrs map[string]string) {
	for k, v := range attrs {
		counts, ok := table[k]
		if !ok {
			counts = make(map[string]int64)
			table[k] = counts
		}
		counts[v]++
	}
}

func removeHandle(hs []EdgeHandle, h EdgeHandle) []EdgeHandle {
	for i, x := range hs {
		if x == h {
			last := len(hs) - 1
			hs[i] = hs[last]
			return hs[:last]
		}
	}
	return hs
}

// ID returns the node's identifier.
func (n Node) ID() string {
	return n.g.nodes[n.h].id
}

// Handle returns the arena handle of the node.
func (n Node) Handle() NodeHandle {
	return n.h
}

// Graph returns the graph the node belongs to.
func (n Node) Graph() *Graph {
	return n.g
}

// Valid reports whether the view refers to a node.
func (n Node) Valid() bool {
	return n.g != nil
}

// Attrs returns the attribute map. It must not be modified.
func (n Node) Attrs() map[string]string {
	return n.g.nodes[n.h].attrs
}

// Attr returns the attribute value or def when absent.
func (n Node) Attr(key, def string) string {
	if v, ok := n.g.nodes[n.h].attrs[key]; ok {
		return v
	}
	return def
}

// Degree returns the number of incident edges.
func (n Node) Degree() int {
	return len(n.g.nodes[n.h].edges)
}

func (n Node) safeID() string {
	if n.g == nil || int(n.h) < 0 || int(n.h) >= len(n.g.nodes) {
		return "<invalid>"
	}
	return n.ID()
}

// Handle returns the arena handle of the edge.
func (e Edge) Handle() EdgeHandle {
	return e.h
}

// Source returns the source node.
func (e Edge) Source() Node {
	return Node{g: e.g, h: e.g.edges[e.h].source}
}

// Target returns the target node.
func (e Edge) Target() Node {
	return Node{g: e.g, h: e.g.edges[e.h].target}
}

// Other returns the endpoint opposite to n.
func (e Edge) Other(n Node) Node {
	rec := e.g.edges[e.h]
	if rec.source == n.h {
		return Node{g: e.g, h: rec.target}
	}
	return Node{g: e.g, h: rec.source}
}

// Attrs returns the attribute map. It must not be modified.
func (e Edge) Attrs() map[string]string {
	return e.g.edges[e.h].attrs
}

// Attr returns the attribute value or def when absent.
func (e Edge) Attr(key, def string) string {
	if v, ok := e.g.edges[e.h].attrs[key]; ok {
		return v
	}
	return def
}

// Weight returns the similarity weight loaded with the edge (0 by default).
func (e Edge) Weight() float64 {
	return e.g.edges[e.h].weight
}
