package graph

// Edges returns the incident edges of n in the given direction.
// IN keeps edges targeting n, OUT keeps edges leaving n, ANY keeps all.
func (n Node) Edges(dir Direction) []Edge {
	rec := n.g.nodes[n.h]
	out := make([]Edge, 0, len(rec.edges))
	for _, eh := range rec.edges {
		if n.g.matches(n.h, eh, dir) {
			out = append(out, Edge{g: n.g, h: eh})
		}
	}
	return out
}

// LinkedNodes returns the distinct opposite endpoints of Edges(dir).
func (n Node) LinkedNodes(dir Direction) []Node {
	var out []Node
	seen := make(map[NodeHandle]struct{}, len(n.g.nodes[n.h].edges))
	n.g.forEachNeighbor(n.h, dir, func(other NodeHandle) {
		if _, ok := seen[other]; ok {
			return
		}
		seen[other] = struct{}{}
		out = append(out, Node{g: n.g, h: other})
	})
	return out
}

// FilteredLinkedNodes is LinkedNodes restricted to edges whose attribute
// key equals value. A missing attribute compares as the empty string.
func (n Node) FilteredLinkedNodes(dir Direction, key, value string) []Node {
	var out []Node
	seen := make(map[NodeHandle]struct{})
	for _, eh := range n.g.nodes[n.h].edges {
		if !n.g.matches(n.h, eh, dir) {
			continue
		}
		rec := n.g.edges[eh]
		if rec.attrs[key] != value {
			continue
		}
		other := rec.source
		if other == n.h {
			other = rec.target
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, Node{g: n.g, h: other})
	}
	return out
}

// HasLink reports whether an edge in direction dir connects n to other.
func (n Node) HasLink(dir Direction, other Node) bool {
	if other.g != n.g {
		return false
	}
	found := false
	n.g.forEachNeighbor(n.h, dir, func(h NodeHandle) {
		if h == other.h {
			found = true
		}
	})
	return found
}

// Neighbors calls fn for every opposite endpoint of the incident edges of h
// in direction dir. Endpoints reached through parallel edges are reported
// once per edge; callers doing traversals dedupe with their visited set.
func (g *Graph) Neighbors(h NodeHandle, dir Direction, fn func(NodeHandle)) {
	g.forEachNeighbor(h, dir, fn)
}

// NodeAt returns the view for a handle obtained from this graph.
func (g *Graph) NodeAt(h NodeHandle) Node {
	return Node{g: g, h: h}
}

func (g *Graph) forEachNeighbor(h NodeHandle, dir Direction, fn func(NodeHandle)) {
	for _, eh := range g.nodes[h].edges {
		rec := g.edges[eh]
		switch dir {
		case In:
			if rec.target == h {
				fn(rec.source)
			}
		case Out:
			if rec.source == h {
				fn(rec.target)
			}
		default:
			if rec.source == h {
				fn(rec.target)
			} else {
				fn(rec.source)
			}
		}
	}
}

func (g *Graph) matches(h NodeHandle, eh EdgeHandle, dir Direction) bool {
	rec := g.edges[eh]
	switch dir {
	case In:
		return rec.target == h
	case Out:
		return rec.source == h
	default:
		return true
	}
}
