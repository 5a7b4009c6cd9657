package graph

import (
	"errors"
	"testing"
)

func buildTriangle(t *testing.T, d Directedness) *Graph {
	t.Helper()
	g := New(d)
	for _, id := range []string{"a", "b", "c"} {
		if _, err := g.AddNode(id, map[string]string{AttrType: "Word"}); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", id, err)
		}
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}} {
		if _, err := g.AddEdgeByID(e[0], e[1], map[string]string{AttrType: "next"}); err != nil {
			t.Fatalf("AddEdge(%s,%s) failed: %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddNode_Duplicate(t *testing.T) {
	g := New(Directed)
	if _, err := g.AddNode("x", nil); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}

	_, err := g.AddNode("x", nil)
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("Expected ErrDuplicateNode, got %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("Expected 1 node, got %d", g.NodeCount())
	}
}

func TestAddNode_EmptyID(t *testing.T) {
	g := New(Directed)
	if _, err := g.AddNode("", nil); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected ErrInvalidID, got %v", err)
	}
}

func TestAddEdge_ForeignNode(t *testing.T) {
	g1 := New(Directed)
	g2 := New(Directed)
	a, _ := g1.AddNode("a", nil)
	b, _ := g2.AddNode("b", nil)

	_, err := g1.AddEdge(a, b, nil)
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Expected ErrNodeNotFound, got %v", err)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should report true")
	}

	var gerr *GraphError
	if !errors.As(err, &gerr) {
		t.Fatalf("Expected *GraphError, got %T", err)
	}
	if gerr.ID != "b" {
		t.Errorf("Expected error ID b, got %q", gerr.ID)
	}
}

func TestAddEdgeByID_UnknownNode(t *testing.T) {
	g := New(Directed)
	g.AddNode("a", nil)

	if _, err := g.AddEdgeByID("a", "missing", nil); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
}

func TestEdgeInBothEndpoints(t *testing.T) {
	g := buildTriangle(t, Directed)
	a, _ := g.Node("a")
	b, _ := g.Node("b")

	if len(a.Edges(Any)) != 2 {
		t.Errorf("Expected 2 incident edges on a, got %d", len(a.Edges(Any)))
	}
	if !a.HasLink(Out, b) {
		t.Error("Expected a -> b")
	}
	if !b.HasLink(In, a) {
		t.Error("Expected b <- a")
	}
	if a.HasLink(In, b) {
		t.Error("Did not expect b -> a")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildTriangle(t, Directed)
	a, _ := g.Node("a")
	b, _ := g.Node("b")

	out := a.Edges(Out)
	if len(out) != 1 {
		t.Fatalf("Expected 1 outgoing edge, got %d", len(out))
	}
	if err := g.RemoveEdge(out[0]); err != nil {
		t.Fatalf("RemoveEdge failed: %v", err)
	}

	if a.HasLink(Out, b) {
		t.Error("Edge a -> b should be gone from a")
	}
	if b.HasLink(In, a) {
		t.Error("Edge a -> b should be gone from b")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.EdgeCount())
	}
	if len(g.Edges()) != 2 {
		t.Errorf("Expected Edges() to list 2 edges, got %d", len(g.Edges()))
	}

	if err := g.RemoveEdge(out[0]); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("Expected ErrEdgeNotFound on second removal, got %v", err)
	}
}

func TestSelfLoop(t *testing.T) {
	g := New(Undirected)
	a, _ := g.AddNode("a", nil)
	if _, err := g.AddEdge(a, a, nil); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}

	if a.Degree() != 1 {
		t.Errorf("Expected self-loop to be stored once, degree %d", a.Degree())
	}
	if n := len(a.LinkedNodes(Any)); n != 1 {
		t.Errorf("Expected 1 linked node, got %d", n)
	}
}

func TestAttributeCounts(t *testing.T) {
	g := buildTriangle(t, Directed)

	if got := g.NodeAttributeCounts()[AttrType]["Word"]; got != 3 {
		t.Errorf("Expected 3 nodes of type Word, got %d", got)
	}
	if got := g.EdgeAttributeCounts()[AttrType]["next"]; got != 3 {
		t.Errorf("Expected 3 edges of type next, got %d", got)
	}
	if got := g.NodeTypes()["Word"]; got != 3 {
		t.Errorf("Expected node type count 3, got %d", got)
	}
	if got := g.EdgeTypes()["next"]; got != 3 {
		t.Errorf("Expected edge type count 3, got %d", got)
	}
}

func TestNodeByTypeAndName(t *testing.T) {
	g := New(Directed)
	g.AddNode("lemma1", map[string]string{
		AttrType:     SuperLemmaType,
		AttrLanguage: "de",
		AttrPOS:      "NN",
		AttrName:     "Haus",
	})
	g.AddNode("word1", map[string]string{
		AttrType:     "Word",
		AttrLanguage: "de",
		AttrPOS:      "NN",
		AttrName:     "Haus",
	})

	n, ok := g.NodeByTypeAndName("de", "NN", "Haus")
	if !ok {
		t.Fatal("Expected SuperLemma lookup to succeed")
	}
	if n.ID() != "lemma1" {
		t.Errorf("Expected lemma1, got %s", n.ID())
	}
	if _, ok := g.NodeByTypeAndName("en", "NN", "Haus"); ok {
		t.Error("Lookup with wrong language should fail")
	}
}

func TestFilteredLinkedNodes(t *testing.T) {
	g := New(Directed)
	for _, id := range []string{"dog", "animal", "puppy", "cat"} {
		g.AddNode(id, nil)
	}
	g.AddEdgeByID("dog", "animal", map[string]string{AttrType: "hypernym"})
	g.AddEdgeByID("dog", "puppy", map[string]string{AttrType: "hyponym"})
	g.AddEdgeByID("dog", "cat", nil)

	dog, _ := g.Node("dog")

	tests := []struct {
		value string
		want  string
	}{
		{"hypernym", "animal"},
		{"hyponym", "puppy"},
		{"", "cat"},
	}
	for _, tt := range tests {
		got := dog.FilteredLinkedNodes(Out, AttrType, tt.value)
		if len(got) != 1 || got[0].ID() != tt.want {
			t.Errorf("FilteredLinkedNodes(%q): expected [%s], got %d nodes", tt.value, tt.want, len(got))
		}
	}
	if got := dog.FilteredLinkedNodes(In, AttrType, "hypernym"); len(got) != 0 {
		t.Errorf("Expected no incoming hypernym links, got %d", len(got))
	}
}

func TestLinkedNodes_ParallelEdgesDeduped(t *testing.T) {
	g := New(Directed)
	a, _ := g.AddNode("a", nil)
	b, _ := g.AddNode("b", nil)
	g.AddEdge(a, b, nil)
	g.AddEdge(a, b, map[string]string{AttrType: "other"})
	g.AddEdge(b, a, nil)

	if n := len(a.Edges(Any)); n != 3 {
		t.Errorf("Expected 3 incident edges, got %d", n)
	}
	if n := len(a.LinkedNodes(Any)); n != 1 {
		t.Errorf("Expected 1 distinct linked node, got %d", n)
	}
}

func TestDirectedness(t *testing.T) {
	if Directed.TraversalDirection() != Out {
		t.Error("Directed should traverse OUT edges")
	}
	if Undirected.TraversalDirection() != Any {
		t.Error("Undirected should traverse ANY edges")
	}
	if ParseDirectedness("undirected") != Undirected {
		t.Error("Expected undirected to parse")
	}
	if ParseDirectedness("whatever") != Directed {
		t.Error("Unknown strings should default to directed")
	}
}

func TestGraphError_Message(t *testing.T) {
	err := NewError("Load").Node("n1").Context("line 12").Cause(ErrNodeNotFound).Build()
	want := `Load node "n1" (line 12): node not found`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	domain := DomainError("ReadGML", errors.New("label missing"))
	if !IsDomain(domain) {
		t.Error("Expected DomainError to be a domain error")
	}
	if IsDomain(err) {
		t.Error("Node-not-found must not be a domain error")
	}
}
