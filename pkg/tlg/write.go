package tlg

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

// SubgraphOptions selects which edges among the included nodes are written.
type SubgraphOptions struct {
	// UndirectedEdges writes each unordered endpoint pair once.
	UndirectedEdges bool
	// EdgeTypes keeps only edges whose Type is listed; a missing Type is
	// "". Nil keeps every edge.
	EdgeTypes map[string]struct{}
	// NormalizeParallelEdges writes each ordered endpoint pair once.
	NormalizeParallelEdges bool
	Logger                 logging.Logger
}

// GMLOptions configures WriteGML.
type GMLOptions struct {
	SubgraphOptions
	// LabelAttr names the node attribute written as label. Default Label.
	LabelAttr string
	// EscapeAmpersand writes '&' as "&amp;".
	EscapeAmpersand bool
}

// WriteBorland writes the whole graph, keeping edge weights. Nodes and
// edges appear in insertion order, attributes sorted by key.
func WriteBorland(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	writeBorlandNodes(bw, g, g.Nodes())
	for _, n := range g.Nodes() {
		for _, e := range n.Edges(graph.Out) {
			writeBorlandEdge(bw, e, formatWeight(e.Weight()))
		}
	}
	return bw.Flush()
}

// WriteBorlandSubgraph writes the given nodes and the edges between them
// that pass the options. Edge weights are written as 1.0.
func WriteBorlandSubgraph(w io.Writer, g *graph.Graph, nodes []graph.Node, opts SubgraphOptions) error {
	bw := bufio.NewWriter(w)
	writeBorlandNodes(bw, g, nodes)
	exported := forEachSubgraphEdge(nodes, opts, func(e graph.Edge) {
		writeBorlandEdge(bw, e, "1.0")
	})
	logging.OrNop(opts.Logger).Info("subgraph exported", logging.Int("nodes", len(nodes)), logging.Int("edges", exported))
	return bw.Flush()
}

// WriteGML writes the given nodes and the edges between them in GML.
// Double quotes in labels become single quotes.
func WriteGML(w io.Writer, g *graph.Graph, nodes []graph.Node, opts GMLOptions) error {
	labelAttr := opts.LabelAttr
	if labelAttr == "" {
		labelAttr = graph.AttrLabel
	}
	replacer := strings.NewReplacer(`"`, "'")
	if opts.EscapeAmpersand {
		replacer = strings.NewReplacer(`"`, "'", "&", "&amp;")
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("graph [\n")
	if g.Directedness() == graph.Directed {
		bw.WriteString("directed 1\n")
	}
	for _, n := range nodes {
		fmt.Fprintf(bw, "node [\nid %s\nlabel \"%s\"\n]\n", n.ID(), replacer.Replace(n.Attr(labelAttr, "")))
	}
	exported := forEachSubgraphEdge(nodes, opts.SubgraphOptions, func(e graph.Edge) {
		fmt.Fprintf(bw, "edge [\nsource %s\ntarget %s\n", e.Source().ID(), e.Target().ID())
		if t := e.Attr(graph.AttrType, ""); t != "" {
			fmt.Fprintf(bw, "type \"%s\"\n", replacer.Replace(t))
		}
		bw.WriteString("]\n")
	})
	bw.WriteString("]\n")
	logging.OrNop(opts.Logger).Info("gml exported", logging.Int("nodes", len(nodes)), logging.Int("edges", exported))
	return bw.Flush()
}

// WriteSIF writes one "source d target" line per edge. Isolated nodes are
// not representable.
func WriteSIF(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%s d %s\n", e.Source().ID(), e.Target().ID())
	}
	return bw.Flush()
}

func writeBorlandNodes(bw *bufio.Writer, g *graph.Graph, nodes []graph.Node) {
	bw.WriteString(g.Head())
	bw.WriteString(verticesMarker + "\n")
	for _, n := range nodes {
		bw.WriteString(n.ID())
		bw.WriteString(Separator)
		writeAttributes(bw, n.Attrs())
		bw.WriteByte('\n')
	}
	bw.WriteString(edgesMarker + "\n")
}

func writeBorlandEdge(bw *bufio.Writer, e graph.Edge, weight string) {
	bw.WriteString(e.Source().ID())
	bw.WriteString(Separator)
	bw.WriteString(e.Target().ID())
	bw.WriteString(Separator)
	bw.WriteString(weight)
	bw.WriteString(Separator)
	writeAttributes(bw, e.Attrs())
	bw.WriteByte('\n')
}

func writeAttributes(bw *bufio.Writer, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		bw.WriteString("[" + k + Separator + attrs[k] + Separator + "]" + Separator)
	}
}

// forEachSubgraphEdge visits the OUT edges of nodes whose target is also
// in nodes and that pass the options, and returns how many were visited.
func forEachSubgraphEdge(nodes []graph.Node, opts SubgraphOptions, fn func(graph.Edge)) int {
	included := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		included[n.ID()] = struct{}{}
	}

	written := make(map[string]struct{})
	count := 0
	for _, n := range nodes {
		for _, e := range n.Edges(graph.Out) {
			target := e.Target().ID()
			if _, ok := included[target]; !ok {
				continue
			}
			if opts.EdgeTypes != nil {
				if _, ok := opts.EdgeTypes[e.Attr(graph.AttrType, "")]; !ok {
					continue
				}
			}

			var key string
			switch {
			case opts.UndirectedEdges:
				key = graph.SortedIDPair(n.ID(), target)
			case opts.NormalizeParallelEdges:
				key = n.ID() + "\t" + target
			}
			if key != "" {
				if _, dup := written[key]; dup {
					continue
				}
				written[key] = struct{}{}
			}

			fn(e)
			count++
		}
	}
	return count
}

// formatWeight renders a weight so that it always reads back as numeric
// and keeps a decimal point.
func formatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
