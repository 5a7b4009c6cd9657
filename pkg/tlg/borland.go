package tlg

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

const (
	verticesMarker = "Vertices:"
	edgesMarker    = "Edges:"
)

var attributePattern = regexp.MustCompile(`\[(.*?)¤(.*?)¤\]¤`)

// ReadBorland decodes a Borland format graph. The head is kept verbatim as
// Graph.Head. A numeric third edge field becomes the edge weight. An edge
// naming an unknown node fails with graph.ErrNodeNotFound.
func ReadBorland(r io.Reader, d graph.Directedness, opts ReadOptions) (*graph.Graph, error) {
	const op = "ReadBorland"
	logger := logging.OrNop(opts.Logger).With(logging.Component("tlg"))
	lr := newLineReader(r)
	g := graph.New(d)

	var head strings.Builder
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, formatError(op, lr.line, "missing "+verticesMarker+" section")
		}
		if strings.HasPrefix(line, verticesMarker) {
			break
		}
		head.WriteString(line)
		head.WriteByte('\n')
	}
	g.SetHead(head.String())

	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, formatError(op, lr.line, "missing "+edgesMarker+" section")
		}
		if strings.HasPrefix(line, edgesMarker) {
			break
		}
		if line == "" {
			continue
		}

		id, _, found := strings.Cut(line, Separator)
		if !found {
			return nil, formatError(op, lr.line, "node line without separator")
		}
		if _, err := g.AddNode(id, parseAttributes(line)); err != nil {
			return nil, lineError(op, lr.line, id, err)
		}
		if n := g.NodeCount(); n%progressInterval == 0 {
			logger.Info("nodes read", logging.Count(n))
		}
	}
	logger.Info("nodes read", logging.Count(g.NodeCount()))

	edges := 0
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		if err := addBorlandEdge(g, line, lr.line); err != nil {
			return nil, err
		}
		edges++
		if edges%progressInterval == 0 {
			logger.Info("edges read", logging.Count(edges))
		}
	}
	logger.Info("edges read", logging.Count(edges))

	return g, nil
}

func addBorlandEdge(g *graph.Graph, line string, lineNo int) error {
	const op = "ReadBorland"
	fields := strings.SplitN(line, Separator, 3)
	if len(fields) < 3 {
		return formatError(op, lineNo, "edge line needs source and target")
	}

	source, ok := g.Node(fields[0])
	if !ok {
		return lineError(op, lineNo, fields[0], graph.ErrNodeNotFound)
	}
	target, ok := g.Node(fields[1])
	if !ok {
		return lineError(op, lineNo, fields[1], graph.ErrNodeNotFound)
	}

	weight := 0.0
	if rest := fields[2]; rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		raw, _, _ := strings.Cut(rest, Separator)
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return formatError(op, lineNo, "bad edge weight "+strconv.Quote(raw))
		}
		weight = w
	}

	_, err := g.AddWeightedEdge(source, target, weight, parseAttributes(line))
	return err
}

// parseAttributes extracts every [key¤value¤]¤ group of a line.
func parseAttributes(line string) map[string]string {
	matches := attributePattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(matches))
	for _, m := range matches {
		attrs[m[1]] = m[2]
	}
	return attrs
}
