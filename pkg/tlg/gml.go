package tlg

import (
	"io"
	"strings"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

// gmlBlock is one "node [ ... ]" or "edge [ ... ]" record.
type gmlBlock struct {
	line   int
	id     string
	label  *string
	source string
	target string
	typ    *string
}

// ReadGML decodes the line-oriented GML subset written by WriteGML: one
// key per line inside "node [" and "edge [" blocks. Node keys are id and
// label, edge keys are source, target and type (or Type).
//
// Without LabelAsID the GML id becomes the node id and the label, if any,
// is stored as the Label attribute. With LabelAsID the label becomes the
// node id; a node without a label fails with ErrMissingLabel and a repeated
// label with ErrDuplicateLabel. The head is synthesised from the options.
func ReadGML(r io.Reader, d graph.Directedness, opts ReadOptions) (*graph.Graph, error) {
	const op = "ReadGML"
	logger := logging.OrNop(opts.Logger).With(logging.Component("tlg"))
	lr := newLineReader(r)
	g := graph.New(d)
	g.SetHead(gmlHead(d, opts.LabelAsID))

	// GML id -> graph node id
	ids := make(map[string]string)
	edges := 0

	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "node"):
			block, err := readGMLBlock(lr)
			if err != nil {
				return nil, err
			}
			if err := addGMLNode(g, block, ids, opts.LabelAsID); err != nil {
				return nil, err
			}
			if n := g.NodeCount(); n%progressInterval == 0 {
				logger.Info("nodes read", logging.Count(n))
			}

		case strings.HasPrefix(line, "edge"):
			block, err := readGMLBlock(lr)
			if err != nil {
				return nil, err
			}
			source, ok := ids[block.source]
			if !ok {
				return nil, lineError(op, block.line, block.source, graph.ErrNodeNotFound)
			}
			target, ok := ids[block.target]
			if !ok {
				return nil, lineError(op, block.line, block.target, graph.ErrNodeNotFound)
			}
			var attrs map[string]string
			if block.typ != nil {
				attrs = map[string]string{graph.AttrType: *block.typ}
			}
			if _, err := g.AddEdgeByID(source, target, attrs); err != nil {
				return nil, err
			}
			edges++
			if edges%progressInterval == 0 {
				logger.Info("edges read", logging.Count(edges))
			}
		}
	}

	logger.Info("graph read", logging.Int("nodes", g.NodeCount()), logging.Int("edges", edges))
	return g, nil
}

func addGMLNode(g *graph.Graph, block gmlBlock, ids map[string]string, labelAsID bool) error {
	if !labelAsID {
		var attrs map[string]string
		if block.label != nil {
			attrs = map[string]string{graph.AttrLabel: *block.label}
		}
		if _, err := g.AddNode(block.id, attrs); err != nil {
			return lineError("ReadGML", block.line, block.id, err)
		}
		ids[block.id] = block.id
		return nil
	}

	if block.label == nil {
		return labelError(block.line, block.id, ErrMissingLabel)
	}
	label := *block.label
	if g.HasNode(label) {
		return labelError(block.line, block.id, ErrDuplicateLabel)
	}
	if _, err := g.AddNode(label, nil); err != nil {
		return lineError("ReadGML", block.line, label, err)
	}
	ids[block.id] = label
	return nil
}

// readGMLBlock consumes key lines up to the closing bracket.
func readGMLBlock(lr *lineReader) (gmlBlock, error) {
	block := gmlBlock{line: lr.line}
	for {
		line, ok, err := lr.next()
		if err != nil {
			return block, err
		}
		if !ok {
			return block, formatError("ReadGML", lr.line, "unterminated block")
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "]") {
			return block, nil
		}

		key, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		switch key {
		case "id":
			block.id = value
		case "label":
			s := unquote(value)
			block.label = &s
		case "source":
			block.source = value
		case "target":
			block.target = value
		case "type", "Type":
			s := unquote(value)
			block.typ = &s
		}
	}
}

func unquote(s string) string {
	start := strings.IndexByte(s, '"')
	end := strings.LastIndexByte(s, '"')
	if start < 0 || end <= start {
		return s
	}
	return s[start+1 : end]
}

func gmlHead(d graph.Directedness, labelAsID bool) string {
	var b strings.Builder
	b.WriteString(d.String())
	b.WriteString("\nSimilarityGraph\nVertex Attributes:")
	if !labelAsID {
		b.WriteString("[Label¤String];")
	}
	b.WriteString("\nEdge Attributes:\nProbabilityMassOfGraph: 0\n")
	return b.String()
}
