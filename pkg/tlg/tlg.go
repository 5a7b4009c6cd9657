// Package tlg reads and writes labeled graphs in the Borland ("TLG") text
// format and in GML, and exports edge lists in SIF.
//
// A Borland file has a free-form head, then a "Vertices:" section with one
// node per line and an "Edges:" section with one edge per line. Fields are
// separated by '¤' and attributes are written as "[key¤value¤]¤":
//
//	directed
//	Vertices:
//	1¤[Label¤node1¤]¤
//	2¤[Label¤node2¤]¤
//	Edges:
//	1¤2¤1.0¤[Type¤hypernym¤]¤
package tlg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
)

// Separator delimits fields in the Borland format.
const Separator = "¤"

const progressInterval = 1000

// Format identifies a graph encoding.
type Format int

const (
	FormatBorland Format = iota
	FormatGML
)

func (f Format) String() string {
	switch f {
	case FormatBorland:
		return "borland"
	case FormatGML:
		return "gml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps "borland" (also "tlg") and "gml" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "borland", "tlg", "bf":
		return FormatBorland, nil
	case "gml":
		return FormatGML, nil
	default:
		return 0, fmt.Errorf("unknown graph format %q", name)
	}
}

// FormatForPath guesses the format from a file name, ignoring a trailing
// ".sz" compression suffix. Anything not ending in ".gml" is Borland.
func FormatForPath(path string) Format {
	path = strings.TrimSuffix(strings.ToLower(path), ".sz")
	if strings.HasSuffix(path, ".gml") {
		return FormatGML
	}
	return FormatBorland
}

// ReadOptions configures the readers.
type ReadOptions struct {
	// LabelAsID makes the GML label the node id. Ignored for Borland.
	LabelAsID bool
	Logger    logging.Logger
	Metrics   *metrics.Registry
}

// Read decodes a graph in the given format.
func Read(r io.Reader, format Format, d graph.Directedness, opts ReadOptions) (*graph.Graph, error) {
	var (
		g   *graph.Graph
		err error
	)
	switch format {
	case FormatBorland:
		g, err = ReadBorland(r, d, opts)
	case FormatGML:
		g, err = ReadGML(r, d, opts)
	default:
		return nil, fmt.Errorf("unknown graph format %s", format)
	}
	if err != nil {
		return nil, err
	}
	opts.Metrics.RecordGraphLoaded(format.String(), g.NodeCount(), g.EdgeCount())
	return g, nil
}

// lineReader yields lines without their terminator and counts them.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the next line; ok is false at end of input.
func (lr *lineReader) next() (string, bool, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}
	if err == io.EOF && s == "" {
		return "", false, nil
	}
	lr.line++
	return strings.TrimRight(s, "\r\n"), true, nil
}
