package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/tlg"
)

// writeOptions selects the output encoding and edge filters of written graphs.
type writeOptions struct {
	to              string
	edgeTypes       []string
	undirectedEdges bool
	normalize       bool
	labelAttr       string
	escapeAmpersand bool
}

func (o *writeOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.to, "to", "", "Output format: borland, gml or sif (default: from output extension)")
	f.StringSliceVar(&o.edgeTypes, "edge-type", nil, "Write only edges of these types")
	f.BoolVar(&o.undirectedEdges, "undirected-edges", false, "Write each unordered node pair once")
	f.BoolVar(&o.normalize, "normalize", false, "Collapse parallel edges")
	f.StringVar(&o.labelAttr, "label-attr", "", "Node attribute written as the GML label (default Label)")
	f.BoolVar(&o.escapeAmpersand, "escape-amp", false, "Escape & in GML labels")
}

func (o *writeOptions) subgraph(logger logging.Logger) tlg.SubgraphOptions {
	opts := tlg.SubgraphOptions{
		UndirectedEdges:        o.undirectedEdges,
		NormalizeParallelEdges: o.normalize,
		Logger:                 logger,
	}
	if len(o.edgeTypes) > 0 {
		opts.EdgeTypes = make(map[string]struct{}, len(o.edgeTypes))
		for _, t := range o.edgeTypes {
			opts.EdgeTypes[t] = struct{}{}
		}
	}
	return opts
}

func (o *writeOptions) filtered() bool {
	return len(o.edgeTypes) > 0 || o.undirectedEdges || o.normalize
}

// writer returns the encoder for location.
func (o *writeOptions) writer(location string, logger logging.Logger) (func(io.Writer, *graph.Graph) error, error) {
	to := o.to
	if to == "" {
		to = tlg.FormatForPath(location).String()
		if strings.HasSuffix(strings.TrimSuffix(strings.ToLower(location), ".sz"), ".sif") {
			to = "sif"
		}
	}

	switch strings.ToLower(to) {
	case "sif":
		return tlg.WriteSIF, nil
	case "gml":
		return func(w io.Writer, g *graph.Graph) error {
			return tlg.WriteGML(w, g, g.Nodes(), tlg.GMLOptions{
				SubgraphOptions: o.subgraph(logger),
				LabelAttr:       o.labelAttr,
				EscapeAmpersand: o.escapeAmpersand,
			})
		}, nil
	case "borland", "tlg", "bf":
		if o.filtered() {
			return func(w io.Writer, g *graph.Graph) error {
				return tlg.WriteBorlandSubgraph(w, g, g.Nodes(), o.subgraph(logger))
			}, nil
		}
		return tlg.WriteBorland, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be borland, gml or sif)", to)
	}
}

func (a *app) writeGraph(cmd *cobra.Command, location string, g *graph.Graph, o *writeOptions) error {
	logger := a.logger.With(logging.Graph(location))
	write, err := o.writer(location, logger)
	if err != nil {
		return err
	}

	timer := logging.StartTimer(logger, "graph written", logging.Path(location))
	err = a.opener.WriteGraph(cmd.Context(), location, func(w io.Writer) error {
		return write(w, g)
	})
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("%s: %w", location, err)
	}
	timer.End(logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))
	return nil
}

func newUnionCmd(a *app) *cobra.Command {
	var (
		output string
		wo     writeOptions
	)

	cmd := &cobra.Command{
		Use:   "union FILE... -o OUT",
		Short: "Merge graphs by node id and write the union",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs, err := a.loadGraphs(cmd.Context(), args)
			if err != nil {
				return err
			}
			union := graph.Union(graphs, a.directedness())
			return a.writeGraph(cmd, output, union, &wo)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output location (required)")
	_ = cmd.MarkFlagRequired("output")
	wo.register(cmd)
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var wo writeOptions

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a graph between Borland, GML and SIF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeGraph(cmd, args[1], g, &wo)
		},
	}
	wo.register(cmd)
	return cmd
}
