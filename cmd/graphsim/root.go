package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

// execute runs the CLI with args and releases the ops server and run store
// whether or not the command succeeded.
func execute(ctx context.Context, args []string, out, errw io.Writer) error {
	a := &app{out: out, errw: errw}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.shutdown())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "graphsim",
		Short: "Analyse and compare labelled graphs",
		Long: `graphsim loads labelled graphs in the Borland (TLG) or GML text formats and
computes structural measures and pairwise similarity matrices.

Inputs are local paths or s3://bucket/key locations; a .sz suffix marks a
snappy-compressed file.

Examples:
  # Diameter of a directed graph, computed on 8 workers
  graphsim diameter wordnet.tlg --directed --parallel --workers 8

  # Sphere similarity matrix over three graphs as CSV
  graphsim similarity a.tlg b.tlg c.tlg --metric sphere --out csv

  # Neighbourhood similarity of one node across graphs, saved to Postgres
  graphsim similarity a.gml b.gml --metric node --node dog --db-url postgres://localhost/graphsim

  # Merge graphs and write the union as GML
  graphsim union a.tlg b.tlg -o merged.gml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errw)

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "YAML configuration file")
	flags.IntVar(&a.flags.workers, "workers", 0, "Concurrent tasks for parallel work (default: CPUs/4, at least 1)")
	flags.BoolVar(&a.flags.directed, "directed", false, "Follow edges from source to target only")
	flags.BoolVar(&a.flags.undirected, "undirected", false, "Follow edges in both directions (default)")
	flags.StringVar(&a.flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&a.flags.format, "format", "", "Input format: borland or gml (default: from file extension)")
	flags.BoolVar(&a.flags.labelAsID, "label-as-id", false, "Use GML node labels as node ids")
	flags.StringVar(&a.flags.dbURL, "db-url", "", "PostgreSQL URL for storing similarity runs")
	flags.StringVar(&a.flags.dataDir, "data-dir", "", "Directory for storing similarity runs as JSON")
	flags.StringVar(&a.flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	root.AddCommand(
		newDiameterCmd(a),
		newComponentsCmd(a),
		newSimilarityCmd(a),
		newUnionCmd(a),
		newConvertCmd(a),
		newStatsCmd(a),
		newPathsCmd(a),
		newRunsCmd(a),
	)
	return root
}
