package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/report"
	"github.com/dd0wney/cluso-graphsim/pkg/similarity"
	"github.com/dd0wney/cluso-graphsim/pkg/store"
	"github.com/dd0wney/cluso-graphsim/pkg/validation"
)

const metricNode = "node"

func newSimilarityCmd(a *app) *cobra.Command {
	var (
		metric string
		nodeID string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "similarity FILE...",
		Short: "Compute the pairwise similarity matrix of the graphs",
		Long: `similarity scores every pair of input graphs and prints the symmetric matrix.

Metrics:
  sphere  mean neighbourhood similarity of shared nodes
  veo     vertex/edge overlap
  fuzzy   fuzzy Jaccard over shortest-path closeness
  node    neighbourhood similarity of the single node --node

The run is stored when --db-url or --data-dir is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metric") {
				metric = a.cfg.Metric
			}
			format, err := report.ParseFormat(out)
			if err != nil {
				return err
			}

			cv := validation.NewConfigValidator("similarity").
				When(metric == metricNode, func(cv *validation.ConfigValidator) {
					cv.Custom("node", func() error { return validation.ValidateNodeID(nodeID) })
				})
			if err := cv.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			graphs, err := a.loadGraphs(ctx, args)
			if err != nil {
				return err
			}

			run := store.NewRun(metric, a.directedness().String(), a.cfg.Workers, args)
			run.NodeID = nodeID
			logger := a.logger.With(logging.RunID(run.ID.String()), logging.Metric(metric))
			timer := logging.StartTimer(logger, "similarity matrix computed", logging.Count(len(graphs)))

			matrix, err := a.computeMatrix(graphs, metric, nodeID, logger)
			if err != nil {
				timer.EndError(err)
				return err
			}
			timer.End()
			run.Duration = time.Since(run.CreatedAt)
			run.Matrix = matrix

			if err := a.saveRun(ctx, run, logger); err != nil {
				return err
			}

			m := &report.Matrix{
				Metric:       run.Metric,
				Directedness: run.Directedness,
				NodeID:       run.NodeID,
				Labels:       run.Graphs,
				Values:       run.Matrix,
			}
			if a.cfg.DatabaseURL != "" || a.cfg.DataDir != "" {
				m.RunID = run.ID.String()
			}
			return report.Write(a.out, m, format)
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "sphere", "Similarity metric: sphere, veo, fuzzy or node")
	cmd.Flags().StringVar(&nodeID, "node", "", "Node id compared by the node metric")
	cmd.Flags().StringVar(&out, "out", "table", "Output format: table, csv or json")
	return cmd
}

func (a *app) computeMatrix(graphs []*graph.Graph, metric, nodeID string, logger logging.Logger) ([][]float64, error) {
	if metric == metricNode {
		return similarity.SingleNodeMatrix(graphs, nodeID, a.directedness(), logger)
	}

	strategy, err := similarity.ParseStrategy(metric)
	if err != nil {
		return nil, err
	}
	return similarity.Matrix(graphs, strategy, a.directedness(), similarity.Options{
		Workers: a.cfg.Workers,
		Logger:  logger,
		Metrics: a.metrics,
	})
}

func (a *app) saveRun(ctx context.Context, run *store.Run, logger logging.Logger) error {
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	if err := s.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("run saved", logging.Duration("duration", run.Duration))
	return nil
}

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored similarity runs",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireStore(cmd.Context())
			if err != nil {
				return err
			}

			runs, err := s.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%d\n",
					run.ID, run.CreatedAt.Format(time.RFC3339), run.Metric, run.Directedness, len(run.Graphs))
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0: all)")

	var out string
	show := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print the matrix of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			format, err := report.ParseFormat(out)
			if err != nil {
				return err
			}
			s, err := a.requireStore(cmd.Context())
			if err != nil {
				return err
			}

			run, err := s.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			return report.Write(a.out, &report.Matrix{
				RunID:        run.ID.String(),
				Metric:       run.Metric,
				Directedness: run.Directedness,
				NodeID:       run.NodeID,
				Labels:       run.Graphs,
				Values:       run.Matrix,
			}, format)
		},
	}
	show.Flags().StringVar(&out, "out", "table", "Output format: table, csv or json")

	cmd.AddCommand(list, show)
	return cmd
}
