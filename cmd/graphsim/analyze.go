package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphsim/pkg/algorithms"
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/validation"
)

func newDiameterCmd(a *app) *cobra.Command {
	var parallel bool

	cmd := &cobra.Command{
		Use:   "diameter FILE...",
		Short: "Print the diameter of each graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, location := range args {
				g, err := a.loadGraph(cmd.Context(), location)
				if err != nil {
					return err
				}

				var diameter int
				if parallel {
					diameter, err = algorithms.DiameterParallel(g, a.directedness(), a.cfg.Workers, a.algorithmOptions())
					if err != nil {
						return fmt.Errorf("%s: %w", location, err)
					}
				} else {
					diameter = algorithms.Diameter(g, a.directedness(), a.algorithmOptions())
				}
				fmt.Fprintf(a.out, "%s\t%d\n", location, diameter)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Partition start nodes over --workers goroutines")
	return cmd
}

func newComponentsCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "components FILE",
		Short: "List weakly connected components, largest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			components := algorithms.WeaklyConnectedComponents(g)
			fmt.Fprintf(a.out, "components\t%d\n", len(components))
			for i, c := range components {
				if !list {
					fmt.Fprintf(a.out, "%d\t%d\n", i, c.Size())
					continue
				}
				ids := make([]string, 0, c.Size())
				for _, n := range c.Nodes {
					ids = append(ids, n.ID())
				}
				slices.Sort(ids)
				fmt.Fprintf(a.out, "%d\t%d\t%s\n", i, c.Size(), strings.Join(ids, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print the node ids of each component")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		samples int
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print size, diameter, clustering and geodesic statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.NewConfigValidator("stats").NonNegative("samples", samples).Validate(); err != nil {
				return err
			}
			g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := a.algorithmOptions()

			components := algorithms.WeaklyConnectedComponents(g)
			largest := 0
			if len(components) > 0 {
				largest = components[0].Size()
			}

			var geodesic algorithms.GeodesicStats
			if samples > 0 {
				geodesic = algorithms.SampledGeodesicStats(g, samples, rand.New(rand.NewPCG(seed, seed)), opts)
			} else {
				geodesic = algorithms.ExactGeodesicStats(g, opts)
			}

			rows := []struct {
				key   string
				value any
			}{
				{"nodes", g.NodeCount()},
				{"edges", g.EdgeCount()},
				{"components", len(components)},
				{"largest_component", largest},
				{"diameter_" + a.directedness().String(), algorithms.Diameter(g, a.directedness(), opts)},
				{"clustering_coefficient", fmt.Sprintf("%.6f", algorithms.ClusteringCoefficient(g, opts))},
				{"geodesic_diameter", geodesic.Diameter},
				{"geodesic_mean", fmt.Sprintf("%.6f", geodesic.MeanDistance)},
				{"geodesic_pairs", geodesic.Pairs},
			}
			for _, r := range rows {
				fmt.Fprintf(a.out, "%s\t%v\n", r.key, r.value)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 0, "Estimate geodesic statistics from this many random pairs (0: exact)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Seed for pair sampling")
	return cmd
}

func newPathsCmd(a *app) *cobra.Command {
	var (
		nodeID    string
		edgeTypes []string
	)

	cmd := &cobra.Command{
		Use:   "paths FILE",
		Short: "Print paths from a node to its farthest nodes along typed edges",
		Long: `paths follows outgoing edges whose Type attribute is one of --type from
--node, and prints one shortest path to every node at the greatest distance.
An edge without a Type matches --type "".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateNodeID(nodeID); err != nil {
				return err
			}
			g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			start, ok := g.Node(nodeID)
			if !ok {
				return graph.NewError("paths").Node(nodeID).Cause(graph.ErrNodeNotFound).Err()
			}

			types := make(map[string]struct{}, len(edgeTypes))
			for _, t := range edgeTypes {
				types[t] = struct{}{}
			}

			paths := algorithms.EccentricityPaths(start, types)
			a.logger.Debug("eccentricity paths", logging.NodeID(nodeID), logging.Count(len(paths)))
			for _, path := range paths {
				ids := make([]string, len(path))
				for i, n := range path {
					ids[i] = n.ID()
				}
				fmt.Fprintln(a.out, strings.Join(ids, " -> "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nodeID, "node", "", "Start node id (required)")
	cmd.Flags().StringSliceVar(&edgeTypes, "type", []string{""}, "Edge types to follow")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}
