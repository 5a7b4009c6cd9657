package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphsim/pkg/algorithms"
	"github.com/dd0wney/cluso-graphsim/pkg/config"
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/health"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
	"github.com/dd0wney/cluso-graphsim/pkg/server"
	"github.com/dd0wney/cluso-graphsim/pkg/source"
	"github.com/dd0wney/cluso-graphsim/pkg/store"
	"github.com/dd0wney/cluso-graphsim/pkg/tlg"
)

// globalFlags are bound to the root command's persistent flags.
type globalFlags struct {
	configPath  string
	workers     int
	directed    bool
	undirected  bool
	logLevel    string
	format      string
	labelAsID   bool
	dbURL       string
	dataDir     string
	metricsAddr string
}

// app is the state shared by every subcommand once the root command has
// loaded its configuration.
type app struct {
	flags globalFlags
	out   io.Writer
	errw  io.Writer

	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	opener  *source.Opener
	ops     *server.OpsServer

	storeMu sync.Mutex
	store   store.Store
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.NewJSONLogger(a.errw, logging.ParseLevel(cfg.LogLevel))
	a.metrics = metrics.NewRegistry()
	a.opener = source.NewOpener(source.Options{
		Profile: cfg.S3.Profile,
		Region:  cfg.S3.Region,
		Logger:  a.logger,
	})

	if cfg.MetricsAddr != "" {
		checker := health.NewChecker()
		checker.Register("store", func(ctx context.Context) health.Check {
			return health.PingCheck(a.currentStore())(ctx)
		})
		checker.Register("workers", health.InFlightCheck(a.metrics.InFlight, cfg.Workers))

		a.ops = server.NewOpsServer(cfg.MetricsAddr, a.metrics, checker, a.logger)
		a.ops.Start()
	}
	return nil
}

// applyFlags overrides configuration values with flags set explicitly on
// the command line.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("directed") && flags.Changed("undirected") {
		return errors.New("--directed and --undirected are mutually exclusive")
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if flags.Changed("directed") && a.flags.directed {
		cfg.Directedness = graph.Directed.String()
	}
	if flags.Changed("undirected") && a.flags.undirected {
		cfg.Directedness = graph.Undirected.String()
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("format") {
		cfg.InputFormat = a.flags.format
	}
	if flags.Changed("label-as-id") {
		cfg.LabelAsID = a.flags.labelAsID
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = a.flags.dbURL
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = a.flags.metricsAddr
	}
	return nil
}

// shutdown stops the ops server and closes the run store.
func (a *app) shutdown() error {
	var errs []error
	if a.ops != nil {
		errs = append(errs, a.ops.Shutdown(5*time.Second))
	}

	a.storeMu.Lock()
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	a.storeMu.Unlock()

	return errors.Join(errs...)
}

func (a *app) directedness() graph.Directedness {
	return a.cfg.GraphDirectedness()
}

func (a *app) algorithmOptions() algorithms.Options {
	return algorithms.Options{Logger: a.logger, Metrics: a.metrics}
}

// formatFor returns the configured input format, or the one implied by the
// location's extension.
func (a *app) formatFor(location string) (tlg.Format, error) {
	f, set, err := a.cfg.Format()
	if err != nil {
		return 0, err
	}
	if set {
		return f, nil
	}
	return tlg.FormatForPath(location), nil
}

func (a *app) loadGraph(ctx context.Context, location string) (*graph.Graph, error) {
	format, err := a.formatFor(location)
	if err != nil {
		return nil, err
	}
	g, err := a.opener.ReadGraph(ctx, location, format, a.directedness(), tlg.ReadOptions{
		LabelAsID: a.cfg.LabelAsID,
		Logger:    a.logger.With(logging.Graph(location)),
		Metrics:   a.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return g, nil
}

func (a *app) loadGraphs(ctx context.Context, locations []string) ([]*graph.Graph, error) {
	graphs := make([]*graph.Graph, 0, len(locations))
	for _, location := range locations {
		g, err := a.loadGraph(ctx, location)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// openStore returns the configured run store, opening it on first use, or
// nil when runs are not persisted. The store stays open until shutdown.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	if a.store != nil {
		return a.store, nil
	}

	switch {
	case a.cfg.DatabaseURL != "":
		s, err := store.NewPGStore(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.store = s
	case a.cfg.DataDir != "":
		s, err := store.NewFileStore(a.cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.store = s
	}
	return a.store, nil
}

func (a *app) currentStore() health.Pinger {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	if a.store == nil {
		return nil
	}
	return a.store
}

// requireStore is openStore for commands that cannot run without one.
func (a *app) requireStore(ctx context.Context) (store.Store, error) {
	s, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("no run store configured: set --db-url or --data-dir")
	}
	return s, nil
}
