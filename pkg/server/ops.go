// Package server runs the operational HTTP endpoint of graphsim commands:
// Prometheus metrics and health checks.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dd0wney/cluso-graphsim/pkg/health"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
)

// OpsServer serves /metrics and /healthz until shut down.
type OpsServer struct {
	server       *http.Server
	logger       logging.Logger
	shutdownOnce sync.Once
}

// NewOpsServer creates a server on addr. A nil checker omits /healthz.
func NewOpsServer(addr string, reg *metrics.Registry, checker *health.Checker, logger logging.Logger) *OpsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	if checker != nil {
		mux.Handle("/healthz", checker.Handler())
	}

	return &OpsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger: logging.OrNop(logger).With(logging.Component("ops-server")),
	}
}

// Handler returns the server's routes
func (s *OpsServer) Handler() http.Handler {
	return s.server.Handler
}

// Start listens in the background. Listen failures are logged.
func (s *OpsServer) Start() {
	go func() {
		s.logger.Info("ops server listening", logging.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ops server failed", logging.Error(err))
		}
	}()
}

// Shutdown stops the server, waiting up to timeout for open requests.
// Later calls are no-ops.
func (s *OpsServer) Shutdown(timeout time.Duration) error {
	var err error
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err = s.server.Shutdown(ctx); err != nil {
			s.logger.Error("ops server shutdown failed", logging.Error(err))
			return
		}
		s.logger.Debug("ops server stopped")
	})
	return err
}
