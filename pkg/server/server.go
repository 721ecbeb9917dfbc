package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"pdftools/gateway/pkg/botdetect"
	"pdftools/gateway/pkg/config"
	"pdftools/gateway/pkg/gateway/handlers"
	"pdftools/gateway/pkg/gateway/middleware"
	"pdftools/gateway/pkg/telemetry/metrics"
)

// readinessTimeout bounds a single readiness check.
const readinessTimeout = 2 * time.Second

// BuildInfo is reported by the root and version endpoints.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Options holds the dependencies of a Server.
type Options struct {
	Config    *config.Config
	Logger    *slog.Logger
	Collector *metrics.Collector
	Detector  *botdetect.Detector
	Converter handlers.Converter
	Build     BuildInfo
}

// Server is the HTTP server of the PDF tools gateway.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	collector  *metrics.Collector
	detector   *botdetect.Detector
	converter  handlers.Converter
	build      BuildInfo
	httpServer *http.Server

	// conversions caps in-flight requests on the conversion routes.
	conversions *middleware.ConcurrencyLimiter

	handlerOnce  sync.Once
	handler      http.Handler
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// New creates a server. Config, Collector and Converter are required;
// a nil Logger uses slog.Default() and a nil Detector disables crawler
// counting.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Collector == nil {
		return nil, errors.New("server: metrics collector is required")
	}
	if opts.Converter == nil {
		return nil, errors.New("server: converter is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:       opts.Config,
		logger:    logger,
		collector: opts.Collector,
		detector:  opts.Detector,
		converter: opts.Converter,
		build:     opts.Build,

		conversions: middleware.NewConcurrencyLimiter(opts.Config.Convert.MaxConcurrent),
	}, nil
}

// Start listens on the configured address and serves until ctx is cancelled
// or the listener fails. Cancelling ctx shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server is already running")
	}
	s.isRunning = true
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    s.cfg.Server.IdleTimeout,
		MaxHeaderBytes: s.cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	srv := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting PDF tools server",
			"address", ln.Addr().String(),
			"tool", s.collector.Tool(),
			"metrics_enabled", s.collector.Enabled(),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		if !ok {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the server, waiting at most
// server.shutdown_timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		srv := s.httpServer
		running := s.isRunning
		s.mu.RUnlock()
		if !running || srv == nil {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.cfg.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("PDF tools server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the address the server listens on, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the router with the full middleware chain. It is built
// once and shared by every call.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.handler = s.routes()
	})
	return s.handler
}
