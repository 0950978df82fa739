package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/verf-report/internal/auth"
	"github.com/rickgao/verf-report/internal/config"
	"github.com/rickgao/verf-report/internal/health"
	"github.com/rickgao/verf-report/internal/report"
)

// ReportGenerator produces a verification report.
type ReportGenerator interface {
	Generate(ctx context.Context, walletAddress, networkTxnHash string) report.Result
}

// HealthSource runs health checks and streams their results.
type HealthSource interface {
	CheckNow(ctx context.Context) health.Report
	Latest() (health.Report, bool)
	Subscribe() (<-chan health.Report, func())
}

// Deps collects handler dependencies.
type Deps struct {
	Reports     ReportGenerator
	Health      HealthSource
	Auth        *auth.Credentials
	Brand       config.BrandConfig
	ConvertUnit bool         // Reported by /brand as convert_micro_units
	Metrics     http.Handler // Optional
	MetricsPath string
}

// Options tune the HTTP surface.
type Options struct {
	CookieName   string
	SecureCookie bool
	PingInterval time.Duration // Websocket keepalive
	WriteTimeout time.Duration // Per websocket frame
}

// Server is the HTTP front of the report service.
type Server struct {
	cfg    config.ServerConfig
	opts   Options
	deps   Deps
	logger *slog.Logger

	upgrader   websocket.Upgrader
	handler    http.Handler
	httpServer *http.Server
}

// New creates a Server. Nothing listens until Start.
func New(cfg config.ServerConfig, opts Options, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.CookieName == "" {
		opts.CookieName = config.DefaultCookieName
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = config.DefaultHealthPing
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:    cfg,
		opts:   opts,
		deps:   deps,
		logger: logger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
		},
	}
	s.handler = s.routes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}

	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
// Websocket streams are hijacked connections and end when the monitor stops.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /version", s.handleVersion)

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.Handle("GET /session", s.requireSession(http.HandlerFunc(s.handleSession)))

	mux.Handle("POST /report", s.requireSession(http.HandlerFunc(s.handleReport)))
	mux.Handle("GET /brand", s.requireSession(http.HandlerFunc(s.handleBrand)))
	mux.Handle("GET /health/stream", s.requireSession(http.HandlerFunc(s.handleHealthStream)))

	if s.deps.Metrics != nil && s.deps.MetricsPath != "" {
		mux.Handle("GET "+s.deps.MetricsPath, s.deps.Metrics)
	}

	var h http.Handler = mux
	h = recoverMiddleware(s.logger, h)
	h = loggingMiddleware(s.logger, h)
	h = requestIDMiddleware(h)
	return h
}
