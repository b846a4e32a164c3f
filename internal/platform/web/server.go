// Package web serves the score history as a JSON API and streams
// auto-played demo runs over a websocket.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// Config holds the web server settings.
type Config struct {
	Address       string
	Game          config.DinoConfig
	FrameInterval time.Duration // demo frame period, also the simulated step
	MaxDemoTime   time.Duration // demo streams close after this much simulated time, 0 = never
	Logger        *log.Logger
}

// DefaultConfig returns the default web server configuration.
func DefaultConfig() Config {
	return Config{
		Address:       ":8080",
		Game:          config.DefaultDinoConfig(),
		FrameInterval: 50 * time.Millisecond,
	}
}

// Server wraps the HTTP server and its router.
type Server struct {
	store    *storage.Store
	cfg      Config
	logger   *log.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer builds the router. store may be nil, in which case the score
// endpoints answer 503.
func NewServer(store *storage.Store, cfg Config) *Server {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 50 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		store:  store,
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/modes", s.handleModes).Methods(http.MethodGet)
	api.HandleFunc("/scores/{mode}", s.handleScores).Methods(http.MethodGet)
	api.HandleFunc("/stats/{mode}", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.handleRun).Methods(http.MethodGet)

	r.HandleFunc("/ws/demo", s.handleDemo)
	s.router = r

	s.srv = &http.Server{
		Addr:              cfg.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving and blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting web server", "address", s.cfg.Address)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down web server")
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Address
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", host, "took", time.Since(start))
	})
}
