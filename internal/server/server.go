package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/snonux/rapwiz/internal/phonetic"
)

// Config holds the HTTP server settings.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	RateLimit       int // requests per minute per client on /analyze
	AllowedOrigins  []string
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            5000,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       10,
		AllowedOrigins:  []string{"*"},
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server is the analysis HTTP API.
type Server struct {
	config  Config
	handler http.Handler
	limiter *RateLimiter
	logger  *slog.Logger
}

// New wires routes and middleware.
func New(config Config, a analyzer, transcriber phonetic.Transcriber, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	h := NewHandler(a, transcriber, version, logger)
	limiter := NewRateLimiter(config.RateLimit, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Home)
	mux.Handle("POST /analyze", limiter.Limit(http.HandlerFunc(h.Analyze)))
	mux.HandleFunc("GET /health", h.Health)

	chain := Chain(
		Recovery(logger),
		RequestID,
		Logger(logger),
		CORS(config.AllowedOrigins),
	)

	return &Server{
		config:  config,
		handler: chain(mux),
		limiter: limiter,
		logger:  logger,
	}
}

// Close releases the rate limiter's background sweeper. Run calls it on
// return; servers that are never run must call it themselves.
func (s *Server) Close() {
	s.limiter.Stop()
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", slog.Duration("timeout", s.config.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
