package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"classroom/internal/auth"
	"classroom/internal/config"
	"classroom/internal/handler"
	"classroom/internal/middleware"
)

// ShutdownTimeout bounds how long in-flight requests may finish after a
// shutdown signal.
const ShutdownTimeout = 15 * time.Second

// publicPaths are served without a bearer token.
var publicPaths = []string{"/health", "/ready", "/metrics"}

// RouteRegistrar is implemented by the domain handlers.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Server is one classroom service's HTTP front end.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// New assembles the router and middleware chain.
// Order: CORS → Recovery → RequestLogger → Timeout → Auth → Routes
func New(cfg *config.Config, logger *slog.Logger, verifier auth.CredentialVerifier, health *handler.HealthHandler, routes ...RouteRegistrar) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	for _, r := range routes {
		r.RegisterRoutes(mux)
	}

	var h http.Handler = mux
	h = middleware.Auth(verifier, logger, publicPaths...)(h)
	h = middleware.Timeout(config.RequestTimeout)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS must run before auth so pre-flight requests are answered
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      h,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: config.RequestTimeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String(), "environment", s.cfg.Environment)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
