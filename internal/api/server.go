// Package api exposes the assessment engine over HTTP. The surface
// mirrors the quiz lifecycle: score answers, generate recommendations,
// rank against peers, and persist results.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/finpulse/finpulse-cli/internal/scorer"
	"github.com/finpulse/finpulse-cli/internal/store"
)

// Config tunes the HTTP server.
type Config struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// Server wires the scoring engine and store into an HTTP handler.
type Server struct {
	engine *scorer.Engine
	store  store.Store
	cfg    Config
}

func NewServer(engine *scorer.Engine, st store.Store, cfg Config) *Server {
	return &Server{engine: engine, store: st, cfg: cfg}
}

// Router assembles the middleware stack and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	limit := s.cfg.RateLimit
	if limit <= 0 {
		limit = 20
	}
	burst := s.cfg.RateBurst
	if burst <= 0 {
		burst = 40
	}
	r.Use(rateLimiter(rate.NewLimiter(rate.Limit(limit), burst)))
	r.Use(recordMetrics)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/percentiles", s.handlePercentiles)
		r.Post("/results", s.handleSaveResult)
		r.Get("/results", s.handleListResults)
		r.Get("/results/{id}", s.handleGetResult)
	})

	return r
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.AllowedOrigins
}

// ListenAndServe runs the server until the context is cancelled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "api: server listen")
	}
	return nil
}
