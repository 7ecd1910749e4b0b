// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the curation engine, the provider and reading
// lists over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/lists"
	"github.com/pdiddy/curated-reads/internal/metrics"
	"github.com/pdiddy/curated-reads/internal/vibes"
	"github.com/pdiddy/curated-reads/pkg/types"
)

const (
	defaultAddr          = ":8080"
	defaultRatePerMinute = 120
	defaultFeaturedCount = 6
	maxBodyBytes         = 1 << 20
	shutdownTimeout      = 10 * time.Second
)

// Deps are the collaborators the API calls into.
type Deps struct {
	Searcher curation.Searcher
	Lookup   curation.Lookup
	Curator  *curation.Curator

	// Lists enables the /api/lists routes when non-nil.
	Lists *lists.Store

	Tagger vibes.Tagger

	// Shelves are the pre-built shelves served by /api/shelves and rotated
	// by /api/featured.
	Shelves       []types.CuratedShelf
	FeaturedCount int

	Clock  clockwork.Clock
	Logger zerolog.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    types.ServerConfig
	deps   Deps
	router chi.Router
}

// New builds the router for cfg and deps.
func New(cfg types.ServerConfig, deps Deps) *Server {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.FeaturedCount <= 0 {
		deps.FeaturedCount = defaultFeaturedCount
	}
	s := &Server{cfg: cfg, deps: deps}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLog)
	// No configured origins means same-origin only; "*" opens every origin.
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	perMinute := s.cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = defaultRatePerMinute
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(perMinute, time.Minute))
		r.Use(instrument)

		r.Get("/search", s.handleSearch)
		r.Get("/search-curated", s.handleSearchCurated)
		r.Get("/books/{id}", s.handleBook)
		r.Get("/shelves", s.handleShelves)
		r.Get("/featured", s.handleFeatured)

		if s.deps.Lists != nil {
			r.Route("/lists", func(r chi.Router) {
				r.Get("/", s.handleListLists)
				r.Post("/", s.handleCreateList)
				r.Get("/{id}", s.handleGetList)
				r.Patch("/{id}", s.handleUpdateList)
				r.Delete("/{id}", s.handleDeleteList)
				r.Post("/{id}/books", s.handleAddBook)
				r.Delete("/{id}/books/{bookID}", s.handleRemoveBook)
			})
		}
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLog logs every request at debug level.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.deps.Clock.Now()
		next.ServeHTTP(ww, r)
		s.deps.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", s.deps.Clock.Since(start)).
			Msg("request")
	})
}

// instrument records request counts and latency by route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
