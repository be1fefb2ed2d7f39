package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
	"gitea.kood.tech/petrkubec/roomble/backend/config"
	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
)

// pinger reports database health.
type pinger interface {
	Ping(ctx context.Context) error
}

// server holds the handlers' dependencies.
type server struct {
	cfg        *config.Config
	graph      *graph.Graph
	scorer     *compat.Scorer
	matches    *search.MatchService
	properties *search.PropertyService
	people     search.ProfileStore
	auth       *authenticator
	db         pinger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestContext)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Use(withCORS(s.cfg.CORS.Origins))

	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/localities", s.localitiesHandler)
	r.Get("/localities/{name}/nearest", s.nearestHandler)

	r.Group(func(r chi.Router) {
		if !s.cfg.RateLimit.Disabled {
			r.Use(httprate.Limit(
				s.cfg.RateLimit.Requests,
				s.cfg.RateLimit.Window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusTooManyRequests, "rate_limited")
				}),
			))
		}
		r.Use(DataLoaderMiddleware(s.people))

		r.Get("/search/flatmates", s.auth.authenticate(s.searchFlatmatesHandler))
		r.Get("/search/properties", s.searchPropertiesHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "invalid_method")
	})
	return r
}

// GET /health
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
