package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gitea.kood.tech/petrkubec/roomble/backend/graph"
)

type nearbyTown struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

// GET /localities
func (s *server) localitiesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.graph.Localities(),
	})
}

// GET /localities/{name}/nearest?k=3
func (s *server) nearestHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.graph.Has(name) {
		writeError(w, http.StatusNotFound, "unknown_locality")
		return
	}

	k := graph.DefaultNearest
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_query")
			return
		}
		k = n
	}

	names, err := s.graph.NearestNeighbors(name, k)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]nearbyTown, 0, len(names))
	for _, n := range names {
		d, err := s.graph.Distance(name, n)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out = append(out, nearbyTown{Name: n, DistanceKm: d})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": out})
}
