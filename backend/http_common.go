package main

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
)

// --- Response helpers ---
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

// statusForError maps service errors to a status and an error code.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, search.ErrInvalidQuery):
		return http.StatusBadRequest, "invalid_query"
	case errors.Is(err, search.ErrRequesterNotFound):
		return http.StatusNotFound, "requester_not_found"
	case errors.Is(err, search.ErrRequesterNotTenant):
		return http.StatusForbidden, "tenant_only"
	case errors.Is(err, graph.ErrUnknownLocality):
		return http.StatusUnprocessableEntity, "unknown_locality"
	case errors.Is(err, search.ErrStorageUnavailable):
		return http.StatusInternalServerError, "storage_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	ev := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = logging.Ctx(r.Context()).Error()
	}
	ev.Err(err).Str("code", code).Msg("request failed")
	writeError(w, status, code)
}
