package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeRepoError maps a repository failure to 404 or 500.
func (s *Server) writeRepoError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, core.ErrNotFound.Error())
		return
	}
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogError(r.Context(), "Repository operation failed", err, applog.ComponentStorage, op, nil)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
