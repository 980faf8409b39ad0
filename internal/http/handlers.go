package http

import (
	"net/http"
	"time"

	applog "expensetracker/internal/log"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Truncate(time.Second).String(),
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.List(r.Context())
	if err != nil {
		s.writeRepoError(w, r, applog.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, err := decodeExpense(w, r)
	if err != nil {
		writeError(w, decodeStatus(err), err.Error())
		return
	}
	e.ID = ""
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.repo.Create(r.Context(), e)
	if err != nil {
		s.writeRepoError(w, r, applog.OpCreate, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Expense created",
		applog.NewFields().
			WithExpense(created.ID, created.Title, created.Amount, string(created.SelectedType)).
			ToSlice()...)
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateExpense replaces the record named by the path. The id in the
// path wins over any id in the body.
func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	e, err := decodeExpense(w, r)
	if err != nil {
		writeError(w, decodeStatus(err), err.Error())
		return
	}
	e.ID = r.PathValue("id")
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.repo.Update(r.Context(), e); err != nil {
		s.writeRepoError(w, r, applog.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.writeRepoError(w, r, applog.OpDelete, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
