package http

import (
	"log/slog"
	"net/http"

	"budget/internal/core"
)

// POST /api/income-sources adds a source to the active working set.
func (s *Server) handleIncomeSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req core.IncomeSource
	if !decodeJSON(w, r, &req) {
		return
	}

	src := s.store.AddIncomeSource(req)
	// Income changes move net income, so the derived savings row is
	// recomputed on every income mutation.
	s.store.RecomputeSavings()
	if !s.persist(r.Context(), w) {
		return
	}

	slog.InfoContext(r.Context(), "Income source added",
		"source_id", src.ID,
		"type", string(src.Type))
	writeJSON(w, http.StatusCreated, src)
}

// PATCH /api/income-sources/{id} applies a partial update.
// DELETE /api/income-sources/{id} removes the source.
func (s *Server) handleIncomeSourceByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var patch core.IncomeSourcePatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		if !s.store.UpdateIncomeSource(id, patch) {
			writeError(w, http.StatusNotFound, "income source not found")
			return
		}
		s.store.RecomputeSavings()
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusOK, s.store.Snapshot().IncomeSources)

	case http.MethodDelete:
		if !s.store.RemoveIncomeSource(id) {
			writeError(w, http.StatusNotFound, "income source not found")
			return
		}
		s.store.RecomputeSavings()
		if !s.persist(r.Context(), w) {
			return
		}
		slog.InfoContext(r.Context(), "Income source removed", "source_id", id)
		writeJSON(w, http.StatusOK, s.store.Snapshot().IncomeSources)

	default:
		methodNotAllowed(w, "PATCH, PUT, DELETE")
	}
}

// POST /api/income-sources/{id}/select marks the source as selected.
func (s *Server) handleSelectIncomeSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	id := r.PathValue("id")
	if !s.store.SelectIncomeSource(id) {
		writeError(w, http.StatusNotFound, "income source not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"selectedSourceId": id})
}
