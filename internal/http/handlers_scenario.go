package http

import (
	"log/slog"
	"net/http"
	"strings"
)

type nameRequest struct {
	Name string `json:"name"`
}

// POST /api/people adds a person to the current scenario and switches the
// active working set to them.
func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, ok := s.store.AddPerson(req.Name)
	if !ok {
		writeError(w, http.StatusConflict, "person name is empty or already taken")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}

	slog.InfoContext(r.Context(), "Person added", "person", id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "name": req.Name})
}

// DELETE /api/people/{id} removes a person; the last person in a scenario
// cannot be removed.
func (s *Server) handlePersonByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := r.PathValue("id")
	if !s.store.DeletePerson(id) {
		writeError(w, http.StatusConflict, "person not found or is the last one")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// POST /api/people/{id}/switch loads the person's data into the active
// working set.
func (s *Server) handleSwitchPerson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	id := r.PathValue("id")
	if !s.store.SwitchPerson(id) {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// POST /api/scenarios saves the active working set under the given name,
// creating the scenario if needed.
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if !s.store.SaveScenario(name) {
		writeError(w, http.StatusBadRequest, "scenario name is empty")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}

	slog.InfoContext(r.Context(), "Scenario saved", "scenario", name)
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

// DELETE /api/scenarios/{name} removes a scenario. Deleting the current
// scenario falls back to another one when available.
func (s *Server) handleScenarioByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	name := r.PathValue("name")
	if !s.store.DeleteScenario(name) {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// POST /api/scenarios/{name}/load replaces the active working set with the
// named scenario's data.
func (s *Server) handleLoadScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	name := r.PathValue("name")
	if !s.store.LoadScenario(name) {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}

	slog.InfoContext(r.Context(), "Scenario loaded", "scenario", name)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}
