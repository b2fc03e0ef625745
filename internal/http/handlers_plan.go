package http

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"budget/internal/budget"
	"budget/internal/core"
)

// Month keys are YYYY-MM throughout the plan and savings-log maps.
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func parseMonth(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := r.PathValue("month")
	if !monthPattern.MatchString(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return "", false
	}
	return month, true
}

// GET /api/scenarios/{name}/plan derives a plan snapshot without
// committing it, for previewing a scenario's monthly numbers.
func (s *Server) handleScenarioPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	name := r.PathValue("name")
	plan, ok := s.store.BuildMonthlyPlan(name)
	if !ok {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type commitPlanRequest struct {
	Scenario string `json:"scenario"`
}

// GET /api/plans/{month} returns the month's overview.
// POST /api/plans/{month} commits a scenario's plan to the month.
// DELETE /api/plans/{month} removes the plan and its actuals.
func (s *Server) handlePlanByMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := parseMonth(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, budget.OverviewFor(s.store.Snapshot(), month))

	case http.MethodPost:
		var req commitPlanRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		scenario := req.Scenario
		if scenario == "" {
			scenario = s.store.Snapshot().CurrentScenario
		}

		plan, ok := s.store.BuildMonthlyPlan(scenario)
		if !ok {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		committed := s.store.SaveMonthlyPlan(month, plan)
		if !s.persist(r.Context(), w) {
			return
		}

		slog.InfoContext(r.Context(), "Monthly plan committed",
			"month", month,
			"scenario", scenario,
			"plan_id", committed.ID)

		if s.publisher != nil {
			// Sheet sync is eventual; a publish failure never fails
			// the commit.
			if err := s.publisher.PublishPlanSync(r.Context(), month, committed.ID); err != nil {
				slog.WarnContext(r.Context(), "Failed to publish plan sync event",
					"month", month,
					"plan_id", committed.ID,
					"error", err)
			}
		}
		writeJSON(w, http.StatusCreated, committed)

	case http.MethodDelete:
		if !s.store.RemoveMonthlyPlan(month) {
			writeError(w, http.StatusNotFound, "no plan for month")
			return
		}
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"month": month})

	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// PATCH /api/plans/{month}/actuals/expenses/{id} updates a tracked
// actual expense.
func (s *Server) handleActualExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch && r.Method != http.MethodPut {
		methodNotAllowed(w, "PATCH, PUT")
		return
	}

	month, ok := parseMonth(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var patch core.ExpensePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if !s.store.UpdateActualExpense(month, id, patch) {
		writeError(w, http.StatusNotFound, "actual expense not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, budget.OverviewFor(s.store.Snapshot(), month))
}

// PATCH /api/plans/{month}/actuals/income/{id} updates a tracked actual
// income source.
func (s *Server) handleActualIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch && r.Method != http.MethodPut {
		methodNotAllowed(w, "PATCH, PUT")
		return
	}

	month, ok := parseMonth(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var patch core.IncomeSourcePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if !s.store.UpdateActualIncome(month, id, patch) {
		writeError(w, http.StatusNotFound, "actual income source not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, budget.OverviewFor(s.store.Snapshot(), month))
}

// POST /api/plans/{month}/savings-log appends a savings contribution.
// DELETE /api/plans/{month}/savings-log resets the month's log.
func (s *Server) handleSavingsLog(w http.ResponseWriter, r *http.Request) {
	month, ok := parseMonth(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var entry core.SavingsEntry
		if !decodeJSON(w, r, &entry) {
			return
		}
		added := s.store.AddSavingsEntry(month, entry)
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusCreated, added)

	case http.MethodDelete:
		s.store.ResetSavingsLog(month)
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"month": month})

	default:
		methodNotAllowed(w, "POST, DELETE")
	}
}

// DELETE /api/plans/{month}/savings-log/{index} removes one entry by
// position.
func (s *Server) handleSavingsLogEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	month, ok := parseMonth(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if !s.store.DeleteSavingsEntry(month, index) {
		writeError(w, http.StatusNotFound, "savings entry not found")
		return
	}
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusOK, budget.OverviewFor(s.store.Snapshot(), month))
}
