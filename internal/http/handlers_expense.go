package http

import (
	"log/slog"
	"net/http"

	"budget/internal/core"
)

// POST /api/expenses adds an expense to the active working set.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req core.Expense
	if !decodeJSON(w, r, &req) {
		return
	}

	e := s.store.AddExpense(req)
	if !s.persist(r.Context(), w) {
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// PATCH /api/expenses/{id} applies a partial update.
// DELETE /api/expenses/{id} removes the expense; the rent and savings rows
// are protected and refuse deletion.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var patch core.ExpensePatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		if !s.store.UpdateExpense(id, patch) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusOK, s.store.Snapshot().Expenses)

	case http.MethodDelete:
		if !s.store.RemoveExpense(id) {
			writeError(w, http.StatusConflict, "expense is protected or not found")
			return
		}
		if !s.persist(r.Context(), w) {
			return
		}
		writeJSON(w, http.StatusOK, s.store.Snapshot().Expenses)

	default:
		methodNotAllowed(w, "PATCH, PUT, DELETE")
	}
}

type savingsRequest struct {
	Mode          *core.SavingsMode `json:"savingsMode,omitempty"`
	CustomSavings *float64          `json:"customSavings,omitempty"`
}

type savingsResponse struct {
	SavingsMode   core.SavingsMode `json:"savingsMode"`
	CustomSavings float64          `json:"customSavings"`
	MonthlyAmount float64          `json:"monthlyAmount"`
	Expenses      []core.Expense   `json:"expenses"`
}

// PUT /api/savings updates the savings policy and recomputes the derived
// savings expense row in one step.
// POST /api/savings recomputes without changing the policy, for use after
// income changes.
func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		var req savingsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Mode != nil {
			s.store.SetSavingsMode(*req.Mode)
		}
		if req.CustomSavings != nil {
			s.store.SetCustomSavings(*req.CustomSavings)
		}
	case http.MethodPost:
		// recompute only
	default:
		methodNotAllowed(w, "PUT, POST")
		return
	}

	amount := s.store.RecomputeSavings()
	if !s.persist(r.Context(), w) {
		return
	}

	st := s.store.Snapshot()
	slog.InfoContext(r.Context(), "Savings recomputed",
		"mode", string(st.SavingsMode),
		"amount", amount)
	writeJSON(w, http.StatusOK, savingsResponse{
		SavingsMode:   st.SavingsMode,
		CustomSavings: st.CustomSavings,
		MonthlyAmount: amount,
		Expenses:      st.Expenses,
	})
}
