package http

import (
	"net/http"

	"budget/internal/budget"
	"budget/internal/tax"
)

// GET /api/state returns the full state snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// GET /api/net-income returns the annual net income of the active working
// set with its tax breakdown, plus the derived monthly figures.
func (s *Server) handleNetIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	st := s.store.Snapshot()
	result := budget.ActiveNetIncome(st)

	writeJSON(w, http.StatusOK, struct {
		Jurisdiction    string        `json:"jurisdiction"`
		GrossIncome     float64       `json:"grossIncome"`
		NetIncome       float64       `json:"netIncome"`
		MonthlyNet      float64       `json:"monthlyNet"`
		TotalExpenses   float64       `json:"totalExpenses"`
		MonthlyLeftover float64       `json:"monthlyLeftover"`
		Breakdown       tax.Breakdown `json:"breakdown"`
	}{
		Jurisdiction:    budget.ActiveJurisdiction(st),
		GrossIncome:     result.Gross,
		NetIncome:       result.Net,
		MonthlyNet:      result.Net / 12,
		TotalExpenses:   budget.TotalExpenses(st),
		MonthlyLeftover: budget.MonthlyLeftover(st),
		Breakdown:       result.Taxes,
	})
}
