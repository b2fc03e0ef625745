package budget

import (
	"budget/internal/core"
	"budget/internal/tax"
)

// Queries are pure functions over a state snapshot, so derived numbers can
// be computed anywhere without reaching back into the store.

// ActiveJurisdiction is the tax jurisdiction of the active working set: the
// first income source's state, falling back to WI.
func ActiveJurisdiction(st State) string {
	for _, src := range st.IncomeSources {
		if src.State != "" {
			return src.State
		}
	}
	return "WI"
}

// ActiveNetIncome computes the annual net income of the active working set.
func ActiveNetIncome(st State) tax.Result {
	return tax.NetIncome(st.IncomeSources, ActiveJurisdiction(st))
}

// TotalExpenses sums the active working set's monthly expense amounts.
func TotalExpenses(st State) float64 {
	var total float64
	for _, e := range st.Expenses {
		total += core.Num(e.Amount)
	}
	return total
}

// MonthlyLeftover is monthly net income minus total monthly expenses for
// the active working set.
func MonthlyLeftover(st State) float64 {
	return ActiveNetIncome(st).Net/12 - TotalExpenses(st)
}

// LoggedSavings sums the month's savings ledger.
func LoggedSavings(st State, month string) float64 {
	var total float64
	for _, entry := range st.SavingsLogs[month] {
		total += core.Num(entry.Amount)
	}
	return total
}

// PlanOverview combines a month's plan, actuals, and savings progress.
type PlanOverview struct {
	Month         string              `json:"month"`
	Plan          *core.MonthlyPlan   `json:"plan,omitempty"`
	Actual        *core.MonthlyActual `json:"actual,omitempty"`
	LoggedSavings float64             `json:"loggedSavings"`
	SavingsGoal   float64             `json:"savingsGoal"`
}

// OverviewFor builds the month's overview from a snapshot. Months without a
// committed plan still report logged savings.
func OverviewFor(st State, month string) PlanOverview {
	ov := PlanOverview{Month: month, LoggedSavings: LoggedSavings(st, month)}
	if plan, ok := st.MonthlyPlans[month]; ok {
		plan = plan.Clone()
		ov.Plan = &plan
		ov.SavingsGoal = plan.TotalSavings
	}
	if actual, ok := st.MonthlyActuals[month]; ok {
		actual = actual.Clone()
		ov.Actual = &actual
	}
	return ov
}
