package budget

import (
	"sort"

	"budget/internal/core"
	"budget/internal/tax"
)

// BuildMonthlyPlan derives a plan snapshot from a named scenario, combining
// every person's income sources and expenses. Income is projected monthly
// pre-withholding gross, matching how planned numbers were always shown;
// savings and leftover follow the scenario's savings policy.
func (s *Store) BuildMonthlyPlan(scenarioName string) (core.MonthlyPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.state.Scenarios[scenarioName]
	if !ok {
		return core.MonthlyPlan{}, false
	}

	var sources []core.IncomeSource
	var expenses []core.Expense
	for _, id := range sortedPersonIDs(sc) {
		person := sc.People[id]
		sources = append(sources, core.CloneIncomeSources(person.IncomeSources)...)
		expenses = append(expenses, core.CloneExpenses(person.Expenses)...)
	}

	monthlyIncome := tax.GrossIncome(sources) / 12
	percent := core.SavingsPercent(sc.SavingsMode, sc.CustomSavings)
	totalSavings := core.Round2(monthlyIncome * percent)

	var totalExpenses float64
	for _, e := range expenses {
		totalExpenses += core.Num(e.Amount)
	}

	return core.MonthlyPlan{
		ScenarioName:   scenarioName,
		IncomeSources:  sources,
		Expenses:       expenses,
		SavingsMode:    sc.SavingsMode,
		CustomSavings:  sc.CustomSavings,
		NetIncome:      monthlyIncome,
		SavingsPercent: percent,
		TotalExpenses:  totalExpenses,
		TotalSavings:   totalSavings,
		EstLeftover:    monthlyIncome - totalExpenses - totalSavings,
	}, true
}

// SaveMonthlyPlan commits a plan snapshot to a YYYY-MM month key, stamping
// a generated id and creation time. Actuals for the month are seeded from
// the plan only when none exist yet; re-saving a plan never clobbers
// tracked actuals.
func (s *Store) SaveMonthlyPlan(month string, plan core.MonthlyPlan) core.MonthlyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan = plan.Clone()
	plan.ID = s.idFn()
	plan.CreatedAt = s.nowFn()
	s.state.MonthlyPlans[month] = plan

	if _, exists := s.state.MonthlyActuals[month]; !exists {
		s.state.MonthlyActuals[month] = core.MonthlyActual{
			Income:   core.CloneIncomeSources(plan.IncomeSources),
			Expenses: core.CloneExpenses(plan.Expenses),
		}
	}
	return plan.Clone()
}

// RemoveMonthlyPlan deletes both the plan and its actuals for the month.
func (s *Store) RemoveMonthlyPlan(month string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.state.MonthlyPlans[month]
	delete(s.state.MonthlyPlans, month)
	delete(s.state.MonthlyActuals, month)
	return ok
}

// UpdateActualExpense merges a patch into one of the month's tracked
// expenses. Only explicit actual updates may change actuals.
func (s *Store) UpdateActualExpense(month, id string, patch core.ExpensePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	actual, ok := s.state.MonthlyActuals[month]
	if !ok {
		return false
	}
	for i := range actual.Expenses {
		if actual.Expenses[i].ID == id {
			patch.Apply(&actual.Expenses[i])
			s.state.MonthlyActuals[month] = actual
			return true
		}
	}
	return false
}

// UpdateActualIncome merges a patch into one of the month's tracked
// income sources, symmetric to UpdateActualExpense.
func (s *Store) UpdateActualIncome(month, id string, patch core.IncomeSourcePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	actual, ok := s.state.MonthlyActuals[month]
	if !ok {
		return false
	}
	for i := range actual.Income {
		if actual.Income[i].ID == id {
			patch.Apply(&actual.Income[i])
			s.state.MonthlyActuals[month] = actual
			return true
		}
	}
	return false
}

// AddSavingsEntry appends one logged contribution to the month's savings
// ledger, stamping the date when absent.
func (s *Store) AddSavingsEntry(month string, entry core.SavingsEntry) core.SavingsEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Amount = core.Num(entry.Amount)
	if entry.Date.IsZero() {
		entry.Date = s.nowFn()
	}
	s.state.SavingsLogs[month] = append(s.state.SavingsLogs[month], entry)
	return entry
}

// DeleteSavingsEntry removes the entry at the given position; out-of-range
// indexes are a no-op.
func (s *Store) DeleteSavingsEntry(month string, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.state.SavingsLogs[month]
	if index < 0 || index >= len(entries) {
		return false
	}
	s.state.SavingsLogs[month] = append(entries[:index], entries[index+1:]...)
	return true
}

// ResetSavingsLog clears the whole month's ledger.
func (s *Store) ResetSavingsLog(month string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.SavingsLogs, month)
}

func sortedPersonIDs(sc core.Scenario) []string {
	ids := make([]string, 0, len(sc.People))
	for id := range sc.People {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
