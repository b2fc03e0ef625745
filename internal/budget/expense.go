package budget

import (
	"budget/internal/core"
	"budget/internal/tax"
)

// AddExpense appends an expense to the active working set, generating an id
// when absent, and mirrors it into the current scenario.
func (s *Store) AddExpense(e core.Expense) core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = s.idFn()
	}
	e.Amount = core.Num(e.Amount)
	s.state.Expenses = append(s.state.Expenses, e)
	s.writeThrough()
	return e
}

// UpdateExpense merges the patch into the matching expense; unknown ids are
// a no-op.
func (s *Store) UpdateExpense(id string, patch core.ExpensePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Expenses {
		if s.state.Expenses[i].ID == id {
			patch.Apply(&s.state.Expenses[i])
			s.writeThrough()
			return true
		}
	}
	return false
}

// RemoveExpense deletes the expense. Protected ids (rent and the derived
// savings row by default) are rejected; the savings row is managed through
// the recompute rule instead.
func (s *Store) RemoveExpense(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.protected[id] {
		return false
	}
	return s.removeExpenseLocked(id)
}

func (s *Store) removeExpenseLocked(id string) bool {
	for i := range s.state.Expenses {
		if s.state.Expenses[i].ID == id {
			s.state.Expenses = append(s.state.Expenses[:i], s.state.Expenses[i+1:]...)
			s.writeThrough()
			return true
		}
	}
	return false
}

// SetSavingsMode updates the savings policy only; it does not recompute the
// savings expense. Callers run RecomputeSavings when mode, percent, or net
// income change.
func (s *Store) SetSavingsMode(mode core.SavingsMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SavingsMode = mode
	s.writeThrough()
}

// SetCustomSavings updates the custom savings percent only.
func (s *Store) SetCustomSavings(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CustomSavings = core.Num(percent)
	s.writeThrough()
}

// RecomputeSavings derives the savings expense row from the current savings
// mode and net income: mode "none" removes the row, any other mode upserts
// {id: "savings", name: "Savings"} at Round2(monthlyNet * percent).
// Idempotent: unchanged inputs produce no further change. Returns the
// resulting monthly savings amount.
func (s *Store) RecomputeSavings() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SavingsMode == core.SavingsNone {
		s.removeExpenseLocked(core.SavingsExpenseID)
		return 0
	}

	net := tax.NetIncome(s.state.IncomeSources, s.jurisdictionLocked()).Net
	percent := core.SavingsPercent(s.state.SavingsMode, s.state.CustomSavings)
	amount := core.Round2(net / 12 * percent)

	for i := range s.state.Expenses {
		if s.state.Expenses[i].ID == core.SavingsExpenseID {
			s.state.Expenses[i].Name = "Savings"
			s.state.Expenses[i].Amount = amount
			s.state.Expenses[i].IsSavings = true
			s.writeThrough()
			return amount
		}
	}
	s.state.Expenses = append(s.state.Expenses, core.Expense{
		ID:        core.SavingsExpenseID,
		Name:      "Savings",
		Amount:    amount,
		IsSavings: true,
	})
	s.writeThrough()
	return amount
}

// jurisdictionLocked picks the tax jurisdiction for the active working set:
// the first income source's state, falling back to WI.
func (s *Store) jurisdictionLocked() string {
	for _, src := range s.state.IncomeSources {
		if src.State != "" {
			return src.State
		}
	}
	return "WI"
}
