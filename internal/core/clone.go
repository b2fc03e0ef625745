package core

import "math"

// Round2 rounds a dollar amount to cents, half away from zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Num coerces garbage numeric input to zero. The calculator and store are
// total functions over their inputs: a NaN or infinite amount never
// propagates, it just counts as nothing.
func Num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// The clone helpers below exist so working-set data never aliases scenario
// or plan snapshots. IncomeSource and Expense contain no reference fields
// today, but everything that crosses a snapshot boundary goes through these
// so adding one later cannot silently introduce sharing.

func CloneIncomeSources(sources []IncomeSource) []IncomeSource {
	if sources == nil {
		return nil
	}
	out := make([]IncomeSource, len(sources))
	copy(out, sources)
	return out
}

func CloneExpenses(expenses []Expense) []Expense {
	if expenses == nil {
		return nil
	}
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	return out
}

// Clone returns a deep copy of the person.
func (p Person) Clone() Person {
	return Person{
		Name:          p.Name,
		IncomeSources: CloneIncomeSources(p.IncomeSources),
		Expenses:      CloneExpenses(p.Expenses),
	}
}

// Clone returns a deep copy of the scenario, including all people.
func (s Scenario) Clone() Scenario {
	out := s
	if s.People != nil {
		out.People = make(map[string]Person, len(s.People))
		for id, p := range s.People {
			out.People[id] = p.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the plan snapshot.
func (p MonthlyPlan) Clone() MonthlyPlan {
	out := p
	out.IncomeSources = CloneIncomeSources(p.IncomeSources)
	out.Expenses = CloneExpenses(p.Expenses)
	return out
}

// Clone returns a deep copy of the month's actuals.
func (a MonthlyActual) Clone() MonthlyActual {
	return MonthlyActual{
		Income:   CloneIncomeSources(a.Income),
		Expenses: CloneExpenses(a.Expenses),
	}
}
