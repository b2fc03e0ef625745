package core

// Patch types carry partial updates: nil fields leave the target unchanged.
// They replace ad hoc field merging at the API boundary with an explicit,
// typed contract.

type IncomeSourcePatch struct {
	Label        *string     `json:"label,omitempty"`
	Type         *IncomeType `json:"type,omitempty"`
	HourlyRate   *float64    `json:"hourlyRate,omitempty"`
	HoursPerWeek *float64    `json:"hoursPerWeek,omitempty"`
	GrossSalary  *float64    `json:"grossSalary,omitempty"`
	State        *string     `json:"state,omitempty"`
}

// Apply merges the patch into the source, coercing garbage numbers to zero.
func (p IncomeSourcePatch) Apply(src *IncomeSource) {
	if p.Label != nil {
		src.Label = *p.Label
	}
	if p.Type != nil {
		src.Type = *p.Type
	}
	if p.HourlyRate != nil {
		src.HourlyRate = Num(*p.HourlyRate)
	}
	if p.HoursPerWeek != nil {
		src.HoursPerWeek = Num(*p.HoursPerWeek)
	}
	if p.GrossSalary != nil {
		src.GrossSalary = Num(*p.GrossSalary)
	}
	if p.State != nil {
		src.State = *p.State
	}
}

type ExpensePatch struct {
	Name   *string  `json:"name,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// Apply merges the patch into the expense.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Amount != nil {
		e.Amount = Num(*p.Amount)
	}
}
