// Package tax computes gross and net annual income for a set of income
// sources. Federal and state taxes use marginal bracket tables, payroll
// taxes are flat rates (social security wage-capped, Medicare uncapped).
// Everything here is a pure function of its inputs.
package tax

import (
	"math"

	"budget/internal/core"
)

// Bracket taxes the income range [Min, Max) at a single marginal rate.
// Tables are ordered, contiguous, and end with Max = +Inf.
type Bracket struct {
	Min  float64
	Max  float64
	Rate float64
}

// FederalBrackets is the 2024 single-filer table. Filing status is tracked
// on scenarios but these tables are not parameterized by it.
var FederalBrackets = []Bracket{
	{Min: 0, Max: 11000, Rate: 0.10},
	{Min: 11000, Max: 44725, Rate: 0.12},
	{Min: 44725, Max: 95375, Rate: 0.22},
	{Min: 95375, Max: 182100, Rate: 0.24},
	{Min: 182100, Max: 231250, Rate: 0.32},
	{Min: 231250, Max: 578125, Rate: 0.35},
	{Min: 578125, Max: math.Inf(1), Rate: 0.37},
}

// StateBrackets maps a jurisdiction code to its 2024 bracket table. Adding
// a state means adding an entry here, nothing else. Unknown codes mean zero
// state tax.
var StateBrackets = map[string][]Bracket{
	"WI": {
		{Min: 0, Max: 14430, Rate: 0.035},
		{Min: 14430, Max: 28850, Rate: 0.045},
		{Min: 28850, Max: 31610, Rate: 0.053},
		{Min: 31610, Max: math.Inf(1), Rate: 0.0615},
	},
}

const (
	OvertimeThreshold  = 40.0 // hours per week before overtime pay
	OvertimeMultiplier = 1.5
	WeeksPerYear       = 52.0

	SocialSecurityRate    = 0.062
	SocialSecurityWageCap = 168600.0
	MedicareRate          = 0.0145
)

// Breakdown itemizes the taxes withheld from a gross annual income.
type Breakdown struct {
	Federal        float64 `json:"federalTax"`
	State          float64 `json:"stateTax"`
	SocialSecurity float64 `json:"ssTax"`
	Medicare       float64 `json:"medicareTax"`
	Total          float64 `json:"total"`
}

// Result pairs gross and net annual income with the tax breakdown.
type Result struct {
	Gross float64   `json:"gross"`
	Net   float64   `json:"net"`
	Taxes Breakdown `json:"breakdown"`
}

// AnnualGross returns one source's annual pre-tax earnings. Hourly sources
// split the week at the overtime threshold and pay time and a half above
// it, annualized over 52 weeks. Salary sources report their gross directly.
func AnnualGross(src core.IncomeSource) float64 {
	switch src.Type {
	case core.Hourly:
		rate := core.Num(src.HourlyRate)
		hours := core.Num(src.HoursPerWeek)
		base := math.Min(hours, OvertimeThreshold)
		overtime := math.Max(hours-OvertimeThreshold, 0)
		return (rate*base + rate*OvertimeMultiplier*overtime) * WeeksPerYear
	default:
		return core.Num(src.GrossSalary)
	}
}

// GrossIncome sums annual gross across all sources.
func GrossIncome(sources []core.IncomeSource) float64 {
	var total float64
	for _, src := range sources {
		total += AnnualGross(src)
	}
	return total
}

// BracketTax applies marginal-rate taxation: each bracket taxes only the
// slice of gross that falls inside it. Iteration stops at the bracket that
// contains gross.
func BracketTax(gross float64, brackets []Bracket) float64 {
	gross = core.Num(gross)
	var total float64
	for _, b := range brackets {
		taxable := math.Min(gross, b.Max) - b.Min
		if taxable > 0 {
			total += taxable * b.Rate
		}
		if gross < b.Max {
			break
		}
	}
	return total
}

// TotalTaxes itemizes federal, state, and payroll taxes on a gross annual
// income. An unknown state code yields zero state tax, not an error.
func TotalTaxes(gross float64, state string) Breakdown {
	gross = core.Num(gross)
	b := Breakdown{
		Federal:        BracketTax(gross, FederalBrackets),
		State:          BracketTax(gross, StateBrackets[state]),
		SocialSecurity: math.Min(gross, SocialSecurityWageCap) * SocialSecurityRate,
		Medicare:       gross * MedicareRate,
	}
	b.Total = b.Federal + b.State + b.SocialSecurity + b.Medicare
	return b
}

// NetIncome is the calculator's single entry point: gross across all
// sources, the full tax breakdown for the jurisdiction, and what is left.
// Cheap enough to call on every keystroke.
func NetIncome(sources []core.IncomeSource, state string) Result {
	gross := GrossIncome(sources)
	taxes := TotalTaxes(gross, state)
	return Result{
		Gross: gross,
		Net:   gross - taxes.Total,
		Taxes: taxes,
	}
}
