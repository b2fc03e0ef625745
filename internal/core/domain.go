package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Hourly IncomeType = "hourly"
	Salary IncomeType = "salary"
)

const (
	SavingsNone   SavingsMode = "none"
	SavingsTen    SavingsMode = "10"
	SavingsTwenty SavingsMode = "20"
	SavingsCustom SavingsMode = "custom"
)

// SingleFiler is the only filing status the bracket tables model. The field
// is carried on scenarios so configurations round-trip, but the tax tables
// are not parameterized by it.
const SingleFiler FilingStatus = "single"

// Expense ids with special treatment: the savings row is derived from the
// savings mode and owned by the store, the rent row is seeded on every new
// person and kept non-deletable.
const (
	SavingsExpenseID = "savings"
	RentExpenseID    = "rent"
)

type (
	IncomeType   string
	SavingsMode  string
	FilingStatus string

	// IncomeSource is one stream of earnings owned by a person. For hourly
	// sources the annual gross is always derived from rate and hours, never
	// stored.
	IncomeSource struct {
		ID           string     `json:"id"`
		Label        string     `json:"label"`
		Type         IncomeType `json:"type"`
		HourlyRate   float64    `json:"hourlyRate"`
		HoursPerWeek float64    `json:"hoursPerWeek"`
		GrossSalary  float64    `json:"grossSalary"`
		State        string     `json:"state"`
		CreatedAt    time.Time  `json:"createdAt"`
	}

	// Expense is a monthly line item. IsSavings marks the derived savings
	// contribution row.
	Expense struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Amount    float64 `json:"amount"`
		IsSavings bool    `json:"isSavings,omitempty"`
	}

	// Person owns its income sources and expenses inside a scenario.
	Person struct {
		Name          string         `json:"name"`
		IncomeSources []IncomeSource `json:"incomeSources"`
		Expenses      []Expense      `json:"expenses"`
	}

	// Scenario is a named household configuration. People are keyed by an
	// id unique within the scenario (default "you").
	Scenario struct {
		Name          string            `json:"name"`
		People        map[string]Person `json:"people"`
		SavingsMode   SavingsMode       `json:"savingsMode"`
		CustomSavings float64           `json:"customSavings"`
		FilingStatus  FilingStatus      `json:"filingStatus"`
	}

	// MonthlyPlan is an immutable snapshot of a scenario's projected
	// numbers, committed to a YYYY-MM month key.
	MonthlyPlan struct {
		ID             string         `json:"id"`
		CreatedAt      time.Time      `json:"createdAt"`
		ScenarioName   string         `json:"scenarioName"`
		IncomeSources  []IncomeSource `json:"incomeSources"`
		Expenses       []Expense      `json:"expenses"`
		SavingsMode    SavingsMode    `json:"savingsMode"`
		CustomSavings  float64        `json:"customSavings"`
		NetIncome      float64        `json:"netIncome"`
		SavingsPercent float64        `json:"savingsPercent"`
		TotalExpenses  float64        `json:"totalExpenses"`
		TotalSavings   float64        `json:"totalSavings"`
		EstLeftover    float64        `json:"estLeftover"`
	}

	// MonthlyActual holds the trackable income and expenses for a month.
	// Seeded once from the month's plan, then only changed explicitly.
	MonthlyActual struct {
		Income   []IncomeSource `json:"actualIncome"`
		Expenses []Expense      `json:"actualExpenses"`
	}

	// SavingsEntry is one logged contribution toward the month's savings.
	SavingsEntry struct {
		Amount float64   `json:"amount"`
		Date   time.Time `json:"date"`
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrDuplicatePerson = errors.New("person already exists")
)

// DefaultPersonID is the key of the person every scenario starts with.
const DefaultPersonID = "you"

// PersonID derives a scenario-unique key from a display name, lowercasing
// and joining words with dashes ("Jane Doe" -> "jane-doe").
func PersonID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

// SavingsPercent maps a savings mode to its fraction of monthly net income.
// Unknown modes behave like "none".
func SavingsPercent(mode SavingsMode, customPercent float64) float64 {
	switch mode {
	case SavingsTen:
		return 0.10
	case SavingsTwenty:
		return 0.20
	case SavingsCustom:
		return customPercent / 100
	default:
		return 0
	}
}
