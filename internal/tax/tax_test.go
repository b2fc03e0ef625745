package tax

import (
	"math"
	"testing"

	"budget/internal/core"
)

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestAnnualGross(t *testing.T) {
	cases := []struct {
		name string
		src  core.IncomeSource
		want float64
	}{
		{
			name: "hourly no overtime",
			src:  core.IncomeSource{Type: core.Hourly, HourlyRate: 25, HoursPerWeek: 40},
			want: 52000, // 25 * 40 * 52
		},
		{
			name: "hourly with overtime",
			src:  core.IncomeSource{Type: core.Hourly, HourlyRate: 25, HoursPerWeek: 50},
			want: 71500, // (25*40 + 25*1.5*10) * 52
		},
		{
			name: "hourly part time",
			src:  core.IncomeSource{Type: core.Hourly, HourlyRate: 20, HoursPerWeek: 10},
			want: 10400,
		},
		{
			name: "salary",
			src:  core.IncomeSource{Type: core.Salary, GrossSalary: 85000},
			want: 85000,
		},
		{
			name: "zero value source",
			src:  core.IncomeSource{Type: core.Hourly},
			want: 0,
		},
		{
			name: "nan inputs coerced to zero",
			src:  core.IncomeSource{Type: core.Hourly, HourlyRate: math.NaN(), HoursPerWeek: 40},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AnnualGross(tc.src)
			if !closeEnough(got, tc.want) {
				t.Errorf("AnnualGross() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGrossIncomeSumsSources(t *testing.T) {
	sources := []core.IncomeSource{
		{Type: core.Hourly, HourlyRate: 25, HoursPerWeek: 40},
		{Type: core.Salary, GrossSalary: 30000},
	}
	if got := GrossIncome(sources); !closeEnough(got, 82000) {
		t.Errorf("GrossIncome() = %v, want 82000", got)
	}
	if got := GrossIncome(nil); got != 0 {
		t.Errorf("GrossIncome(nil) = %v, want 0", got)
	}
}

func TestBracketTax(t *testing.T) {
	cases := []struct {
		name     string
		gross    float64
		brackets []Bracket
		want     float64
	}{
		{"zero gross", 0, FederalBrackets, 0},
		{"inside first bracket", 10000, FederalBrackets, 1000},
		{"exactly first bracket", 11000, FederalBrackets, 1100},
		{"across three brackets", 50000, FederalBrackets, 6307.50},
		{"empty table", 50000, nil, 0},
		{"wisconsin", 31610, StateBrackets["WI"], 1300.22},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BracketTax(tc.gross, tc.brackets)
			if !closeEnough(got, tc.want) {
				t.Errorf("BracketTax(%v) = %v, want %v", tc.gross, got, tc.want)
			}
		})
	}
}

func TestBracketTaxNonDecreasing(t *testing.T) {
	prev := 0.0
	for gross := 0.0; gross <= 700000; gross += 1250 {
		got := BracketTax(gross, FederalBrackets)
		if got < prev {
			t.Fatalf("tax decreased: BracketTax(%v) = %v < %v", gross, got, prev)
		}
		prev = got
	}
}

func TestTotalTaxes(t *testing.T) {
	b := TotalTaxes(200000, "WI")

	// Social security stops at the wage cap.
	if !closeEnough(b.SocialSecurity, 10453.20) {
		t.Errorf("SocialSecurity = %v, want 10453.20", b.SocialSecurity)
	}
	higher := TotalTaxes(300000, "WI")
	if !closeEnough(higher.SocialSecurity, b.SocialSecurity) {
		t.Errorf("SocialSecurity grew past the wage cap: %v", higher.SocialSecurity)
	}

	// Medicare is uncapped.
	if !closeEnough(b.Medicare, 2900) {
		t.Errorf("Medicare = %v, want 2900", b.Medicare)
	}

	want := b.Federal + b.State + b.SocialSecurity + b.Medicare
	if !closeEnough(b.Total, want) {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}
}

func TestTotalTaxesUnknownState(t *testing.T) {
	b := TotalTaxes(60000, "ZZ")
	if b.State != 0 {
		t.Errorf("unknown state should yield zero state tax, got %v", b.State)
	}
	if b.Federal == 0 {
		t.Error("federal tax should still apply")
	}
}

func TestNetIncome(t *testing.T) {
	sources := []core.IncomeSource{
		{Type: core.Hourly, HourlyRate: 25, HoursPerWeek: 40, State: "WI"},
	}
	res := NetIncome(sources, "WI")

	if !closeEnough(res.Gross, 52000) {
		t.Errorf("Gross = %v, want 52000", res.Gross)
	}
	if !closeEnough(res.Net, res.Gross-res.Taxes.Total) {
		t.Errorf("Net = %v, want gross minus taxes %v", res.Net, res.Gross-res.Taxes.Total)
	}
	if res.Net >= res.Gross {
		t.Error("net should be below gross for positive income")
	}

	empty := NetIncome(nil, "WI")
	if empty.Gross != 0 || empty.Net != 0 || empty.Taxes.Total != 0 {
		t.Errorf("empty sources should be all zero, got %+v", empty)
	}
}
