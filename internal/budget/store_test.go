package budget

import (
	"fmt"
	"testing"
	"time"

	"budget/internal/core"
)

func testStore() *Store {
	n := 0
	return New(
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func ptr[T any](v T) *T { return &v }

func TestDefaultState(t *testing.T) {
	st := testStore().Snapshot()

	if st.CurrentScenario != "Main" {
		t.Errorf("CurrentScenario = %q, want Main", st.CurrentScenario)
	}
	if st.CurrentPersonID != "you" {
		t.Errorf("CurrentPersonID = %q, want you", st.CurrentPersonID)
	}
	if len(st.IncomeSources) != 1 || st.IncomeSources[0].ID != "primary" {
		t.Fatalf("unexpected default income sources: %+v", st.IncomeSources)
	}
	if st.SelectedSourceID != "primary" {
		t.Errorf("SelectedSourceID = %q, want primary", st.SelectedSourceID)
	}
	if len(st.Expenses) != 1 || st.Expenses[0].ID != "rent" {
		t.Fatalf("unexpected default expenses: %+v", st.Expenses)
	}
}

func TestAddIncomeSourceMirrorsIntoScenario(t *testing.T) {
	s := testStore()
	added := s.AddIncomeSource(core.IncomeSource{Label: "Side Gig", Type: core.Salary, GrossSalary: 12000})

	if added.ID == "" {
		t.Fatal("expected generated id")
	}
	if added.CreatedAt.IsZero() {
		t.Fatal("expected stamped CreatedAt")
	}

	st := s.Snapshot()
	person := st.Scenarios["Main"].People["you"]
	if len(person.IncomeSources) != 2 {
		t.Fatalf("scenario person has %d sources, want 2", len(person.IncomeSources))
	}
	if person.IncomeSources[1].Label != "Side Gig" {
		t.Errorf("mirrored source label = %q", person.IncomeSources[1].Label)
	}
}

func TestUpdateIncomeSourcePatchSemantics(t *testing.T) {
	s := testStore()

	if !s.UpdateIncomeSource("primary", core.IncomeSourcePatch{HourlyRate: ptr(30.0)}) {
		t.Fatal("update of existing source should report true")
	}
	st := s.Snapshot()
	src := st.IncomeSources[0]
	if src.HourlyRate != 30 {
		t.Errorf("HourlyRate = %v, want 30", src.HourlyRate)
	}
	// Unspecified fields stay put.
	if src.HoursPerWeek != 40 || src.Label != "Primary Job" {
		t.Errorf("unpatched fields changed: %+v", src)
	}

	if s.UpdateIncomeSource("nope", core.IncomeSourcePatch{HourlyRate: ptr(1.0)}) {
		t.Error("update of unknown id should be a no-op reporting false")
	}
}

func TestRemoveIncomeSourceSelectionFallback(t *testing.T) {
	s := testStore()
	second := s.AddIncomeSource(core.IncomeSource{Label: "Second", Type: core.Salary, GrossSalary: 1000})

	if !s.SelectIncomeSource(second.ID) {
		t.Fatal("select existing source")
	}
	if !s.RemoveIncomeSource(second.ID) {
		t.Fatal("remove selected source")
	}
	if st := s.Snapshot(); st.SelectedSourceID != "primary" {
		t.Errorf("selection should fall back to first remaining, got %q", st.SelectedSourceID)
	}

	if !s.RemoveIncomeSource("primary") {
		t.Fatal("remove last source")
	}
	if st := s.Snapshot(); st.SelectedSourceID != "" {
		t.Errorf("selection should clear when no sources remain, got %q", st.SelectedSourceID)
	}

	if s.RemoveIncomeSource("primary") {
		t.Error("removing an already-removed id should report false")
	}
}

func TestRemoveExpenseProtectedIDs(t *testing.T) {
	s := testStore()

	if s.RemoveExpense("rent") {
		t.Error("rent must not be removable")
	}
	if len(s.Snapshot().Expenses) != 1 {
		t.Fatal("protected removal must leave state unchanged")
	}

	e := s.AddExpense(core.Expense{Name: "Utilities", Amount: 120})
	if !s.RemoveExpense(e.ID) {
		t.Error("regular expense should be removable")
	}
}

func TestRecomputeSavingsIdempotent(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsTwenty)

	first := s.RecomputeSavings()
	if first <= 0 {
		t.Fatalf("expected positive savings amount, got %v", first)
	}
	second := s.RecomputeSavings()
	if first != second {
		t.Errorf("recompute drifted: %v then %v", first, second)
	}

	st := s.Snapshot()
	var rows int
	for _, e := range st.Expenses {
		if e.ID == "savings" {
			rows++
			if !e.IsSavings || e.Name != "Savings" || e.Amount != first {
				t.Errorf("unexpected savings row: %+v", e)
			}
		}
	}
	if rows != 1 {
		t.Fatalf("expected exactly one savings row, got %d", rows)
	}
}

func TestRecomputeSavingsModeNoneRemovesRow(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsTen)
	s.RecomputeSavings()

	s.SetSavingsMode(core.SavingsNone)
	if got := s.RecomputeSavings(); got != 0 {
		t.Errorf("mode none should yield 0, got %v", got)
	}
	for _, e := range s.Snapshot().Expenses {
		if e.ID == "savings" {
			t.Fatal("savings row should be removed in mode none")
		}
	}
}

func TestRecomputeSavingsCustomPercent(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsCustom)
	s.SetCustomSavings(7.5)

	got := s.RecomputeSavings()
	net := ActiveNetIncome(s.Snapshot()).Net
	want := core.Round2(net / 12 * 0.075)
	if got != want {
		t.Errorf("custom savings = %v, want %v", got, want)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := testStore()
	st := s.Snapshot()
	st.IncomeSources[0].HourlyRate = 999
	st.Scenarios["Main"].People["you"].Expenses[0].Amount = 999

	fresh := s.Snapshot()
	if fresh.IncomeSources[0].HourlyRate == 999 {
		t.Error("mutating a snapshot leaked into the store")
	}
	if fresh.Scenarios["Main"].People["you"].Expenses[0].Amount == 999 {
		t.Error("mutating a snapshot's scenario leaked into the store")
	}
}
