package budget

import (
	"testing"
	"time"

	"budget/internal/core"
)

func TestBuildMonthlyPlan(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsTen)

	plan, ok := s.BuildMonthlyPlan("Main")
	if !ok {
		t.Fatal("build plan for existing scenario")
	}

	// Default person: $25/h, 40 h/wk -> 52000/yr -> 4333.33/mo.
	wantIncome := 52000.0 / 12
	if diff := plan.NetIncome - wantIncome; diff > 0.01 || diff < -0.01 {
		t.Errorf("NetIncome = %v, want %v", plan.NetIncome, wantIncome)
	}
	if plan.SavingsPercent != 0.10 {
		t.Errorf("SavingsPercent = %v, want 0.10", plan.SavingsPercent)
	}
	if plan.TotalSavings != core.Round2(wantIncome*0.10) {
		t.Errorf("TotalSavings = %v", plan.TotalSavings)
	}
	if plan.TotalExpenses != 1000 {
		t.Errorf("TotalExpenses = %v, want 1000", plan.TotalExpenses)
	}
	wantLeftover := wantIncome - 1000 - plan.TotalSavings
	if diff := plan.EstLeftover - wantLeftover; diff > 0.01 || diff < -0.01 {
		t.Errorf("EstLeftover = %v, want %v", plan.EstLeftover, wantLeftover)
	}

	if _, ok := s.BuildMonthlyPlan("missing"); ok {
		t.Error("building a plan for an unknown scenario should report false")
	}
}

func TestBuildMonthlyPlanCombinesPeople(t *testing.T) {
	s := testStore()
	s.AddPerson("Sam") // second person with the same seed data

	plan, _ := s.BuildMonthlyPlan("Main")
	if len(plan.IncomeSources) != 2 {
		t.Errorf("plan should combine both people's sources, got %d", len(plan.IncomeSources))
	}
	if plan.TotalExpenses != 2000 {
		t.Errorf("TotalExpenses = %v, want 2000", plan.TotalExpenses)
	}
}

func TestSaveMonthlyPlanSeedsActualsOnce(t *testing.T) {
	s := testStore()
	plan, _ := s.BuildMonthlyPlan("Main")

	saved := s.SaveMonthlyPlan("2024-06", plan)
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatal("saved plan should be stamped with id and timestamp")
	}

	// Change the tracked actuals, then re-save the plan.
	if !s.UpdateActualExpense("2024-06", "rent", core.ExpensePatch{Amount: ptr(1234.0)}) {
		t.Fatal("update seeded actual")
	}
	s.SaveMonthlyPlan("2024-06", plan)

	st := s.Snapshot()
	actual := st.MonthlyActuals["2024-06"]
	if actual.Expenses[0].Amount != 1234 {
		t.Errorf("re-saving a plan clobbered actuals: %+v", actual.Expenses[0])
	}
}

func TestUpdateActualIncome(t *testing.T) {
	s := testStore()
	plan, _ := s.BuildMonthlyPlan("Main")
	s.SaveMonthlyPlan("2024-06", plan)

	if !s.UpdateActualIncome("2024-06", "primary", core.IncomeSourcePatch{HoursPerWeek: ptr(32.0)}) {
		t.Fatal("update seeded actual income")
	}
	if s.UpdateActualIncome("2024-06", "ghost", core.IncomeSourcePatch{}) {
		t.Error("unknown source id should be a no-op")
	}
	if s.UpdateActualIncome("2030-01", "primary", core.IncomeSourcePatch{}) {
		t.Error("month without actuals should be a no-op")
	}

	st := s.Snapshot()
	actual := st.MonthlyActuals["2024-06"]
	if actual.Income[0].HoursPerWeek != 32 {
		t.Errorf("actual income = %+v, want 32 h/wk", actual.Income[0])
	}
	// The committed plan keeps its own copy.
	if st.MonthlyPlans["2024-06"].IncomeSources[0].HoursPerWeek != 40 {
		t.Error("actual income update leaked into the committed plan")
	}
}

func TestSaveMonthlyPlanSnapshotIsImmutable(t *testing.T) {
	s := testStore()
	plan, _ := s.BuildMonthlyPlan("Main")
	s.SaveMonthlyPlan("2024-06", plan)

	// Keep editing the active set; the committed snapshot must not move.
	s.UpdateIncomeSource("primary", core.IncomeSourcePatch{HourlyRate: ptr(99.0)})

	got := s.Snapshot().MonthlyPlans["2024-06"]
	if got.IncomeSources[0].HourlyRate != 25 {
		t.Errorf("committed plan changed after the fact: %v", got.IncomeSources[0].HourlyRate)
	}
}

func TestRemoveMonthlyPlanDeletesActuals(t *testing.T) {
	s := testStore()
	plan, _ := s.BuildMonthlyPlan("Main")
	s.SaveMonthlyPlan("2024-06", plan)

	if !s.RemoveMonthlyPlan("2024-06") {
		t.Fatal("remove existing plan")
	}
	st := s.Snapshot()
	if _, ok := st.MonthlyPlans["2024-06"]; ok {
		t.Error("plan should be gone")
	}
	if _, ok := st.MonthlyActuals["2024-06"]; ok {
		t.Error("actuals should be gone with the plan")
	}
	if s.RemoveMonthlyPlan("2024-06") {
		t.Error("removing an unknown month should report false")
	}
}

func TestSavingsLog(t *testing.T) {
	s := testStore()

	s.AddSavingsEntry("2024-06", core.SavingsEntry{Amount: 100})
	s.AddSavingsEntry("2024-06", core.SavingsEntry{Amount: 50, Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)})

	st := s.Snapshot()
	entries := st.SavingsLogs["2024-06"]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date.IsZero() {
		t.Error("entry without a date should be stamped")
	}
	if got := LoggedSavings(st, "2024-06"); got != 150 {
		t.Errorf("LoggedSavings = %v, want 150", got)
	}

	if !s.DeleteSavingsEntry("2024-06", 0) {
		t.Fatal("delete first entry")
	}
	if s.DeleteSavingsEntry("2024-06", 5) {
		t.Error("out-of-range delete should report false")
	}
	if got := len(s.Snapshot().SavingsLogs["2024-06"]); got != 1 {
		t.Fatalf("expected 1 entry after delete, got %d", got)
	}

	s.ResetSavingsLog("2024-06")
	if got := len(s.Snapshot().SavingsLogs["2024-06"]); got != 0 {
		t.Errorf("expected empty ledger after reset, got %d", got)
	}
}

func TestOverviewFor(t *testing.T) {
	s := testStore()
	plan, _ := s.BuildMonthlyPlan("Main")
	s.SaveMonthlyPlan("2024-06", plan)
	s.AddSavingsEntry("2024-06", core.SavingsEntry{Amount: 80})

	ov := OverviewFor(s.Snapshot(), "2024-06")
	if ov.Plan == nil || ov.Actual == nil {
		t.Fatal("overview should carry plan and actuals")
	}
	if ov.LoggedSavings != 80 {
		t.Errorf("LoggedSavings = %v, want 80", ov.LoggedSavings)
	}

	empty := OverviewFor(s.Snapshot(), "2031-01")
	if empty.Plan != nil || empty.Actual != nil {
		t.Error("months without a plan should have nil plan and actuals")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsTwenty)
	s.RecomputeSavings()
	s.SaveScenario("Alt")
	plan, _ := s.BuildMonthlyPlan("Alt")
	s.SaveMonthlyPlan("2024-07", plan)

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	restored := testStore()
	if err := restored.Restore(data); err != nil {
		t.Fatalf("restore: %v", err)
	}

	st := restored.Snapshot()
	if st.CurrentScenario != "Alt" {
		t.Errorf("CurrentScenario = %q, want Alt", st.CurrentScenario)
	}
	if _, ok := st.MonthlyPlans["2024-07"]; !ok {
		t.Error("monthly plan lost in round trip")
	}
	if st.SavingsMode != core.SavingsTwenty {
		t.Errorf("SavingsMode = %q", st.SavingsMode)
	}
}

func TestRoundTripKeepsDeletedScenarioGone(t *testing.T) {
	s := testStore()
	s.SaveScenario("Alt")
	if !s.DeleteScenario("Main") {
		t.Fatal("delete Main")
	}

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored := testStore()
	if err := restored.Restore(data); err != nil {
		t.Fatalf("restore: %v", err)
	}

	st := restored.Snapshot()
	if _, ok := st.Scenarios["Main"]; ok {
		t.Error("deleted scenario came back after restore")
	}
	if len(st.Scenarios) != 1 {
		t.Errorf("scenarios = %d, want 1", len(st.Scenarios))
	}
	if st.CurrentScenario != "Alt" {
		t.Errorf("CurrentScenario = %q, want Alt", st.CurrentScenario)
	}
}

func TestRoundTripKeepsRemovedDefaultsGone(t *testing.T) {
	s := testStore()
	s.RemoveIncomeSource("primary")
	s.UpdateExpense("rent", core.ExpensePatch{Amount: ptr(1250.0)})

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored := testStore()
	if err := restored.Restore(data); err != nil {
		t.Fatalf("restore: %v", err)
	}

	st := restored.Snapshot()
	if len(st.IncomeSources) != 0 {
		t.Errorf("removed income source came back: %+v", st.IncomeSources)
	}
	if st.SelectedSourceID != "" {
		t.Errorf("SelectedSourceID = %q, want empty", st.SelectedSourceID)
	}
	if len(st.Expenses) != 1 || st.Expenses[0].Amount != 1250 {
		t.Errorf("expenses = %+v, want only rent at 1250", st.Expenses)
	}
}

func TestDecodeStateGarbage(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Corrupt payload falls back to defaults with an error.
	st, err := DecodeState([]byte("{not json"), now)
	if err == nil {
		t.Error("expected decode error")
	}
	if st.CurrentScenario != "Main" {
		t.Errorf("corrupt blob should leave defaults, got %q", st.CurrentScenario)
	}

	// Partial payloads merge over defaults and repair dangling pointers.
	st, err = DecodeState([]byte(`{"currentScenario":"ghost","selectedSourceId":"ghost"}`), now)
	if err != nil {
		t.Fatalf("partial decode: %v", err)
	}
	if st.CurrentScenario != "Main" {
		t.Errorf("dangling scenario pointer should repair to Main, got %q", st.CurrentScenario)
	}
	if st.SelectedSourceID != "primary" {
		t.Errorf("dangling selection should repair, got %q", st.SelectedSourceID)
	}
}
