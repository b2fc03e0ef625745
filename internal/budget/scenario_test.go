package budget

import (
	"testing"

	"budget/internal/core"
)

func TestSaveScenarioDeepCopyIsolation(t *testing.T) {
	s := testStore()
	s.SaveScenario("A")

	// Mutations while another scenario is current must not reach "A".
	s.LoadScenario("Main")
	s.UpdateIncomeSource("primary", core.IncomeSourcePatch{HourlyRate: ptr(99.0)})

	a := s.Snapshot().Scenarios["A"].People["you"]
	if a.IncomeSources[0].HourlyRate == 99 {
		t.Error("mutating the active set leaked into a non-current scenario")
	}
}

func TestLoadScenarioUnknownIsNoOp(t *testing.T) {
	s := testStore()
	before := s.Snapshot()
	if s.LoadScenario("missing") {
		t.Fatal("loading an unknown scenario should report false")
	}
	after := s.Snapshot()
	if after.CurrentScenario != before.CurrentScenario {
		t.Error("no-op load changed the current scenario")
	}
}

func TestLoadScenarioRestoresSavingsSettings(t *testing.T) {
	s := testStore()
	s.SetSavingsMode(core.SavingsCustom)
	s.SetCustomSavings(12)
	s.SaveScenario("Aggressive")

	s.LoadScenario("Main")
	if st := s.Snapshot(); st.SavingsMode != core.SavingsNone {
		t.Errorf("Main should have savings off, got %q", st.SavingsMode)
	}

	s.LoadScenario("Aggressive")
	st := s.Snapshot()
	if st.SavingsMode != core.SavingsCustom || st.CustomSavings != 12 {
		t.Errorf("scenario savings settings not restored: %q %v", st.SavingsMode, st.CustomSavings)
	}
}

func TestDeleteScenarioFallback(t *testing.T) {
	s := testStore()
	s.SaveScenario("Alt")

	if !s.DeleteScenario("Alt") {
		t.Fatal("delete current scenario")
	}
	st := s.Snapshot()
	if st.CurrentScenario != "Main" {
		t.Errorf("expected fallback to Main, got %q", st.CurrentScenario)
	}
	if st.CurrentPersonID != "you" {
		t.Errorf("expected fallback person, got %q", st.CurrentPersonID)
	}

	if !s.DeleteScenario("Main") {
		t.Fatal("delete last scenario")
	}
	st = s.Snapshot()
	if st.CurrentScenario != "" {
		t.Errorf("no scenarios left, current should clear, got %q", st.CurrentScenario)
	}
	// Active working set is left as-is for the caller to guard.
	if len(st.IncomeSources) == 0 {
		t.Error("active working set should survive deleting the last scenario")
	}

	if s.DeleteScenario("Main") {
		t.Error("deleting an unknown scenario should report false")
	}
}

func TestAddPersonSeedsAndSwitches(t *testing.T) {
	s := testStore()
	id, ok := s.AddPerson("Jane Doe")
	if !ok {
		t.Fatal("add person")
	}
	if id != "jane-doe" {
		t.Errorf("person id = %q, want jane-doe", id)
	}

	st := s.Snapshot()
	if st.CurrentPersonID != "jane-doe" {
		t.Errorf("active person = %q, want jane-doe", st.CurrentPersonID)
	}
	if len(st.IncomeSources) != 1 || st.IncomeSources[0].ID != "primary" {
		t.Errorf("new person should start with the seed source, got %+v", st.IncomeSources)
	}
	if st.SelectedSourceID != "primary" {
		t.Errorf("seed source should be selected, got %q", st.SelectedSourceID)
	}

	if _, ok := s.AddPerson("Jane Doe"); ok {
		t.Error("duplicate person should be rejected")
	}
	if _, ok := s.AddPerson("   "); ok {
		t.Error("blank name should be rejected")
	}
}

func TestSwitchPersonCopiesWithoutAliasing(t *testing.T) {
	s := testStore()
	s.AddPerson("Sam")
	s.UpdateIncomeSource("primary", core.IncomeSourcePatch{HourlyRate: ptr(50.0)})

	if !s.SwitchPerson("you") {
		t.Fatal("switch back")
	}
	st := s.Snapshot()
	if st.IncomeSources[0].HourlyRate != 25 {
		t.Errorf("you's rate = %v, want the original 25", st.IncomeSources[0].HourlyRate)
	}

	// Sam's copy kept the change.
	sam := st.Scenarios["Main"].People["sam"]
	if sam.IncomeSources[0].HourlyRate != 50 {
		t.Errorf("sam's rate = %v, want 50", sam.IncomeSources[0].HourlyRate)
	}

	if s.SwitchPerson("ghost") {
		t.Error("switching to an unknown person should report false")
	}
}

func TestDeleteLastPersonRejected(t *testing.T) {
	s := testStore()
	if s.DeletePerson("you") {
		t.Fatal("deleting the last person must be rejected")
	}
	people := s.Snapshot().Scenarios["Main"].People
	if len(people) != 1 {
		t.Fatalf("scenario should still have exactly one person, got %d", len(people))
	}
}

func TestDeleteCurrentPersonFallsBack(t *testing.T) {
	s := testStore()
	s.AddPerson("Sam") // now current
	if !s.DeletePerson("sam") {
		t.Fatal("delete current person")
	}
	st := s.Snapshot()
	if st.CurrentPersonID != "you" {
		t.Errorf("expected fallback to you, got %q", st.CurrentPersonID)
	}
}
