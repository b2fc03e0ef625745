package budget

import (
	"encoding/json"
	"sort"
	"time"

	"budget/internal/core"
)

// State is the full domain state the store owns. The active working set
// (income sources, expenses, savings settings) mirrors the currently
// selected person of the current scenario; every mutator keeps the two in
// step. Serialized as-is into the persistence blob.
type State struct {
	IncomeSources []core.IncomeSource `json:"incomeSources"`
	Expenses      []core.Expense      `json:"expenses"`
	SavingsMode   core.SavingsMode    `json:"savingsMode"`
	CustomSavings float64             `json:"customSavings"`
	FilingStatus  core.FilingStatus   `json:"filingStatus"`

	SelectedSourceID string `json:"selectedSourceId"`

	Scenarios       map[string]core.Scenario `json:"scenarios"`
	CurrentScenario string                   `json:"currentScenario"`
	CurrentPersonID string                   `json:"currentPersonId"`

	MonthlyPlans   map[string]core.MonthlyPlan    `json:"monthlyPlans"`
	MonthlyActuals map[string]core.MonthlyActual  `json:"monthlyActuals"`
	SavingsLogs    map[string][]core.SavingsEntry `json:"savingsLogs"`
}

// Clone returns a deep copy of the whole state.
func (s State) Clone() State {
	out := s
	out.IncomeSources = core.CloneIncomeSources(s.IncomeSources)
	out.Expenses = core.CloneExpenses(s.Expenses)

	out.Scenarios = make(map[string]core.Scenario, len(s.Scenarios))
	for name, sc := range s.Scenarios {
		out.Scenarios[name] = sc.Clone()
	}
	out.MonthlyPlans = make(map[string]core.MonthlyPlan, len(s.MonthlyPlans))
	for month, plan := range s.MonthlyPlans {
		out.MonthlyPlans[month] = plan.Clone()
	}
	out.MonthlyActuals = make(map[string]core.MonthlyActual, len(s.MonthlyActuals))
	for month, actual := range s.MonthlyActuals {
		out.MonthlyActuals[month] = actual.Clone()
	}
	out.SavingsLogs = make(map[string][]core.SavingsEntry, len(s.SavingsLogs))
	for month, entries := range s.SavingsLogs {
		out.SavingsLogs[month] = append([]core.SavingsEntry(nil), entries...)
	}
	return out
}

func defaultPerson(createdAt time.Time) core.Person {
	return core.Person{
		Name: "You",
		IncomeSources: []core.IncomeSource{{
			ID:           "primary",
			Label:        "Primary Job",
			Type:         core.Hourly,
			HourlyRate:   25,
			HoursPerWeek: 40,
			State:        "WI",
			CreatedAt:    createdAt,
		}},
		Expenses: []core.Expense{{ID: core.RentExpenseID, Name: "Rent", Amount: 1000}},
	}
}

// DefaultState is the first-run state: one "Main" scenario with a single
// person, one hourly income source, a rent expense, and savings off.
func DefaultState(now time.Time) State {
	person := defaultPerson(now)
	st := State{
		IncomeSources:    core.CloneIncomeSources(person.IncomeSources),
		Expenses:         core.CloneExpenses(person.Expenses),
		SavingsMode:      core.SavingsNone,
		FilingStatus:     core.SingleFiler,
		SelectedSourceID: "primary",
		Scenarios: map[string]core.Scenario{
			"Main": {
				Name:         "Main",
				People:       map[string]core.Person{core.DefaultPersonID: person},
				SavingsMode:  core.SavingsNone,
				FilingStatus: core.SingleFiler,
			},
		},
		CurrentScenario: "Main",
		CurrentPersonID: core.DefaultPersonID,
		MonthlyPlans:    map[string]core.MonthlyPlan{},
		MonthlyActuals:  map[string]core.MonthlyActual{},
		SavingsLogs:     map[string][]core.SavingsEntry{},
	}
	return st
}

// EncodeState serializes a state for the persistence blob.
func EncodeState(s State) ([]byte, error) {
	return json.Marshal(s)
}

// statePayload mirrors State with nil-able fields so a decoded blob can
// tell a field that was saved apart from one that was never written.
// Present fields replace the defaults wholesale; unmarshaling a saved map
// directly over a default map would merge entries and resurrect deleted
// defaults.
type statePayload struct {
	IncomeSources    *[]core.IncomeSource           `json:"incomeSources"`
	Expenses         *[]core.Expense                `json:"expenses"`
	SavingsMode      *core.SavingsMode              `json:"savingsMode"`
	CustomSavings    *float64                       `json:"customSavings"`
	FilingStatus     *core.FilingStatus             `json:"filingStatus"`
	SelectedSourceID *string                        `json:"selectedSourceId"`
	Scenarios        map[string]core.Scenario       `json:"scenarios"`
	CurrentScenario  *string                        `json:"currentScenario"`
	CurrentPersonID  *string                        `json:"currentPersonId"`
	MonthlyPlans     map[string]core.MonthlyPlan    `json:"monthlyPlans"`
	MonthlyActuals   map[string]core.MonthlyActual  `json:"monthlyActuals"`
	SavingsLogs      map[string][]core.SavingsEntry `json:"savingsLogs"`
}

// DecodeState deserializes a persisted blob: fields present in the blob
// replace the defaults, missing fields keep their default values, and
// dangling references are repaired so a loaded store always satisfies its
// invariants. Restore(Encode()) is the identity up to repair.
func DecodeState(data []byte, now time.Time) (State, error) {
	var p statePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultState(now), err
	}

	st := DefaultState(now)
	if p.IncomeSources != nil {
		st.IncomeSources = *p.IncomeSources
	}
	if p.Expenses != nil {
		st.Expenses = *p.Expenses
	}
	if p.SavingsMode != nil {
		st.SavingsMode = *p.SavingsMode
	}
	if p.CustomSavings != nil {
		st.CustomSavings = *p.CustomSavings
	}
	if p.FilingStatus != nil {
		st.FilingStatus = *p.FilingStatus
	}
	if p.SelectedSourceID != nil {
		st.SelectedSourceID = *p.SelectedSourceID
	}
	if p.Scenarios != nil {
		st.Scenarios = p.Scenarios
	}
	if p.CurrentScenario != nil {
		st.CurrentScenario = *p.CurrentScenario
	}
	if p.CurrentPersonID != nil {
		st.CurrentPersonID = *p.CurrentPersonID
	}
	if p.MonthlyPlans != nil {
		st.MonthlyPlans = p.MonthlyPlans
	}
	if p.MonthlyActuals != nil {
		st.MonthlyActuals = p.MonthlyActuals
	}
	if p.SavingsLogs != nil {
		st.SavingsLogs = p.SavingsLogs
	}
	st.normalize(now)
	return st, nil
}

// normalize repairs a state after deserialization: missing maps, a current
// scenario pointer that no longer resolves, a person pointer outside the
// scenario, or a selected source that is gone.
func (s *State) normalize(now time.Time) {
	if s.Scenarios == nil {
		s.Scenarios = map[string]core.Scenario{}
	}
	if s.MonthlyPlans == nil {
		s.MonthlyPlans = map[string]core.MonthlyPlan{}
	}
	if s.MonthlyActuals == nil {
		s.MonthlyActuals = map[string]core.MonthlyActual{}
	}
	if s.SavingsLogs == nil {
		s.SavingsLogs = map[string][]core.SavingsEntry{}
	}
	if len(s.Scenarios) == 0 {
		def := DefaultState(now)
		s.Scenarios = def.Scenarios
		s.CurrentScenario = def.CurrentScenario
		s.CurrentPersonID = def.CurrentPersonID
	}

	if _, ok := s.Scenarios[s.CurrentScenario]; !ok {
		s.CurrentScenario = firstScenarioName(s.Scenarios)
	}
	sc := s.Scenarios[s.CurrentScenario]
	if sc.People == nil {
		sc.People = map[string]core.Person{core.DefaultPersonID: defaultPerson(now)}
		s.Scenarios[s.CurrentScenario] = sc
	}
	if _, ok := sc.People[s.CurrentPersonID]; !ok {
		s.CurrentPersonID = firstPersonID(sc)
	}
	if !hasSourceID(s.IncomeSources, s.SelectedSourceID) {
		s.SelectedSourceID = firstSourceID(s.IncomeSources)
	}
	if s.SavingsMode == "" {
		s.SavingsMode = core.SavingsNone
	}
	if s.FilingStatus == "" {
		s.FilingStatus = core.SingleFiler
	}
}

// firstScenarioName picks a deterministic "first" scenario: "Main" when
// present, otherwise the lexicographically smallest name.
func firstScenarioName(scenarios map[string]core.Scenario) string {
	if _, ok := scenarios["Main"]; ok {
		return "Main"
	}
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// firstPersonID picks the scenario's default person: "you" when present,
// otherwise the lexicographically smallest key.
func firstPersonID(sc core.Scenario) string {
	if _, ok := sc.People[core.DefaultPersonID]; ok {
		return core.DefaultPersonID
	}
	ids := make([]string, 0, len(sc.People))
	for id := range sc.People {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func hasSourceID(sources []core.IncomeSource, id string) bool {
	if id == "" {
		return false
	}
	for _, src := range sources {
		if src.ID == id {
			return true
		}
	}
	return false
}

func firstSourceID(sources []core.IncomeSource) string {
	if len(sources) == 0 {
		return ""
	}
	return sources[0].ID
}
