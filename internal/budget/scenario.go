package budget

import "budget/internal/core"

// SaveScenario deep-copies the active working set into the named scenario's
// current person, preserving that scenario's other people, and makes the
// scenario current. A new scenario is created when the name is unknown.
func (s *Store) SaveScenario(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return false
	}
	sc, ok := s.state.Scenarios[name]
	if !ok {
		sc = core.Scenario{Name: name, People: map[string]core.Person{}}
	}
	if sc.People == nil {
		sc.People = map[string]core.Person{}
	}
	s.state.Scenarios[name] = sc
	s.state.CurrentScenario = name
	if s.state.CurrentPersonID == "" {
		s.state.CurrentPersonID = core.DefaultPersonID
	}
	person := sc.People[s.state.CurrentPersonID]
	if person.Name == "" {
		person.Name = "You"
	}
	sc.People[s.state.CurrentPersonID] = person
	s.writeThrough()
	return true
}

// LoadScenario replaces the active working set with a deep copy of the
// named scenario's default person. Unknown names are a no-op.
func (s *Store) LoadScenario(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadScenarioLocked(name)
}

func (s *Store) loadScenarioLocked(name string) bool {
	sc, ok := s.state.Scenarios[name]
	if !ok {
		return false
	}
	s.state.CurrentScenario = name
	s.state.CurrentPersonID = firstPersonID(sc)
	s.loadActive(sc.People[s.state.CurrentPersonID])
	s.state.SavingsMode = sc.SavingsMode
	s.state.CustomSavings = sc.CustomSavings
	if sc.FilingStatus != "" {
		s.state.FilingStatus = sc.FilingStatus
	}
	if s.state.SavingsMode == "" {
		s.state.SavingsMode = core.SavingsNone
	}
	return true
}

// DeleteScenario removes the scenario. Deleting the current scenario falls
// back to the first remaining one and loads it; when none remain the active
// working set is left untouched and the current pointer clears.
func (s *Store) DeleteScenario(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Scenarios[name]; !ok {
		return false
	}
	delete(s.state.Scenarios, name)
	if s.state.CurrentScenario != name {
		return true
	}
	fallback := firstScenarioName(s.state.Scenarios)
	if fallback == "" {
		s.state.CurrentScenario = ""
		s.state.CurrentPersonID = ""
		return true
	}
	s.loadScenarioLocked(fallback)
	return true
}

// AddPerson adds a person to the current scenario, keyed by a slug of the
// name, seeds them with the default income source and rent expense, and
// switches the active working set to them. Empty or duplicate names are
// rejected.
func (s *Store) AddPerson(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := core.PersonID(name)
	if id == "" {
		return "", false
	}
	sc, ok := s.state.Scenarios[s.state.CurrentScenario]
	if !ok {
		return "", false
	}
	if sc.People == nil {
		sc.People = map[string]core.Person{}
	}
	if _, exists := sc.People[id]; exists {
		return "", false
	}

	person := defaultPerson(s.nowFn())
	person.Name = name
	sc.People[id] = person
	s.state.Scenarios[s.state.CurrentScenario] = sc

	s.state.CurrentPersonID = id
	s.loadActive(person)
	return id, true
}

// SwitchPerson makes the given person current and replaces the active
// working set with a deep copy of their data. Unknown ids are a no-op.
func (s *Store) SwitchPerson(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.state.Scenarios[s.state.CurrentScenario]
	if !ok {
		return false
	}
	person, ok := sc.People[id]
	if !ok {
		return false
	}
	s.state.CurrentPersonID = id
	s.loadActive(person)
	return true
}

// DeletePerson removes a person from the current scenario. Deleting the
// last person is rejected. When the current person is removed, the working
// set falls back to the scenario's default remaining person.
func (s *Store) DeletePerson(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.state.Scenarios[s.state.CurrentScenario]
	if !ok {
		return false
	}
	if _, exists := sc.People[id]; !exists {
		return false
	}
	if len(sc.People) == 1 {
		return false
	}
	delete(sc.People, id)
	s.state.Scenarios[s.state.CurrentScenario] = sc

	if s.state.CurrentPersonID == id {
		s.state.CurrentPersonID = firstPersonID(sc)
		s.loadActive(sc.People[s.state.CurrentPersonID])
	}
	return true
}
