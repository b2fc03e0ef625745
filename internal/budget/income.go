package budget

import "budget/internal/core"

// AddIncomeSource appends a source to the active working set and mirrors it
// into the current scenario. A missing id is generated and CreatedAt is
// stamped. Returns the stored copy. If nothing was selected before, the new
// source becomes the selection.
func (s *Store) AddIncomeSource(src core.IncomeSource) core.IncomeSource {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src.ID == "" {
		src.ID = s.idFn()
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = s.nowFn()
	}
	src.HourlyRate = core.Num(src.HourlyRate)
	src.HoursPerWeek = core.Num(src.HoursPerWeek)
	src.GrossSalary = core.Num(src.GrossSalary)

	s.state.IncomeSources = append(s.state.IncomeSources, src)
	if s.state.SelectedSourceID == "" {
		s.state.SelectedSourceID = src.ID
	}
	s.writeThrough()
	return src
}

// UpdateIncomeSource merges the patch into the matching source. Unknown ids
// are a no-op; the return reports whether a source was touched.
func (s *Store) UpdateIncomeSource(id string, patch core.IncomeSourcePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.IncomeSources {
		if s.state.IncomeSources[i].ID == id {
			patch.Apply(&s.state.IncomeSources[i])
			s.writeThrough()
			return true
		}
	}
	return false
}

// RemoveIncomeSource deletes the source. When the selected source is
// removed, selection falls back to the first remaining source, or clears.
func (s *Store) RemoveIncomeSource(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.state.IncomeSources {
		if s.state.IncomeSources[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.state.IncomeSources = append(s.state.IncomeSources[:idx], s.state.IncomeSources[idx+1:]...)
	if s.state.SelectedSourceID == id {
		s.state.SelectedSourceID = firstSourceID(s.state.IncomeSources)
	}
	s.writeThrough()
	return true
}

// SelectIncomeSource is a pure pointer update; unknown ids are ignored.
func (s *Store) SelectIncomeSource(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !hasSourceID(s.state.IncomeSources, id) {
		return false
	}
	s.state.SelectedSourceID = id
	return true
}
