// Package budget owns all mutable domain state: the active working set,
// named scenarios with their people, committed monthly plans, tracked
// actuals, and per-month savings logs.
//
// Every mutator is atomic with respect to the three parallel views: the
// active working set, the scenario entry it mirrors, and the monthly
// snapshots. Callers only ever see states where the views agree. Mutators
// never return errors; missing references are no-ops and invariant-violating
// deletions report rejection through a boolean outcome.
package budget

import (
	"sync"
	"time"

	"budget/internal/core"

	"github.com/google/uuid"
)

// Store is an explicit, constructible state container. Independent
// instances are cheap, which keeps tests isolated.
type Store struct {
	mu    sync.Mutex
	state State

	idFn      func() string
	nowFn     func() time.Time
	protected map[string]bool
}

// Option configures a Store at construction.
type Option func(*Store)

// WithIDFunc replaces the id generator, letting tests supply deterministic
// ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.idFn = fn }
}

// WithClock replaces the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.nowFn = fn }
}

// WithProtectedExpenses replaces the set of expense ids RemoveExpense
// refuses to delete.
func WithProtectedExpenses(ids ...string) Option {
	return func(s *Store) {
		s.protected = make(map[string]bool, len(ids))
		for _, id := range ids {
			s.protected[id] = true
		}
	}
}

// WithState seeds the store with a previously decoded state instead of the
// defaults.
func WithState(st State) Option {
	return func(s *Store) { s.state = st.Clone() }
}

// New creates a store seeded with the default state. The rent and savings
// expense rows are protected unless overridden.
func New(opts ...Option) *Store {
	s := &Store{
		idFn:  uuid.NewString,
		nowFn: time.Now,
		protected: map[string]bool{
			core.RentExpenseID:    true,
			core.SavingsExpenseID: true,
		},
	}
	s.state = DefaultState(time.Now())
	for _, opt := range opts {
		opt(s)
	}
	s.state.normalize(s.nowFn())
	return s
}

// Snapshot returns a deep copy of the current state. Mutating the copy
// never affects the store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Encode serializes the current state for the persistence blob.
func (s *Store) Encode() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EncodeState(s.state)
}

// Restore replaces the store's state with a persisted blob merged over the
// defaults. A corrupt blob leaves the store on defaults rather than failing.
func (s *Store) Restore(data []byte) error {
	st, err := DecodeState(data, s.nowFn())
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return err
}

// writeThrough mirrors the active working set into the current scenario's
// current person. Called with the lock held by every mutator that touches
// the active set.
func (s *Store) writeThrough() {
	sc, ok := s.state.Scenarios[s.state.CurrentScenario]
	if !ok {
		return
	}
	if sc.People == nil {
		sc.People = map[string]core.Person{}
	}
	person := sc.People[s.state.CurrentPersonID]
	if person.Name == "" {
		person.Name = s.state.CurrentPersonID
	}
	person.IncomeSources = core.CloneIncomeSources(s.state.IncomeSources)
	person.Expenses = core.CloneExpenses(s.state.Expenses)
	sc.People[s.state.CurrentPersonID] = person
	sc.SavingsMode = s.state.SavingsMode
	sc.CustomSavings = s.state.CustomSavings
	sc.FilingStatus = s.state.FilingStatus
	s.state.Scenarios[s.state.CurrentScenario] = sc
}

// loadActive replaces the active working set with a deep copy of the given
// person's data and re-selects their first income source. Called with the
// lock held.
func (s *Store) loadActive(person core.Person) {
	s.state.IncomeSources = core.CloneIncomeSources(person.IncomeSources)
	s.state.Expenses = core.CloneExpenses(person.Expenses)
	s.state.SelectedSourceID = firstSourceID(s.state.IncomeSources)
}
