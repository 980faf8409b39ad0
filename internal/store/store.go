// Package store holds the single client-side state container.
//
// A Store owns the authoritative record sequence. Readers take snapshots with
// GetState or Subscribe; writers go through Dispatch, which applies Reduce.
// Snapshots are replaced wholesale and never mutated, so any number of
// goroutines may read them concurrently.
package store

import (
	"context"
	"slices"
	"sync"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/report"
)

// FetchLabel is the report label of a failed initial fetch.
const FetchLabel = "fetch expenses"

// Lister fetches every record from the remote service.
type Lister interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
}

// Listener receives the new state after every dispatch.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []subscription
	nextID    int

	// dispatchMu serializes reducer application and notification so
	// listeners observe states in dispatch order.
	dispatchMu sync.Mutex

	ready    chan struct{}
	reporter report.Reporter
	logger   *applog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.WithComponent(applog.ComponentStore)
		}
	}
}

// New creates a store with an empty sequence.
//
// When lister is not nil the initial fetch starts immediately in its own
// goroutine, exactly once. On success it dispatches SET_EXPENSES; on failure
// the error goes to reporter and the state stays empty. Ready is closed when
// the fetch has finished either way.
func New(ctx context.Context, lister Lister, reporter report.Reporter, opts ...Option) *Store {
	if reporter == nil {
		reporter = report.Nop
	}
	s := &Store{
		ready:    make(chan struct{}),
		reporter: reporter,
		logger:   applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if lister == nil {
		close(s.ready)
		return s
	}
	go s.load(ctx, lister)
	return s
}

func (s *Store) load(ctx context.Context, lister Lister) {
	defer close(s.ready)

	records, err := lister.ListExpenses(ctx)
	if err != nil {
		s.reporter.Report(ctx, err, FetchLabel)
		return
	}
	s.Dispatch(SetExpenses(records))
	s.logger.InfoContext(ctx, "Initial fetch completed",
		applog.FieldOperation, applog.OpFetch,
		applog.FieldCount, len(records))
}

// Ready is closed once the initial fetch has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// GetState returns the current snapshot. Callers must not modify it.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to the current state and notifies listeners in
// subscription order.
func (s *Store) Dispatch(a Action) {
	s.DispatchFunc(func(State) Action { return a })
}

// DispatchFunc builds the action from the current state and applies it as
// one step: no other dispatch can land between the read and the reduce.
// build runs with the dispatch lock held and must not call Dispatch.
func (s *Store) DispatchFunc(build func(State) Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	a := build(s.GetState())

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	s.logger.Debug("Action dispatched",
		applog.FieldOperation, applog.OpDispatch,
		"action", string(a.Type),
		applog.FieldCount, len(next.Expenses))

	for _, l := range listeners {
		l(next)
	}
}

// Subscribe registers l for future dispatches and returns a function that
// removes it. Listeners run synchronously on the dispatching goroutine and
// must not call Dispatch.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
			s.mu.Unlock()
		})
	}
}
