package services

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/report"
	"expensetracker/internal/store"
)

// Report labels, one per operation.
const (
	CreateLabel = "create expense"
	UpdateLabel = "update expense"
	DeleteLabel = "delete expense"
)

// ErrNoSelection is returned by Update when no record is selected.
var ErrNoSelection = errors.New("no expense selected")

// Remote is the part of the API client the sync operations need.
type Remote interface {
	CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// ExpenseService runs the create, update and delete flows. Each flow does one
// remote call and reconciles the store only when that call succeeded.
//
// Failures are reported and returned. The returned error is informational:
// it has already been reported and the store is unchanged.
type ExpenseService struct {
	remote   Remote
	store    *store.Store
	reporter report.Reporter
	logger   *applog.Logger
}

func NewExpenseService(remote Remote, st *store.Store, reporter report.Reporter, logger *applog.Logger) *ExpenseService {
	if reporter == nil {
		reporter = report.Nop
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &ExpenseService{
		remote:   remote,
		store:    st,
		reporter: reporter,
		logger:   logger.WithComponent(applog.ComponentSync),
	}
}

// Create sends the editable fields and appends the record returned by the
// server.
func (s *ExpenseService) Create(ctx context.Context, in core.NewExpense) (core.Expense, error) {
	created, err := s.remote.CreateExpense(ctx, in)
	if err != nil {
		return core.Expense{}, s.fail(ctx, CreateLabel, err)
	}

	s.store.Dispatch(store.AddExpense(created))
	s.logger.InfoContext(ctx, "Expense created",
		applog.NewFields().
			WithExpense(created.ID, created.Title, created.Amount, string(created.SelectedType)).
			WithOperation(applog.OpCreate).
			ToSlice()...)
	return created, nil
}

// Update merges edit into selected, sends the full record and, on success,
// replaces the whole sequence with one where the matching entry is swapped
// for the merged record.
func (s *ExpenseService) Update(ctx context.Context, selected core.Expense, edit core.ExpenseEdit) (core.Expense, error) {
	if selected.ID == "" {
		return core.Expense{}, s.fail(ctx, UpdateLabel, ErrNoSelection)
	}

	updated := selected.Apply(edit)
	if err := s.remote.UpdateExpense(ctx, updated); err != nil {
		return core.Expense{}, s.fail(ctx, UpdateLabel, err)
	}

	s.store.DispatchFunc(func(st store.State) store.Action {
		return store.SetExpenses(store.ReplaceExpense(st.Expenses, updated))
	})
	s.logger.InfoContext(ctx, "Expense updated",
		applog.NewFields().
			WithExpense(updated.ID, updated.Title, updated.Amount, string(updated.SelectedType)).
			WithOperation(applog.OpUpdate).
			ToSlice()...)
	return updated, nil
}

// Delete removes the record remotely, then locally.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeleteExpense(ctx, id); err != nil {
		return s.fail(ctx, DeleteLabel, err)
	}

	s.store.Dispatch(store.DeleteExpense(id))
	s.logger.InfoContext(ctx, "Expense deleted",
		applog.FieldExpenseID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}

func (s *ExpenseService) fail(ctx context.Context, label string, err error) error {
	s.reporter.Report(ctx, err, label)
	return fmt.Errorf("%s: %w", label, err)
}
