package store

import (
	"slices"

	"expensetracker/internal/core"
)

// ActionType names a state transition.
type ActionType string

const (
	ActionAddExpense    ActionType = "ADD_EXPENSE"
	ActionDeleteExpense ActionType = "DELETE_EXPENSE"
	ActionSetExpenses   ActionType = "SET_EXPENSES"
)

// State is the whole client state: the ordered record sequence.
// A State is never modified after it has been produced.
type State struct {
	Expenses []core.Expense
}

// Action is a value passed to Dispatch. Only the payload field matching Type
// is read.
type Action struct {
	Type     ActionType
	Expense  core.Expense   // ADD_EXPENSE
	ID       string         // DELETE_EXPENSE
	Expenses []core.Expense // SET_EXPENSES
}

// AddExpense appends e.
func AddExpense(e core.Expense) Action {
	return Action{Type: ActionAddExpense, Expense: e}
}

// DeleteExpense removes the record with the given id.
func DeleteExpense(id string) Action {
	return Action{Type: ActionDeleteExpense, ID: id}
}

// SetExpenses replaces the whole sequence.
func SetExpenses(records []core.Expense) Action {
	return Action{Type: ActionSetExpenses, Expenses: records}
}

// Reduce returns the state that results from applying a to s.
//
// It is pure and total: the input is never modified, unknown actions and
// deletes of absent ids return s itself.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAddExpense:
		next := make([]core.Expense, len(s.Expenses), len(s.Expenses)+1)
		copy(next, s.Expenses)
		return State{Expenses: append(next, a.Expense)}

	case ActionDeleteExpense:
		i := slices.IndexFunc(s.Expenses, func(e core.Expense) bool { return e.ID == a.ID })
		if i < 0 {
			return s
		}
		next := make([]core.Expense, 0, len(s.Expenses)-1)
		for _, e := range s.Expenses {
			if e.ID != a.ID {
				next = append(next, e)
			}
		}
		return State{Expenses: next}

	case ActionSetExpenses:
		return State{Expenses: slices.Clone(a.Expenses)}

	default:
		return s
	}
}

// ReplaceExpense returns a copy of records where the entry with the id of e
// is replaced by e, in place. records is left untouched.
func ReplaceExpense(records []core.Expense, e core.Expense) []core.Expense {
	next := slices.Clone(records)
	for i := range next {
		if next[i].ID == e.ID {
			next[i] = e
		}
	}
	return next
}
