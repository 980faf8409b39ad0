package store

import (
	"slices"
	"testing"

	"expensetracker/internal/core"
)

var (
	rent   = core.Expense{ID: "1", Title: "Rent", Amount: "-900", SelectedType: core.ExpenseType}
	salary = core.Expense{ID: "2", Title: "Salary", Amount: "2500", SelectedType: core.Income}
	coffee = core.Expense{ID: "9", Title: "Coffee", Amount: "-3.50", SelectedType: core.ExpenseType}
)

func TestReduceAddExpense(t *testing.T) {
	s := State{Expenses: []core.Expense{rent, salary}}
	got := Reduce(s, AddExpense(coffee))

	want := []core.Expense{rent, salary, coffee}
	if !slices.Equal(got.Expenses, want) {
		t.Fatalf("got %v, want %v", got.Expenses, want)
	}
	if len(s.Expenses) != 2 {
		t.Fatalf("input state modified: %v", s.Expenses)
	}
}

func TestReduceAddDoesNotAliasInput(t *testing.T) {
	backing := make([]core.Expense, 1, 4)
	backing[0] = rent
	s := State{Expenses: backing}

	a := Reduce(s, AddExpense(salary))
	b := Reduce(s, AddExpense(coffee))
	if a.Expenses[1] != salary || b.Expenses[1] != coffee {
		t.Fatalf("states share storage: a=%v b=%v", a.Expenses, b.Expenses)
	}
}

func TestReduceAddDoesNotDedup(t *testing.T) {
	s := State{Expenses: []core.Expense{rent}}
	got := Reduce(s, AddExpense(rent))
	if len(got.Expenses) != 2 {
		t.Fatalf("expected duplicate append, got %v", got.Expenses)
	}
}

func TestReduceDeleteExpense(t *testing.T) {
	s := State{Expenses: []core.Expense{rent, salary, coffee}}
	got := Reduce(s, DeleteExpense("2"))

	want := []core.Expense{rent, coffee}
	if !slices.Equal(got.Expenses, want) {
		t.Fatalf("got %v, want %v", got.Expenses, want)
	}
	if !slices.Equal(s.Expenses, []core.Expense{rent, salary, coffee}) {
		t.Fatalf("input state modified: %v", s.Expenses)
	}
}

func TestReduceDeleteAbsentIsNoop(t *testing.T) {
	s := State{Expenses: []core.Expense{rent, salary}}
	got := Reduce(s, DeleteExpense("404"))
	if &got.Expenses[0] != &s.Expenses[0] || len(got.Expenses) != len(s.Expenses) {
		t.Fatalf("expected the very same state back")
	}

	empty := Reduce(State{}, DeleteExpense("1"))
	if len(empty.Expenses) != 0 {
		t.Fatalf("got %v", empty.Expenses)
	}
}

func TestReduceSetExpenses(t *testing.T) {
	priors := []State{
		{},
		{Expenses: []core.Expense{rent}},
		{Expenses: []core.Expense{rent, salary, coffee}},
	}
	records := []core.Expense{coffee, rent}
	for _, prior := range priors {
		got := Reduce(prior, SetExpenses(records))
		if !slices.Equal(got.Expenses, records) {
			t.Fatalf("from %v: got %v, want %v", prior.Expenses, got.Expenses, records)
		}
	}

	got := Reduce(State{}, SetExpenses(records))
	records[0] = salary
	if got.Expenses[0] != coffee {
		t.Fatalf("state aliases the action payload")
	}
}

func TestReduceUnknownAction(t *testing.T) {
	s := State{Expenses: []core.Expense{rent}}
	got := Reduce(s, Action{Type: "RENAME_EXPENSE", ID: "1"})
	if &got.Expenses[0] != &s.Expenses[0] {
		t.Fatalf("unknown action must return the state unchanged")
	}
}

func TestReduceIsDeterministic(t *testing.T) {
	s := State{Expenses: []core.Expense{rent, salary}}
	actions := []Action{AddExpense(coffee), DeleteExpense("1"), SetExpenses([]core.Expense{salary})}
	for _, a := range actions {
		first := Reduce(s, a)
		second := Reduce(s, a)
		if !slices.Equal(first.Expenses, second.Expenses) {
			t.Fatalf("%s not deterministic: %v vs %v", a.Type, first.Expenses, second.Expenses)
		}
	}
}

func TestReplaceExpense(t *testing.T) {
	records := []core.Expense{rent, salary, coffee}
	edited := salary
	edited.Amount = "2600"

	got := ReplaceExpense(records, edited)
	want := []core.Expense{rent, edited, coffee}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if records[1] != salary {
		t.Fatalf("input modified")
	}
}
