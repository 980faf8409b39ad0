package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income      Type = "Income"
	ExpenseType Type = "Expense"
)

// DateLayout is the calendar date layout accepted for selectedDate.
const DateLayout = "2006-01-02"

type (
	// Type tells whether a record is money coming in or going out.
	Type string

	// Expense is the only entity exchanged with the remote service.
	// Field names on the wire are exact and must not change.
	Expense struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Amount       string `json:"amount"`
		SelectedType Type   `json:"selectedType"`
		SelectedDate string `json:"selectedDate"`
	}

	// NewExpense is the create payload. The server assigns the id.
	NewExpense struct {
		Title  string `json:"title"`
		Amount string `json:"amount"`
	}

	// ExpenseEdit holds the editable fields merged into a selected record.
	ExpenseEdit struct {
		Title        string
		Amount       string
		SelectedType Type
		SelectedDate string
	}
)

var (
	ErrNotFound      = errors.New("expense not found")
	ErrEmptyTitle    = errors.New("empty title")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid type")
	ErrInvalidDate   = errors.New("invalid date")
)

// Valid reports whether t is one of the known types. The empty type is
// tolerated because create payloads carry no type.
func (t Type) Valid() bool {
	switch t {
	case "", Income, ExpenseType:
		return true
	default:
		return false
	}
}

// Apply returns a copy of e with the edited fields merged in. The id is kept.
func (e Expense) Apply(edit ExpenseEdit) Expense {
	e.Title = edit.Title
	e.Amount = edit.Amount
	e.SelectedType = edit.SelectedType
	e.SelectedDate = edit.SelectedDate
	return e
}

// Edit returns the editable fields of e, the starting point of an update.
func (e Expense) Edit() ExpenseEdit {
	return ExpenseEdit{
		Title:        e.Title,
		Amount:       e.Amount,
		SelectedType: e.SelectedType,
		SelectedDate: e.SelectedDate,
	}
}

// Date parses selectedDate. ok is false when the date is empty or malformed.
func (e Expense) Date() (t time.Time, ok bool) {
	t, err := ParseDate(e.SelectedDate)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate accepts an empty string, a calendar date or an RFC 3339 timestamp.
// The empty string yields the zero time and no error.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Validate checks a record before it is stored by a backend.
func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return ErrTitleTooLong
	}
	if _, err := ParseAmountStrict(e.Amount); err != nil {
		return err
	}
	if !e.SelectedType.Valid() {
		return ErrInvalidType
	}
	if _, err := ParseDate(e.SelectedDate); err != nil {
		return err
	}
	return nil
}

// Expense builds the record a backend stores for a create payload.
func (n NewExpense) Expense() Expense {
	return Expense{Title: n.Title, Amount: n.Amount}
}
