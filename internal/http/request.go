package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"expensetracker/internal/core"
)

var (
	errEmptyBody    = errors.New("empty request body")
	errBodyTooLarge = fmt.Errorf("request body larger than %d bytes", maxBodyBytes)
)

// decodeExpense reads a JSON record from the body. Unknown fields are
// ignored. Text fields are trimmed and stripped of control characters.
func decodeExpense(w http.ResponseWriter, r *http.Request) (core.Expense, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var e core.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Expense{}, errEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.Expense{}, errBodyTooLarge
		}
		return core.Expense{}, fmt.Errorf("malformed JSON: %w", err)
	}
	e.Title = sanitizeInput(e.Title)
	e.Amount = strings.TrimSpace(e.Amount)
	e.SelectedDate = strings.TrimSpace(e.SelectedDate)
	return e, nil
}

// decodeStatus is the response status for a decodeExpense error.
func decodeStatus(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// sanitizeInput removes control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
