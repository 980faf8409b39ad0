package core

// FilterExpenses returns the records of type typeFilter in their original
// order. An empty filter returns records unchanged.
func FilterExpenses(records []Expense, typeFilter Type) []Expense {
	if typeFilter == "" {
		return records
	}
	out := make([]Expense, 0, len(records))
	for _, e := range records {
		if e.SelectedType == typeFilter {
			out = append(out, e)
		}
	}
	return out
}

// HasNoData reports whether the filtered view of records is empty.
func HasNoData(records []Expense, typeFilter Type) bool {
	return len(FilterExpenses(records, typeFilter)) == 0
}
