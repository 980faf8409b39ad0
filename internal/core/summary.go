package core

import "github.com/shopspring/decimal"

// Summary holds the three totals shown under the expense list.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Total   decimal.Decimal
}

// Summarize computes the Income, Expense and overall totals of records.
func Summarize(records []Expense) Summary {
	return Summary{
		Income:  ComputeTotalAmount(records, Income),
		Expense: ComputeTotalAmount(records, ExpenseType),
		Total:   ComputeTotalAll(records),
	}
}

// ComputeTotalAmount sums the amounts of records of type t.
//
// Income amounts are summed with their sign, any other type sums absolute
// values so that "-40" and "40" expenses count the same. The result is
// rounded with RoundAmount.
func ComputeTotalAmount(records []Expense, t Type) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		if e.SelectedType != t {
			continue
		}
		amount := ParseAmount(e.Amount)
		if t == Income {
			total = total.Add(amount)
		} else {
			total = total.Add(amount.Abs())
		}
	}
	return RoundAmount(total)
}

// ComputeTotalAll is the Income total minus the Expense total.
func ComputeTotalAll(records []Expense) decimal.Decimal {
	income := ComputeTotalAmount(records, Income)
	expense := ComputeTotalAmount(records, ExpenseType)
	return RoundAmount(income.Sub(expense))
}
