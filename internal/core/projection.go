package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TypeFilter restricts a projection to one entry type.
type TypeFilter int

const (
	FilterAll TypeFilter = iota
	FilterIncome
	FilterExpense
)

// ParseTypeFilter converts the user-facing filter keywords to a TypeFilter.
// An empty string means no restriction.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "all":
		return FilterAll, nil
	case "income":
		return FilterIncome, nil
	case "expense":
		return FilterExpense, nil
	default:
		return FilterAll, fmt.Errorf("invalid type filter %q: must be all, income or expense", s)
	}
}

func (f TypeFilter) String() string {
	switch f {
	case FilterIncome:
		return "income"
	case FilterExpense:
		return "expense"
	default:
		return "all"
	}
}

// matches reports whether the filter admits the given entry type.
func (f TypeFilter) matches(t EntryType) bool {
	switch f {
	case FilterIncome:
		return t == Income
	case FilterExpense:
		return t == Expense
	default:
		return true
	}
}

// Filter describes the read-side restriction applied to the ledger.
// Dimensions combine with logical AND; a zero-valued dimension is inactive.
type Filter struct {
	// Term is matched case-insensitively as a substring of the resolved
	// person name. A blank term disables the search dimension.
	Term string

	// Type restricts entries to one type; FilterAll disables the dimension.
	Type TypeFilter

	// Date restricts entries to an exact calendar day; a zero date
	// disables the dimension.
	Date Date
}

// Active reports whether any filter dimension is in effect.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Term) != "" || f.Type != FilterAll || !f.Date.IsZero()
}

// Totals are the aggregates of a projection. Balance may be negative.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Projection is a derived, read-only view of the ledger: the ordered
// subsequence admitted by a filter plus its aggregates.
type Projection struct {
	View   []Transaction
	Totals Totals
}

// Project applies the filter to the transaction sequence and computes the
// aggregates over the admitted entries. Input order is preserved. resolve
// maps a person id to a display name and is used only by the search
// dimension; a nil resolve matches the term against the raw id.
//
// Project is a pure function of its inputs: no hidden state, no side
// effects, safe to call repeatedly and concurrently.
func Project(transactions []Transaction, resolve func(id string) string, filter Filter) Projection {
	if resolve == nil {
		resolve = func(id string) string { return id }
	}

	term := strings.ToLower(strings.TrimSpace(filter.Term))

	view := make([]Transaction, 0, len(transactions))
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range transactions {
		if !filter.Type.matches(tx.Type) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(resolve(tx.Person)), term) {
			continue
		}
		if !filter.Date.IsZero() && !filter.Date.SameDay(tx.Date) {
			continue
		}

		view = append(view, tx)
		switch tx.Type {
		case Income:
			income = income.Add(tx.Amount)
		case Expense:
			expense = expense.Add(tx.Amount)
		}
	}

	return Projection{
		View: view,
		Totals: Totals{
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		},
	}
}
