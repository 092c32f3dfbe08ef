package transaction

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortDateDesc   SortOrder = "date_desc"
	SortDateAsc    SortOrder = "date_asc"
	SortAmountDesc SortOrder = "amount_desc"
	SortAmountAsc  SortOrder = "amount_asc"
)

func (o SortOrder) Valid() bool {
	switch o {
	case "", SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return true
	}

	return false
}

// ListFilter narrows a listing. Nil fields do not filter. Amount bounds are
// compared against the absolute amount so they work for income and expenses alike.
type ListFilter struct {
	Category  *Category
	From      *civil.Date
	To        *civil.Date
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Sort      SortOrder
}

func (f ListFilter) Match(tx *Transaction) bool {
	if f.Category != nil && tx.Category != *f.Category {
		return false
	}

	if f.From != nil && tx.Date.Before(*f.From) {
		return false
	}

	if f.To != nil && tx.Date.After(*f.To) {
		return false
	}

	abs := tx.Amount.Abs()

	if f.MinAmount != nil && abs.LessThan(*f.MinAmount) {
		return false
	}

	if f.MaxAmount != nil && abs.GreaterThan(*f.MaxAmount) {
		return false
	}

	return true
}

// Apply returns the matching transactions in the requested order. The input is not modified.
func (f ListFilter) Apply(txs []*Transaction) []*Transaction {
	out := make([]*Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}

	slices.SortStableFunc(out, f.compare)

	return out
}

func (f ListFilter) compare(a, b *Transaction) int {
	switch f.Sort {
	case SortDateAsc:
		return a.Date.Compare(b.Date)
	case SortAmountDesc:
		return b.Amount.Abs().Cmp(a.Amount.Abs())
	case SortAmountAsc:
		return a.Amount.Abs().Cmp(b.Amount.Abs())
	default:
		return b.Date.Compare(a.Date)
	}
}
