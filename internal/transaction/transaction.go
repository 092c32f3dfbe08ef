package transaction

import (
	"errors"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("transaction not found")
	ErrValidation = errors.New("invalid transaction")
)

// Category groups transactions for reporting.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryIncome        Category = "income"
	CategorySavings       Category = "savings"
	CategoryOther         Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryIncome,
	CategorySavings,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// Type is the direction of a manually entered transaction. It is not stored:
// the sign of Amount carries it.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single dated money movement. Positive amounts are income.
type Transaction struct {
	ID          string          `json:"id"`
	Date        civil.Date      `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Notes       string          `json:"notes,omitempty"`
}

func (t *Transaction) Type() Type {
	if t.Amount.IsNegative() {
		return TypeExpense
	}

	return TypeIncome
}

func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
