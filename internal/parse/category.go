package parse

import (
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type synonyms struct {
	category transaction.Category
	words    []string
}

// Order matters: "gas" resolves to transport before utilities sees it.
var categorySynonyms = []synonyms{
	{transaction.CategoryFood, []string{"groceries", "restaurant", "dining", "meal"}},
	{transaction.CategoryTransport, []string{"travel", "gas", "fuel", "subway", "bus", "taxi", "uber"}},
	{transaction.CategoryUtilities, []string{"electric", "water", "gas", "bill", "rent", "mortgage"}},
	{transaction.CategoryEntertainment, []string{"movie", "music", "game", "subscription", "hobby"}},
	{transaction.CategoryIncome, []string{"salary", "bonus", "refund", "gift", "interest"}},
}

// Category maps free text to a known category, falling back to other.
func Category(s string) transaction.Category {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, syn := range categorySynonyms {
		for _, w := range syn.words {
			if s == w {
				return syn.category
			}
		}
	}

	if c := transaction.Category(s); c.Valid() {
		return c
	}

	return transaction.CategoryOther
}
