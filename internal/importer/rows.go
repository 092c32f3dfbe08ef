package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/parse"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const importNote = "Imported from CSV"

// buildTransactions converts every data row (the first row is the header) and
// counts the rows it had to skip.
func buildTransactions(rows [][]string, m Mapping) ([]*transaction.Transaction, int) {
	var (
		txs     []*transaction.Transaction
		skipped int
	)

	for _, row := range rows[1:] {
		tx, ok := buildTransaction(row, m)
		if !ok {
			skipped++
			continue
		}

		txs = append(txs, tx)
	}

	return txs, skipped
}

func buildTransaction(row []string, m Mapping) (*transaction.Transaction, bool) {
	if len(row) <= m.maxIndex() {
		return nil, false
	}

	date, err := parse.Date(row[m.Date])
	if err != nil {
		return nil, false
	}

	amount, err := parse.Amount(strings.TrimSpace(row[m.Amount]))
	if err != nil {
		return nil, false
	}

	return &transaction.Transaction{
		ID:          storage.NewID(),
		Date:        date,
		Description: strings.TrimSpace(row[m.Description]),
		Amount:      amount,
		Category:    parse.Category(row[m.Category]),
		Notes:       importNote,
	}, true
}
