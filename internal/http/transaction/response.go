package transaction

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type transactionResponse struct {
	ID          string               `json:"id"`
	Date        civil.Date           `json:"date"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Category    transaction.Category `json:"category"`
	Notes       string               `json:"notes,omitempty"`
	Notices     []notify.Notice      `json:"notices,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type(),
		Category:    tx.Category,
		Notes:       tx.Notes,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
