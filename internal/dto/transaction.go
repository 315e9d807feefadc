package dto

import (
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/models"

	"github.com/shopspring/decimal"
)

const timestampLayout = time.RFC3339

type TransactionMetadata struct {
	Operation string `json:"operation,omitempty" example:"allocate"`
	GoalID    string `json:"goal_id,omitempty"`
}

type TransactionRequest struct {
	Amount      decimal.Decimal      `json:"amount" swaggertype:"number" example:"42.5"`
	TypeID      int                  `json:"type_id" example:"1"`
	Category    string               `json:"category" example:"Food"`
	Description string               `json:"description"`
	Date        string               `json:"date" example:"2024-01-05"`
	Metadata    *TransactionMetadata `json:"metadata,omitempty"`
}

type TransactionResponse struct {
	ID          string               `json:"id"`
	Amount      float64              `json:"amount"`
	TypeID      int                  `json:"type_id"`
	Type        string               `json:"type"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
	Metadata    *TransactionMetadata `json:"metadata,omitempty"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID.String(),
		Amount:      tx.Amount.InexactFloat64(),
		TypeID:      int(tx.TypeID),
		Type:        tx.TypeID.String(),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format(balance.DateLayout),
		CreatedAt:   formatTimestamp(tx.CreatedAt),
		UpdatedAt:   formatTimestamp(tx.UpdatedAt),
	}
	if tx.Metadata.Operation != models.SavingsOperationNone || tx.Metadata.GoalID != "" {
		resp.Metadata = &TransactionMetadata{
			Operation: string(tx.Metadata.Operation),
			GoalID:    tx.Metadata.GoalID,
		}
	}
	return resp
}

func NewTransactionList(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
