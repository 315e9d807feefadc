package dto

import (
	"finbalance/internal/balance"
	"finbalance/internal/models"

	"github.com/shopspring/decimal"
)

type ScheduledTransactionRequest struct {
	Description        string          `json:"description" example:"Rent"`
	Amount             decimal.Decimal `json:"amount" swaggertype:"number" example:"900"`
	Category           string          `json:"category" example:"Housing"`
	TypeID             int             `json:"type_id" example:"1"`
	RecurrencePattern  string          `json:"recurrence_pattern" example:"monthly"`
	RecurrenceInterval int             `json:"recurrence_interval" example:"1"`
	NextExecutionDate  string          `json:"next_execution_date" example:"2024-01-31"`
	RecurrenceEndDate  *string         `json:"recurrence_end_date,omitempty"`
}

type ScheduledTransactionResponse struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Amount             float64 `json:"amount"`
	Category           string  `json:"category"`
	TypeID             int     `json:"type_id"`
	RecurrencePattern  string  `json:"recurrence_pattern"`
	RecurrenceInterval int     `json:"recurrence_interval"`
	NextExecutionDate  string  `json:"next_execution_date"`
	RecurrenceEndDate  *string `json:"recurrence_end_date"`
	IsActive           bool    `json:"is_active"`
	CreatedAt          string  `json:"created_at"`
}

func NewScheduledTransactionResponse(def *models.ScheduledTransaction) ScheduledTransactionResponse {
	resp := ScheduledTransactionResponse{
		ID:                 def.ID.String(),
		Description:        def.Description,
		Amount:             def.Amount.InexactFloat64(),
		Category:           def.Category,
		TypeID:             int(def.TypeID),
		RecurrencePattern:  string(def.RecurrencePattern),
		RecurrenceInterval: def.RecurrenceInterval,
		NextExecutionDate:  def.NextExecutionDate.Format(balance.DateLayout),
		IsActive:           def.IsActive,
		CreatedAt:          formatTimestamp(def.CreatedAt),
	}
	if def.RecurrenceEndDate != nil {
		end := def.RecurrenceEndDate.Format(balance.DateLayout)
		resp.RecurrenceEndDate = &end
	}
	return resp
}

func NewScheduledTransactionList(defs []*models.ScheduledTransaction) []ScheduledTransactionResponse {
	out := make([]ScheduledTransactionResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, NewScheduledTransactionResponse(d))
	}
	return out
}
