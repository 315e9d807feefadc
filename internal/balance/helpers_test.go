package balance

import (
	"testing"
	"time"

	"finbalance/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(t *testing.T, typeID models.TransactionType, amount, date string) *models.Transaction {
	t.Helper()
	return &models.Transaction{
		ID:     uuid.New(),
		Amount: dec(amount),
		TypeID: typeID,
		Date:   day(t, date),
	}
}

func scheduled(t *testing.T, pattern models.RecurrencePattern, interval int, anchor string) *models.ScheduledTransaction {
	t.Helper()
	return &models.ScheduledTransaction{
		ID:                 uuid.New(),
		Description:        "rent",
		Amount:             dec("100"),
		Category:           "Housing",
		TypeID:             models.TransactionTypeExpense,
		RecurrencePattern:  pattern,
		RecurrenceInterval: interval,
		NextExecutionDate:  day(t, anchor),
		IsActive:           true,
	}
}

func dates(occ []Occurrence) []string {
	out := make([]string, len(occ))
	for i, o := range occ {
		out[i] = o.ExecutionDate.Format(DateLayout)
	}
	return out
}
