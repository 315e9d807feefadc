package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecurrencePattern string

const (
	RecurrenceOnce    RecurrencePattern = "once"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

// ScheduledTransaction is a template for future income, expense or savings
// events. Amount is always an unsigned magnitude.
type ScheduledTransaction struct {
	ID                 uuid.UUID         `db:"id"`
	UserID             uuid.UUID         `db:"user_id"`
	Description        string            `db:"description"`
	Amount             decimal.Decimal   `db:"amount"`
	Category           string            `db:"category"`
	TypeID             TransactionType   `db:"type_id"`
	RecurrencePattern  RecurrencePattern `db:"recurrence_pattern"`
	RecurrenceInterval int               `db:"recurrence_interval"`
	NextExecutionDate  time.Time         `db:"next_execution_date"`
	RecurrenceEndDate  *time.Time        `db:"recurrence_end_date"`
	IsActive           bool              `db:"is_active"`
	CreatedAt          time.Time         `db:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}
