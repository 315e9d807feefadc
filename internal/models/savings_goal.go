package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Deadline      *time.Time      `db:"deadline"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// GoalAdjustment is a change to a goal's current amount that is written
// together with the transaction row causing it. Allocations carry a positive
// delta, withdrawals a negative one.
type GoalAdjustment struct {
	GoalID uuid.UUID
	Delta  decimal.Decimal
}
