package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType int

const (
	TransactionTypeExpense TransactionType = 1
	TransactionTypeIncome  TransactionType = 2
	TransactionTypeSavings TransactionType = 3
)

// Valid reports whether t is one of the three known transaction types.
func (t TransactionType) Valid() bool {
	return t >= TransactionTypeExpense && t <= TransactionTypeSavings
}

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeExpense:
		return "expense"
	case TransactionTypeIncome:
		return "income"
	case TransactionTypeSavings:
		return "savings"
	default:
		return "unknown"
	}
}

// CategorySavingsGoal marks legacy goal transfers that were stored without metadata.
const CategorySavingsGoal = "Savings Goal"

type SavingsOperation string

const (
	SavingsOperationNone     SavingsOperation = ""
	SavingsOperationAllocate SavingsOperation = "allocate"
	SavingsOperationWithdraw SavingsOperation = "withdraw"
)

// TransactionMetadata is the typed form of the free-form metadata column.
type TransactionMetadata struct {
	Operation SavingsOperation `json:"operation,omitempty"`
	GoalID    string           `json:"goal_id,omitempty"`
}

// Transaction amounts follow the sign convention of their type: expenses and
// income are positive magnitudes, savings withdrawals are stored negative.
type Transaction struct {
	ID          uuid.UUID           `db:"id"`
	UserID      uuid.UUID           `db:"user_id"`
	Amount      decimal.Decimal     `db:"amount"`
	TypeID      TransactionType     `db:"type_id"`
	Category    string              `db:"category"`
	Description string              `db:"description"`
	Metadata    TransactionMetadata `db:"metadata"`
	Date        time.Time           `db:"date"`
	CreatedAt   time.Time           `db:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at"`
}

// TransactionFilter bounds a listing by day, both ends inclusive.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
}
