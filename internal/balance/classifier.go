package balance

import (
	"fmt"

	"finbalance/internal/models"

	"github.com/shopspring/decimal"
)

type Bucket string

const (
	BucketIncome            Bucket = "income"
	BucketExpense           Bucket = "expense"
	BucketSavingsAllocation Bucket = "savings_allocation"
	BucketSavingsWithdrawal Bucket = "savings_withdrawal"
	BucketSavingsRegular    Bucket = "savings_regular"
)

// Mode selects how savings rows contribute to a balance.
//
// ModeAvailableBalance distinguishes goal allocations and withdrawals, which
// is what the current available balance reports. ModeHistorical counts every
// savings row at face value and backs the monthly, history and calendar views.
// The two disagree for goal transfers; both are kept until product confirms
// which one the historical views should follow.
type Mode int

const (
	ModeAvailableBalance Mode = iota
	ModeHistorical
)

func (m Mode) String() string {
	if m == ModeHistorical {
		return "historical"
	}
	return "available_balance"
}

type Classification struct {
	SignedDelta decimal.Decimal
	Bucket      Bucket
}

// Classify decides the bucket of tx and the signed amount it contributes to
// a balance computed in the given mode.
func Classify(tx *models.Transaction, mode Mode) (Classification, error) {
	switch tx.TypeID {
	case models.TransactionTypeIncome:
		return Classification{SignedDelta: tx.Amount, Bucket: BucketIncome}, nil
	case models.TransactionTypeExpense:
		return Classification{SignedDelta: tx.Amount.Neg(), Bucket: BucketExpense}, nil
	case models.TransactionTypeSavings:
		if mode == ModeHistorical {
			return Classification{SignedDelta: tx.Amount, Bucket: BucketSavingsRegular}, nil
		}
		return classifySavings(tx), nil
	default:
		return Classification{}, fmt.Errorf("%w: type_id=%d transaction=%s", ErrUnknownTransactionType, tx.TypeID, tx.ID)
	}
}

// Withdrawal rows carry a negative amount, so negating it yields an increase.
func classifySavings(tx *models.Transaction) Classification {
	switch tx.Metadata.Operation {
	case models.SavingsOperationAllocate:
		return Classification{SignedDelta: tx.Amount.Neg(), Bucket: BucketSavingsAllocation}
	case models.SavingsOperationWithdraw:
		return Classification{SignedDelta: tx.Amount.Neg(), Bucket: BucketSavingsWithdrawal}
	}

	if tx.Category == models.CategorySavingsGoal {
		switch tx.Amount.Sign() {
		case 1:
			return Classification{SignedDelta: tx.Amount.Neg(), Bucket: BucketSavingsAllocation}
		case -1:
			return Classification{SignedDelta: tx.Amount.Neg(), Bucket: BucketSavingsWithdrawal}
		}
	}

	return Classification{SignedDelta: tx.Amount, Bucket: BucketSavingsRegular}
}
