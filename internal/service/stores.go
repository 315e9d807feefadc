package service

import (
	"context"

	"finbalance/internal/models"

	"github.com/google/uuid"
)

type TransactionStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error)
}

// TransactionWriter applies the goal adjustments passed to a write atomically
// with the row itself. A missing or foreign goal fails the write with
// repository.ErrGoalNotFound, a goal driven below zero with
// repository.ErrGoalOverdrawn.
type TransactionWriter interface {
	TransactionStore
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error
	Update(ctx context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error
	Delete(ctx context.Context, userID, id uuid.UUID, goals ...models.GoalAdjustment) error
}

type ScheduledTransactionStore interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledTransaction, error)
}

type ScheduledTransactionWriter interface {
	ScheduledTransactionStore
	Create(ctx context.Context, def *models.ScheduledTransaction) error
	Deactivate(ctx context.Context, userID, id uuid.UUID) error
}

type SavingsGoalStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error)
}

// BalanceInvalidator is notified after every successful write that can change
// a user's balance.
type BalanceInvalidator interface {
	InvalidateUser(userID uuid.UUID)
}
