package service

import (
	"context"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/models"
	"finbalance/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxDescription = 500
	maxCategory    = 100
)

type TransactionInput struct {
	Amount      decimal.Decimal
	TypeID      models.TransactionType
	Category    string
	Description string
	Date        time.Time
	Operation   models.SavingsOperation
	GoalID      string
}

type TransactionService struct {
	store       TransactionWriter
	invalidator BalanceInvalidator
	logger      *zap.Logger
}

func NewTransactionService(store TransactionWriter, invalidator BalanceInvalidator, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:       store,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	txs, err := s.store.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, upstream("transactions", err)
	}
	return txs, nil
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	log := logger.FromContext(ctx, s.logger)
	if err := normalizeTransactionInput(&in); err != nil {
		log.Warn("Rejected transaction", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	tx := &models.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
	}
	applyTransactionInput(tx, in, now)

	if err := s.store.Create(ctx, tx, mergeGoalAdjustments(log, nil, tx)...); err != nil {
		if gerr := goalError(err); gerr != nil {
			log.Warn("Rejected goal transfer", zap.Error(err))
			return nil, gerr
		}
		log.Error("Failed to create transaction", zap.Error(err))
		return nil, err
	}
	s.invalidator.InvalidateUser(userID)

	log.Info("Transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", tx.TypeID.String()),
	)
	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	log := logger.FromContext(ctx, s.logger)
	if err := normalizeTransactionInput(&in); err != nil {
		log.Warn("Rejected transaction update", zap.Error(err))
		return nil, err
	}

	tx, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	previous := *tx
	applyTransactionInput(tx, in, time.Now().UTC())

	if err := s.store.Update(ctx, tx, mergeGoalAdjustments(log, &previous, tx)...); err != nil {
		if gerr := goalError(err); gerr != nil {
			log.Warn("Rejected goal transfer", zap.Error(err))
			return nil, gerr
		}
		log.Error("Failed to update transaction", zap.Error(err), zap.String("transaction_id", id.String()))
		return nil, err
	}
	s.invalidator.InvalidateUser(userID)

	log.Info("Transaction updated", zap.String("transaction_id", id.String()))
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContext(ctx, s.logger)
	tx, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID, id, mergeGoalAdjustments(log, tx, nil)...); err != nil {
		if gerr := goalError(err); gerr != nil {
			log.Warn("Rejected goal transfer", zap.Error(err))
			return gerr
		}
		return err
	}
	s.invalidator.InvalidateUser(userID)

	log.Info("Transaction deleted", zap.String("transaction_id", id.String()))
	return nil
}

func applyTransactionInput(tx *models.Transaction, in TransactionInput, now time.Time) {
	tx.Amount = in.Amount
	tx.TypeID = in.TypeID
	tx.Category = in.Category
	tx.Description = in.Description
	tx.Date = in.Date
	tx.Metadata = models.TransactionMetadata{Operation: in.Operation, GoalID: in.GoalID}
	tx.UpdatedAt = now
}

// normalizeTransactionInput validates in and rewrites savings goal amounts to
// the stored sign convention: allocations positive, withdrawals negative.
func normalizeTransactionInput(in *TransactionInput) error {
	verr := &ValidationError{}

	in.Category = cleanText(in.Category, maxCategory)
	in.Description = cleanText(in.Description, maxDescription)
	in.Date = balance.Day(in.Date)

	if !in.TypeID.Valid() {
		verr.add("type_id", "must be 1 (expense), 2 (income) or 3 (savings)")
	}
	if in.Date.IsZero() {
		verr.add("date", "is required")
	}
	if in.Amount.IsZero() {
		verr.add("amount", "must not be zero")
	}

	switch in.Operation {
	case models.SavingsOperationNone:
		if in.TypeID != models.TransactionTypeSavings && in.Amount.IsNegative() {
			verr.add("amount", "must be a positive magnitude for expenses and income")
		}
	case models.SavingsOperationAllocate, models.SavingsOperationWithdraw:
		if in.TypeID != models.TransactionTypeSavings {
			verr.add("operation", "only applies to savings transactions")
		}
		if in.GoalID == "" {
			verr.add("goal_id", "is required for goal transfers")
		} else if _, err := uuid.Parse(in.GoalID); err != nil {
			verr.add("goal_id", "must be a savings goal id")
		}
		if in.Category == "" {
			in.Category = models.CategorySavingsGoal
		}
		in.Amount = in.Amount.Abs()
		if in.Operation == models.SavingsOperationWithdraw {
			in.Amount = in.Amount.Neg()
		}
	default:
		verr.add("operation", "must be allocate or withdraw")
	}

	return verr.orNil()
}

// mergeGoalAdjustments returns the goal changes of replacing before with
// after: the transfer of before is undone and the one of after applied. Either
// side may be nil. Deltas on the same goal are summed so an edit never passes
// through an intermediate negative amount.
func mergeGoalAdjustments(log *zap.Logger, before, after *models.Transaction) []models.GoalAdjustment {
	var out []models.GoalAdjustment
	add := func(tx *models.Transaction, sign int64) {
		if tx == nil || tx.TypeID != models.TransactionTypeSavings || tx.Metadata.Operation == models.SavingsOperationNone {
			return
		}
		goalID, err := uuid.Parse(tx.Metadata.GoalID)
		if err != nil {
			log.Warn("Goal transfer names no valid goal, goal left untouched",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("goal_id", tx.Metadata.GoalID),
			)
			return
		}
		delta := tx.Amount.Mul(decimal.NewFromInt(sign))
		for i := range out {
			if out[i].GoalID == goalID {
				out[i].Delta = out[i].Delta.Add(delta)
				return
			}
		}
		out = append(out, models.GoalAdjustment{GoalID: goalID, Delta: delta})
	}
	add(before, -1)
	add(after, 1)

	kept := out[:0]
	for _, adj := range out {
		if !adj.Delta.IsZero() {
			kept = append(kept, adj)
		}
	}
	return kept
}
