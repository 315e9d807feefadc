package service

import (
	"context"
	"errors"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/models"
	"finbalance/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ScheduledTransactionInput struct {
	Description        string
	Amount             decimal.Decimal
	Category           string
	TypeID             models.TransactionType
	RecurrencePattern  models.RecurrencePattern
	RecurrenceInterval int
	StartDate          time.Time
	EndDate            *time.Time
}

type ScheduledTransactionService struct {
	store       ScheduledTransactionWriter
	invalidator BalanceInvalidator
	logger      *zap.Logger
}

func NewScheduledTransactionService(store ScheduledTransactionWriter, invalidator BalanceInvalidator, logger *zap.Logger) *ScheduledTransactionService {
	return &ScheduledTransactionService{
		store:       store,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *ScheduledTransactionService) List(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledTransaction, error) {
	defs, err := s.store.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, upstream("scheduled_transactions", err)
	}
	return defs, nil
}

// Create stores a definition once it is known to be projectable.
func (s *ScheduledTransactionService) Create(ctx context.Context, userID uuid.UUID, in ScheduledTransactionInput) (*models.ScheduledTransaction, error) {
	log := logger.FromContext(ctx, s.logger)
	if err := normalizeScheduledInput(&in); err != nil {
		log.Warn("Rejected scheduled transaction", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	def := &models.ScheduledTransaction{
		ID:                 uuid.New(),
		UserID:             userID,
		Description:        in.Description,
		Amount:             in.Amount,
		Category:           in.Category,
		TypeID:             in.TypeID,
		RecurrencePattern:  in.RecurrencePattern,
		RecurrenceInterval: in.RecurrenceInterval,
		NextExecutionDate:  in.StartDate,
		RecurrenceEndDate:  in.EndDate,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.store.Create(ctx, def); err != nil {
		log.Error("Failed to create scheduled transaction", zap.Error(err))
		return nil, err
	}
	s.invalidator.InvalidateUser(userID)

	log.Info("Scheduled transaction created",
		zap.String("scheduled_id", def.ID.String()),
		zap.String("pattern", string(def.RecurrencePattern)),
		zap.Int("interval", def.RecurrenceInterval),
	)
	return def, nil
}

func (s *ScheduledTransactionService) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.Deactivate(ctx, userID, id); err != nil {
		return err
	}
	s.invalidator.InvalidateUser(userID)

	logger.FromContext(ctx, s.logger).Info("Scheduled transaction deactivated", zap.String("scheduled_id", id.String()))
	return nil
}

func normalizeScheduledInput(in *ScheduledTransactionInput) error {
	verr := &ValidationError{}

	in.Description = cleanText(in.Description, maxDescription)
	in.Category = cleanText(in.Category, maxCategory)
	in.StartDate = balance.Day(in.StartDate)
	if in.EndDate != nil {
		end := balance.Day(*in.EndDate)
		in.EndDate = &end
	}
	if in.RecurrencePattern == models.RecurrenceOnce {
		in.RecurrenceInterval = 1
		in.EndDate = nil
	} else if in.RecurrenceInterval == 0 {
		in.RecurrenceInterval = 1
	}

	if !in.TypeID.Valid() {
		verr.add("type_id", "must be 1 (expense), 2 (income) or 3 (savings)")
	}
	if !in.Amount.IsPositive() {
		verr.add("amount", "must be a positive magnitude")
	}
	if in.StartDate.IsZero() {
		verr.add("next_execution_date", "is required")
	}

	err := balance.ValidateRecurrence(in.RecurrencePattern, in.RecurrenceInterval, in.StartDate, in.EndDate)
	switch {
	case err == nil:
	case errors.Is(err, balance.ErrUnknownRecurrencePattern):
		verr.add("recurrence_pattern", "must be once, daily, weekly, monthly or yearly")
	case errors.Is(err, balance.ErrInvalidInterval):
		verr.add("recurrence_interval", "must be a positive integer")
	case errors.Is(err, balance.ErrInvalidEndDate):
		verr.add("recurrence_end_date", "must not be before next_execution_date")
	default:
		return err
	}

	return verr.orNil()
}
