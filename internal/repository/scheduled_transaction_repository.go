package repository

import (
	"context"
	"fmt"
	"time"

	"finbalance/internal/models"
	"finbalance/pkg/fieldcrypt"
	"finbalance/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const scheduledTransactionsTable = "scheduled_transactions"

var scheduledColumns = []string{
	"id", "user_id", "description", "amount", "category", "type_id", "recurrence_pattern", "recurrence_interval",
	"next_execution_date", "recurrence_end_date", "is_active", "created_at", "updated_at",
}

type ScheduledTransactionRepository struct {
	db     postgres.Querier
	codec  *fieldcrypt.Codec
	logger *zap.Logger
}

func NewScheduledTransactionRepository(db postgres.Querier, codec *fieldcrypt.Codec, logger *zap.Logger) *ScheduledTransactionRepository {
	return &ScheduledTransactionRepository{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

func listActiveScheduledQuery(userID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(scheduledColumns...).
		From(scheduledTransactionsTable).
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		OrderBy("next_execution_date ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ScheduledTransactionRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledTransaction, error) {
	sql, args, err := listActiveScheduledQuery(userID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []*models.ScheduledTransaction
	for rows.Next() {
		var (
			def         models.ScheduledTransaction
			typeID      int
			pattern     string
			description string
		)
		if err := rows.Scan(
			&def.ID, &def.UserID, &description, &def.Amount, &def.Category, &typeID, &pattern, &def.RecurrenceInterval,
			&def.NextExecutionDate, &def.RecurrenceEndDate, &def.IsActive, &def.CreatedAt, &def.UpdatedAt,
		); err != nil {
			return nil, err
		}
		def.TypeID = models.TransactionType(typeID)
		def.RecurrencePattern = models.RecurrencePattern(pattern)

		def.Description, err = r.codec.DecryptField(description)
		if err != nil {
			return nil, fmt.Errorf("scheduled transaction %s description: %w", def.ID, err)
		}
		defs = append(defs, &def)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return defs, nil
}

func (r *ScheduledTransactionRepository) Create(ctx context.Context, def *models.ScheduledTransaction) error {
	description, err := r.codec.EncryptField(def.Description)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Insert(scheduledTransactionsTable).
		Columns(scheduledColumns...).
		Values(def.ID, def.UserID, description, def.Amount, def.Category, int(def.TypeID), string(def.RecurrencePattern),
			def.RecurrenceInterval, def.NextExecutionDate, def.RecurrenceEndDate, def.IsActive, def.CreatedAt, def.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Deactivate soft-deletes a definition so it is no longer projected.
func (r *ScheduledTransactionRepository) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := squirrel.Update(scheduledTransactionsTable).
		Set("is_active", false).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "user_id": userID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", scheduledTransactionsTable, id, ErrNotFound)
	}
	return nil
}
