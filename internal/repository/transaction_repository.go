package repository

import (
	"context"
	"fmt"

	"finbalance/internal/models"
	"finbalance/pkg/fieldcrypt"
	"finbalance/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const transactionsTable = "transactions"

var transactionColumns = []string{
	"id", "user_id", "amount", "type_id", "category", "description", "metadata", "date", "created_at", "updated_at",
}

type TransactionRepository struct {
	db     postgres.Querier
	codec  *fieldcrypt.Codec
	logger *zap.Logger
}

func NewTransactionRepository(db postgres.Querier, codec *fieldcrypt.Codec, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

func listTransactionsQuery(userID uuid.UUID, filter models.TransactionFilter) squirrel.SelectBuilder {
	query := squirrel.Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	return query
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	sql, args, err := listTransactionsQuery(userID, filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	sql, args, err := squirrel.Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := r.scan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapNotFound(err, transactionsTable)
	}
	return tx, nil
}

// Create inserts tx. Goal adjustments, if any, are applied in the same
// database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	description, metadata, err := r.sealed(tx)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Insert(transactionsTable).
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Amount, int(tx.TypeID), tx.Category, description, metadata, tx.Date, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.withGoals(ctx, tx.UserID, goals, func(q postgres.Querier) error {
		_, err := q.Exec(ctx, sql, args...)
		return err
	})
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	description, metadata, err := r.sealed(tx)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Update(transactionsTable).
		SetMap(map[string]interface{}{
			"amount":      tx.Amount,
			"type_id":     int(tx.TypeID),
			"category":    tx.Category,
			"description": description,
			"metadata":    metadata,
			"date":        tx.Date,
			"updated_at":  tx.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": tx.ID, "user_id": tx.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.withGoals(ctx, tx.UserID, goals, func(q postgres.Querier) error {
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s %s: %w", transactionsTable, tx.ID, ErrNotFound)
		}
		return nil
	})
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID, goals ...models.GoalAdjustment) error {
	sql, args, err := squirrel.Delete(transactionsTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return r.withGoals(ctx, userID, goals, func(q postgres.Querier) error {
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s %s: %w", transactionsTable, id, ErrNotFound)
		}
		return nil
	})
}

// withGoals runs write and then every goal adjustment in one database
// transaction. Without adjustments write runs directly on the pool.
func (r *TransactionRepository) withGoals(ctx context.Context, userID uuid.UUID, goals []models.GoalAdjustment, write func(q postgres.Querier) error) error {
	if len(goals) == 0 {
		return write(r.db)
	}
	return pgx.BeginFunc(ctx, r.db, func(dbTx pgx.Tx) error {
		if err := write(dbTx); err != nil {
			return err
		}
		for _, adj := range goals {
			if err := adjustGoalAmount(ctx, dbTx, userID, adj); err != nil {
				return err
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *TransactionRepository) scan(row rowScanner) (*models.Transaction, error) {
	var (
		tx          models.Transaction
		typeID      int
		description string
		metadata    []byte
	)
	if err := row.Scan(
		&tx.ID, &tx.UserID, &tx.Amount, &typeID, &tx.Category, &description, &metadata, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}
	tx.TypeID = models.TransactionType(typeID)

	plain, err := r.codec.DecryptField(description)
	if err != nil {
		return nil, fmt.Errorf("transaction %s description: %w", tx.ID, err)
	}
	tx.Description = plain

	tx.Metadata, err = parseMetadata(metadata)
	if err != nil {
		// a broken metadata blob only loses the savings hint; the row is still usable
		r.logger.Warn("Ignoring unreadable transaction metadata",
			zap.String("transaction_id", tx.ID.String()),
			zap.Error(err),
		)
	}

	return &tx, nil
}

func (r *TransactionRepository) sealed(tx *models.Transaction) (string, []byte, error) {
	description, err := r.codec.EncryptField(tx.Description)
	if err != nil {
		return "", nil, err
	}
	metadata, err := encodeMetadata(tx.Metadata)
	if err != nil {
		return "", nil, err
	}
	return description, metadata, nil
}
