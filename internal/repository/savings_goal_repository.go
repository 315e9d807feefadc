package repository

import (
	"context"
	"errors"
	"fmt"

	"finbalance/internal/models"
	"finbalance/pkg/fieldcrypt"
	"finbalance/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const savingsGoalsTable = "savings_goals"

var (
	ErrGoalNotFound  = errors.New("savings goal not found")
	ErrGoalOverdrawn = errors.New("savings goal amount would become negative")
)

type SavingsGoalRepository struct {
	db     postgres.Querier
	codec  *fieldcrypt.Codec
	logger *zap.Logger
}

func NewSavingsGoalRepository(db postgres.Querier, codec *fieldcrypt.Codec, logger *zap.Logger) *SavingsGoalRepository {
	return &SavingsGoalRepository{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

func (r *SavingsGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	sql, args, err := squirrel.Select("id", "user_id", "name", "target_amount", "current_amount", "deadline", "created_at", "updated_at").
		From(savingsGoalsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.SavingsGoal
	for rows.Next() {
		var (
			goal models.SavingsGoal
			name string
		)
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goal.Name, err = r.codec.DecryptField(name)
		if err != nil {
			return nil, fmt.Errorf("savings goal %s name: %w", goal.ID, err)
		}
		goals = append(goals, &goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *SavingsGoalRepository) Create(ctx context.Context, goal *models.SavingsGoal) error {
	name, err := r.codec.EncryptField(goal.Name)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Insert(savingsGoalsTable).
		Columns("id", "user_id", "name", "target_amount", "current_amount", "deadline", "created_at", "updated_at").
		Values(goal.ID, goal.UserID, name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func adjustGoalQuery(userID uuid.UUID, adj models.GoalAdjustment) squirrel.UpdateBuilder {
	return squirrel.Update(savingsGoalsTable).
		Set("current_amount", squirrel.Expr("current_amount + ?", adj.Delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": adj.GoalID, "user_id": userID}).
		Suffix("RETURNING current_amount").
		PlaceholderFormat(squirrel.Dollar)
}

// adjustGoalAmount applies adj to a goal owned by userID. It is meant to run
// inside the transaction that writes the row causing the adjustment, so an
// error here rolls both back.
func adjustGoalAmount(ctx context.Context, q postgres.Querier, userID uuid.UUID, adj models.GoalAdjustment) error {
	sql, args, err := adjustGoalQuery(userID, adj).ToSql()
	if err != nil {
		return err
	}

	var current decimal.Decimal
	if err := q.QueryRow(ctx, sql, args...).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s %s: %w", savingsGoalsTable, adj.GoalID, ErrGoalNotFound)
		}
		return err
	}
	if current.IsNegative() {
		return fmt.Errorf("%s %s would hold %s: %w", savingsGoalsTable, adj.GoalID, current, ErrGoalOverdrawn)
	}
	return nil
}
