package main

import (
	"context"
	"flag"
	"log"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/models"
	"finbalance/internal/repository"
	"finbalance/pkg/config"
	"finbalance/pkg/fieldcrypt"
	"finbalance/pkg/logger"
	"finbalance/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// seed fills the database with three months of demo activity for one user so
// the balance endpoints have something to show.
func main() {
	userFlag := flag.String("user", "", "user ID to seed, a new one is generated when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			appLogger.Fatal("Invalid user ID", zap.String("user", *userFlag), zap.Error(err))
		}
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	codec, err := fieldcrypt.NewCodec(cfg.Crypto.FieldKey)
	if err != nil {
		appLogger.Fatal("Failed to initialize field codec", zap.Error(err))
	}
	txRepo := repository.NewTransactionRepository(db, codec, appLogger)
	scheduledRepo := repository.NewScheduledTransactionRepository(db, codec, appLogger)
	goalRepo := repository.NewSavingsGoalRepository(db, codec, appLogger)

	today := balance.Day(time.Now())
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	now := time.Now().UTC()
	vacation := &models.SavingsGoal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(2000),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := goalRepo.Create(ctx, vacation); err != nil {
		appLogger.Fatal("Failed to seed savings goal", zap.Error(err))
	}

	created := 0
	for m := -2; m <= 0; m++ {
		month := firstOfMonth.AddDate(0, m, 0)
		for _, tx := range demoMonth(userID, vacation.ID, month) {
			if tx.Date.After(today) {
				continue
			}
			var goals []models.GoalAdjustment
			if tx.Metadata.Operation == models.SavingsOperationAllocate {
				goals = append(goals, models.GoalAdjustment{GoalID: vacation.ID, Delta: tx.Amount})
			}
			if err := txRepo.Create(ctx, tx, goals...); err != nil {
				appLogger.Fatal("Failed to seed transaction", zap.Error(err))
			}
			created++
		}
	}

	for _, def := range demoSchedule(userID, firstOfMonth.AddDate(0, 1, 0)) {
		if err := scheduledRepo.Create(ctx, def); err != nil {
			appLogger.Fatal("Failed to seed scheduled transaction", zap.Error(err))
		}
	}

	appLogger.Info("Seed completed",
		zap.String("user_id", userID.String()),
		zap.Int("transactions", created),
	)
}

func demoMonth(userID, goalID uuid.UUID, month time.Time) []*models.Transaction {
	row := func(day int, typeID models.TransactionType, amount int64, category, description string) *models.Transaction {
		now := time.Now().UTC()
		return &models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      decimal.NewFromInt(amount),
			TypeID:      typeID,
			Category:    category,
			Description: description,
			Date:        month.AddDate(0, 0, day-1),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	allocation := row(2, models.TransactionTypeSavings, 200, models.CategorySavingsGoal, "Transfer to vacation fund")
	allocation.Metadata = models.TransactionMetadata{Operation: models.SavingsOperationAllocate, GoalID: goalID.String()}

	return []*models.Transaction{
		row(1, models.TransactionTypeIncome, 3200, "Salary", "Monthly salary"),
		allocation,
		row(3, models.TransactionTypeExpense, 1100, "Housing", "Rent"),
		row(8, models.TransactionTypeExpense, 85, "Food", "Groceries"),
		row(15, models.TransactionTypeExpense, 60, "Utilities", "Electricity"),
		row(22, models.TransactionTypeExpense, 42, "Food", "Dinner out"),
	}
}

func demoSchedule(userID uuid.UUID, start time.Time) []*models.ScheduledTransaction {
	now := time.Now().UTC()
	def := func(pattern models.RecurrencePattern, interval int, typeID models.TransactionType, amount int64, category, description string) *models.ScheduledTransaction {
		return &models.ScheduledTransaction{
			ID:                 uuid.New(),
			UserID:             userID,
			Description:        description,
			Amount:             decimal.NewFromInt(amount),
			Category:           category,
			TypeID:             typeID,
			RecurrencePattern:  pattern,
			RecurrenceInterval: interval,
			NextExecutionDate:  start,
			IsActive:           true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	return []*models.ScheduledTransaction{
		def(models.RecurrenceMonthly, 1, models.TransactionTypeIncome, 3200, "Salary", "Monthly salary"),
		def(models.RecurrenceMonthly, 1, models.TransactionTypeExpense, 1100, "Housing", "Rent"),
		def(models.RecurrenceWeekly, 1, models.TransactionTypeExpense, 90, "Food", "Groceries"),
		def(models.RecurrenceMonthly, 3, models.TransactionTypeExpense, 240, "Insurance", "Quarterly insurance"),
	}
}
