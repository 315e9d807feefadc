package service

import (
	"context"
	"fmt"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/cache"
	"finbalance/internal/models"
	"finbalance/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxCalendarDays is the longest calendar range, counting both ends.
const MaxCalendarDays = 731

type AvailableBalance struct {
	Balance          decimal.Decimal
	TotalBalance     decimal.Decimal
	AllocatedSavings decimal.Decimal
}

type MonthlyBalance struct {
	Month   time.Month
	Year    int
	Balance decimal.Decimal
}

type BalanceService struct {
	txStore        TransactionStore
	scheduledStore ScheduledTransactionStore
	goalStore      SavingsGoalStore
	cache          *cache.BalanceCache
	now            func() time.Time
	logger         *zap.Logger
}

func NewBalanceService(
	txStore TransactionStore,
	scheduledStore ScheduledTransactionStore,
	goalStore SavingsGoalStore,
	balanceCache *cache.BalanceCache,
	now func() time.Time,
	logger *zap.Logger,
) *BalanceService {
	if now == nil {
		now = time.Now
	}
	return &BalanceService{
		txStore:        txStore,
		scheduledStore: scheduledStore,
		goalStore:      goalStore,
		cache:          balanceCache,
		now:            now,
		logger:         logger,
	}
}

// GetAvailableBalance returns the spendable balance with savings goal
// transfers taken into account, plus the amount parked in goals.
func (s *BalanceService) GetAvailableBalance(ctx context.Context, userID uuid.UUID) (*AvailableBalance, error) {
	log := logger.FromContext(ctx, s.logger)

	if snap, ok := s.cache.Get(userID, cache.ScopeAll); ok {
		log.Debug("Balance cache hit", zap.String("scope", cache.ScopeAll))
		return &AvailableBalance{
			Balance:          snap.Balance,
			TotalBalance:     snap.TotalBalance,
			AllocatedSavings: snap.AllocatedSavings,
		}, nil
	}
	log.Debug("Balance cache miss", zap.String("scope", cache.ScopeAll))
	token := s.cache.Token()

	var (
		txs   []*models.Transaction
		goals []*models.SavingsGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.txStore.ListByUser(gctx, userID, models.TransactionFilter{})
		return upstream("transactions", err)
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalStore.ListByUser(gctx, userID)
		return upstream("savings_goals", err)
	})
	if err := g.Wait(); err != nil {
		log.Error("Failed to fetch balance inputs", zap.Error(err))
		return nil, err
	}

	available, err := balance.Accumulate(txs, balance.ModeAvailableBalance)
	if err != nil {
		return nil, err
	}
	allocated := decimal.Zero
	for _, goal := range goals {
		allocated = allocated.Add(goal.CurrentAmount)
	}

	result := &AvailableBalance{
		Balance:          available,
		TotalBalance:     available.Add(allocated),
		AllocatedSavings: allocated,
	}
	s.commit(ctx, userID, cache.ScopeAll, token, cache.Snapshot{
		Balance:          result.Balance,
		TotalBalance:     result.TotalBalance,
		AllocatedSavings: result.AllocatedSavings,
	})
	return result, nil
}

// GetMonthlyBalance sums the rows dated within one calendar month.
func (s *BalanceService) GetMonthlyBalance(ctx context.Context, userID uuid.UUID, month, year int) (*MonthlyBalance, error) {
	log := logger.FromContext(ctx, s.logger)
	if err := validateMonth(month, year); err != nil {
		log.Warn("Rejected monthly balance request", zap.Error(err))
		return nil, err
	}
	m := time.Month(month)
	scope := cache.MonthScope(year, m)

	if snap, ok := s.cache.Get(userID, scope); ok {
		log.Debug("Balance cache hit", zap.String("scope", scope))
		return &MonthlyBalance{Month: m, Year: year, Balance: snap.Balance}, nil
	}
	log.Debug("Balance cache miss", zap.String("scope", scope))
	token := s.cache.Token()

	from, to := balance.MonthRange(year, m)
	txs, err := s.txStore.ListByUser(ctx, userID, models.TransactionFilter{From: &from, To: &to})
	if err != nil {
		err = upstream("transactions", err)
		log.Error("Failed to fetch monthly transactions", zap.Error(err))
		return nil, err
	}

	total, err := balance.Accumulate(balance.FilterRange(txs, from, to), balance.ModeHistorical)
	if err != nil {
		return nil, err
	}

	s.commit(ctx, userID, scope, token, cache.Snapshot{Balance: total})
	return &MonthlyBalance{Month: m, Year: year, Balance: total}, nil
}

// GetBalanceHistory returns the running balance at the end of every month
// that has activity, oldest first.
func (s *BalanceService) GetBalanceHistory(ctx context.Context, userID uuid.UUID) ([]balance.MonthlyPoint, error) {
	txs, err := s.txStore.ListByUser(ctx, userID, models.TransactionFilter{})
	if err != nil {
		err = upstream("transactions", err)
		logger.FromContext(ctx, s.logger).Error("Failed to fetch transaction history", zap.Error(err))
		return nil, err
	}
	return balance.AccumulateMonthly(txs, balance.ModeHistorical)
}

// GetCalendar assembles the per-day ledger of [start, end] from actual rows
// and active scheduled definitions.
func (s *BalanceService) GetCalendar(ctx context.Context, userID uuid.UUID, start, end time.Time) (*balance.Calendar, error) {
	log := logger.FromContext(ctx, s.logger)
	start, end = balance.Day(start), balance.Day(end)
	if err := validateCalendarRange(start, end); err != nil {
		log.Warn("Rejected calendar request", zap.Error(err))
		return nil, err
	}

	var (
		txs  []*models.Transaction
		defs []*models.ScheduledTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.txStore.ListByUser(gctx, userID, models.TransactionFilter{To: &end})
		return upstream("transactions", err)
	})
	g.Go(func() error {
		var err error
		defs, err = s.scheduledStore.ListActiveByUser(gctx, userID)
		return upstream("scheduled_transactions", err)
	})
	if err := g.Wait(); err != nil {
		log.Error("Failed to fetch calendar inputs", zap.Error(err))
		return nil, err
	}

	cal, err := balance.AssembleCalendar(txs, defs, start, end, s.now())
	if err != nil {
		log.Error("Failed to assemble calendar", zap.Error(err))
		return nil, err
	}
	return cal, nil
}

// InvalidateUser drops every cached balance of userID.
func (s *BalanceService) InvalidateUser(userID uuid.UUID) {
	removed := s.cache.InvalidateUser(userID)
	s.logger.Debug("Balance cache invalidated",
		zap.String("user_id", userID.String()),
		zap.Int("entries", removed),
	)
}

// commit stores a finished result unless the request was abandoned while it
// was being computed or a write invalidated the user after token was taken.
func (s *BalanceService) commit(ctx context.Context, userID uuid.UUID, scope string, token uint64, snap cache.Snapshot) {
	log := logger.FromContext(ctx, s.logger)
	if ctx.Err() != nil {
		log.Debug("Discarding balance of cancelled request", zap.String("scope", scope))
		return
	}
	snap.ComputedAt = s.now()
	if !s.cache.SetIfUnchanged(userID, scope, snap, token) {
		log.Debug("Discarding balance computed before a write", zap.String("scope", scope))
	}
}

func validateMonth(month, year int) error {
	verr := &ValidationError{}
	if month < 1 || month > 12 {
		verr.add("month", "must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		verr.add("year", "must be between 1900 and 9999")
	}
	return verr.orNil()
}

func validateCalendarRange(start, end time.Time) error {
	verr := &ValidationError{}
	switch {
	case start.IsZero():
		verr.add("start", "is required")
	case end.IsZero():
		verr.add("end", "is required")
	case end.Before(start):
		verr.add("end", "must not be before start")
	case int(end.Sub(start)/(24*time.Hour))+1 > MaxCalendarDays:
		verr.add("end", fmt.Sprintf("range must not exceed %d days", MaxCalendarDays))
	}
	return verr.orNil()
}
