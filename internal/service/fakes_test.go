package service

import (
	"context"
	"sync"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/models"
	"finbalance/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeTransactionStore struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]*models.Transaction
	listCalls    int
	lastFilter   models.TransactionFilter
	listErr      error
	ignoreFilter bool
	goals        *fakeGoalStore
	// onList runs after every listing, outside the store lock.
	onList func()
}

func newFakeTransactionStore(rows ...*models.Transaction) *fakeTransactionStore {
	s := &fakeTransactionStore{rows: make(map[uuid.UUID]*models.Transaction)}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *fakeTransactionStore) ListByUser(_ context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	out, err := s.list(userID, filter)
	if s.onList != nil {
		s.onList()
	}
	return out, err
}

func (s *fakeTransactionStore) list(userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []*models.Transaction
	for _, r := range s.rows {
		if r.UserID != userID {
			continue
		}
		if !s.ignoreFilter {
			if filter.From != nil && balance.Day(r.Date).Before(*filter.From) {
				continue
			}
			if filter.To != nil && balance.Day(r.Date).After(*filter.To) {
				continue
			}
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeTransactionStore) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.goals.apply(tx.UserID, goals); err != nil {
		return err
	}
	cp := *tx
	s.rows[tx.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) Update(_ context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[tx.ID]
	if !ok || r.UserID != tx.UserID {
		return repository.ErrNotFound
	}
	if err := s.goals.apply(tx.UserID, goals); err != nil {
		return err
	}
	cp := *tx
	s.rows[tx.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) Delete(_ context.Context, userID, id uuid.UUID, goals ...models.GoalAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || r.UserID != userID {
		return repository.ErrNotFound
	}
	if err := s.goals.apply(userID, goals); err != nil {
		return err
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeTransactionStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

type fakeScheduledStore struct {
	mu      sync.Mutex
	defs    []*models.ScheduledTransaction
	created []*models.ScheduledTransaction
	listErr error
}

func (s *fakeScheduledStore) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*models.ScheduledTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.ScheduledTransaction
	for _, d := range s.defs {
		if d.UserID == userID && d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *fakeScheduledStore) Create(_ context.Context, def *models.ScheduledTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs = append(s.defs, def)
	s.created = append(s.created, def)
	return nil
}

func (s *fakeScheduledStore) Deactivate(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.defs {
		if d.ID == id && d.UserID == userID && d.IsActive {
			d.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeGoalStore struct {
	mu      sync.Mutex
	goals   []*models.SavingsGoal
	listErr error
}

func (s *fakeGoalStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.SavingsGoal
	for _, g := range s.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

// apply changes every goal or none, like the repository's database transaction.
func (s *fakeGoalStore) apply(userID uuid.UUID, adjs []models.GoalAdjustment) error {
	if len(adjs) == 0 {
		return nil
	}
	if s == nil {
		return repository.ErrGoalNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[*models.SavingsGoal]decimal.Decimal)
	for _, adj := range adjs {
		var goal *models.SavingsGoal
		for _, g := range s.goals {
			if g.ID == adj.GoalID && g.UserID == userID {
				goal = g
			}
		}
		if goal == nil {
			return repository.ErrGoalNotFound
		}
		current, ok := next[goal]
		if !ok {
			current = goal.CurrentAmount
		}
		current = current.Add(adj.Delta)
		if current.IsNegative() {
			return repository.ErrGoalOverdrawn
		}
		next[goal] = current
	}
	for goal, amount := range next {
		goal.CurrentAmount = amount
	}
	return nil
}

func (s *fakeGoalStore) amount(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g.CurrentAmount
		}
	}
	return decimal.Zero
}

type countingInvalidator struct {
	mu    sync.Mutex
	users []uuid.UUID
}

func (c *countingInvalidator) InvalidateUser(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, userID)
}

func fixedClock(date string) func() time.Time {
	d, err := balance.ParseDay(date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return d.Add(9 * time.Hour) }
}
