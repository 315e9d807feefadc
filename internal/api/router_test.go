package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"finbalance/internal/api/handlers"
	"finbalance/internal/balance"
	"finbalance/internal/cache"
	"finbalance/internal/dto"
	"finbalance/internal/models"
	"finbalance/internal/repository"
	"finbalance/internal/service"
	"finbalance/pkg/auth"
	"finbalance/pkg/config"
	"finbalance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryTransactions struct {
	mu    sync.Mutex
	rows  []*models.Transaction
	goals *memoryGoals
}

func (m *memoryTransactions) ListByUser(_ context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Transaction
	for _, r := range m.rows {
		if r.UserID != userID {
			continue
		}
		if filter.From != nil && r.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.Date.After(*filter.To) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memoryTransactions) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryTransactions) Create(_ context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.goals.apply(tx.UserID, goals); err != nil {
		return err
	}
	cp := *tx
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memoryTransactions) Update(_ context.Context, tx *models.Transaction, goals ...models.GoalAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == tx.ID && r.UserID == tx.UserID {
			if err := m.goals.apply(tx.UserID, goals); err != nil {
				return err
			}
			cp := *tx
			m.rows[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryTransactions) Delete(_ context.Context, userID, id uuid.UUID, goals ...models.GoalAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.UserID == userID {
			if err := m.goals.apply(userID, goals); err != nil {
				return err
			}
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryScheduled struct {
	mu   sync.Mutex
	defs []*models.ScheduledTransaction
}

func (m *memoryScheduled) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*models.ScheduledTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ScheduledTransaction
	for _, d := range m.defs {
		if d.UserID == userID && d.IsActive {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryScheduled) Create(_ context.Context, def *models.ScheduledTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *def
	m.defs = append(m.defs, &cp)
	return nil
}

func (m *memoryScheduled) Deactivate(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.defs {
		if d.ID == id && d.UserID == userID && d.IsActive {
			d.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryGoals struct {
	mu    sync.Mutex
	goals []*models.SavingsGoal
	err   error
}

func (m *memoryGoals) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.SavingsGoal
	for _, g := range m.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryGoals) add(userID uuid.UUID, current int64) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &models.SavingsGoal{ID: uuid.New(), UserID: userID, Name: "Vacation", CurrentAmount: decimal.NewFromInt(current)}
	m.goals = append(m.goals, g)
	return g.ID
}

func (m *memoryGoals) apply(userID uuid.UUID, adjs []models.GoalAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make(map[*models.SavingsGoal]decimal.Decimal)
	for _, adj := range adjs {
		var goal *models.SavingsGoal
		for _, g := range m.goals {
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

type testEnv struct {
	app   *fiber.App
	goals *memoryGoals
	token string
	user  uuid.UUID
}

func newTestEnv(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	log := zap.NewNop()
	jwtManager := auth.NewJWTManager("test-secret", "")
	if limiter == nil {
		limiter = middleware.NewRateLimiter(1000, 1000, time.Minute)
	}

	goals := &memoryGoals{}
	txs := &memoryTransactions{goals: goals}
	scheduled := &memoryScheduled{}
	today, err := balance.ParseDay("2024-01-05")
	require.NoError(t, err)

	balanceService := service.NewBalanceService(txs, scheduled, goals,
		cache.NewBalanceCache(cache.DefaultCapacity, cache.DefaultTTL),
		func() time.Time { return today }, log)
	txService := service.NewTransactionService(txs, balanceService, log)
	scheduledService := service.NewScheduledTransactionService(scheduled, balanceService, log)

	app := SetupRouter(Handlers{
		Balance:      handlers.NewBalanceHandler(balanceService, log),
		Transactions: handlers.NewTransactionHandler(txService, log),
		Scheduled:    handlers.NewScheduledTransactionHandler(scheduledService, log),
	}, jwtManager, limiter, config.ServerConfig{}, log)

	user := uuid.New()
	token, err := jwtManager.GenerateToken(user, "user@example.com", time.Hour)
	require.NoError(t, err)

	return &testEnv{app: app, goals: goals, token: token, user: user}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	env.token = ""

	status, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, nil)

	env.token = ""
	status, _ := env.do(t, http.MethodGet, "/api/v1/balance", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	env.token = "not-a-jwt"
	status, _ = env.do(t, http.MethodGet, "/api/v1/balance", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestBalanceFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount": 1000, "type_id": 2, "category": "Salary", "date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	income := decode[dto.TransactionResponse](t, body)
	assert.Equal(t, "income", income.Type)
	assert.Equal(t, "2024-01-01", income.Date)

	status, body = env.do(t, http.MethodGet, "/api/v1/balance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1000.0, decode[dto.AvailableBalanceResponse](t, body).Balance)

	status, _ = env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount": 300, "type_id": 1, "category": "Food", "date": "2024-01-05",
	})
	require.Equal(t, http.StatusCreated, status)

	// the cached 1000 must not survive the write
	status, body = env.do(t, http.MethodGet, "/api/v1/balance", nil)
	require.Equal(t, http.StatusOK, status)
	available := decode[dto.AvailableBalanceResponse](t, body)
	assert.Equal(t, 700.0, available.Balance)
	assert.Equal(t, 700.0, available.TotalBalance)

	status, body = env.do(t, http.MethodGet, "/api/v1/balance/history", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"month":"2024/01","balance":700}]`, string(body))

	status, body = env.do(t, http.MethodGet, "/api/v1/balance/monthly?month=1&year=2024", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"month":1,"year":2024,"balance":700}`, string(body))

	status, body = env.do(t, http.MethodGet, "/api/v1/balance/monthly?month=2&year=2024", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, decode[dto.MonthlyBalanceResponse](t, body).Balance)
}

func TestTransactionCRUD(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount": 50, "type_id": 1, "date": "2024-01-02",
	})
	require.Equal(t, http.StatusCreated, status)
	created := decode[dto.TransactionResponse](t, body)

	status, body = env.do(t, http.MethodPut, "/api/v1/transactions/"+created.ID, map[string]any{
		"amount": 75.5, "type_id": 1, "category": "Food", "date": "2024-01-03",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 75.5, decode[dto.TransactionResponse](t, body).Amount)

	status, body = env.do(t, http.MethodGet, "/api/v1/transactions?from=2024-01-03&to=2024-01-03", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.TransactionResponse](t, body), 1)

	status, _ = env.do(t, http.MethodPut, "/api/v1/transactions/"+uuid.NewString(), map[string]any{
		"amount": 1, "type_id": 1, "date": "2024-01-03",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/transactions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = env.do(t, http.MethodDelete, "/api/v1/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGoalTransferMetadata(t *testing.T) {
	env := newTestEnv(t, nil)
	goalID := env.goals.add(env.user, 150)

	status, body := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount": 100, "type_id": 3, "date": "2024-01-02",
		"metadata": map[string]string{"operation": "withdraw", "goal_id": goalID.String()},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	withdrawal := decode[dto.TransactionResponse](t, body)
	assert.Equal(t, -100.0, withdrawal.Amount)
	require.NotNil(t, withdrawal.Metadata)
	assert.Equal(t, "withdraw", withdrawal.Metadata.Operation)
	assert.Equal(t, goalID.String(), withdrawal.Metadata.GoalID)
	assert.Equal(t, "Savings Goal", withdrawal.Category)

	status, body = env.do(t, http.MethodGet, "/api/v1/balance", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	bal := decode[dto.AvailableBalanceResponse](t, body)
	assert.Equal(t, 100.0, bal.Balance)
	assert.Equal(t, 50.0, bal.AllocatedSavings)
	assert.Equal(t, 150.0, bal.TotalBalance)

	for name, goal := range map[string]string{"unknown goal": uuid.NewString(), "not an id": "g1"} {
		t.Run(name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
				"amount": 10, "type_id": 3, "date": "2024-01-02",
				"metadata": map[string]string{"operation": "allocate", "goal_id": goal},
			})
			require.Equal(t, http.StatusBadRequest, status, string(body))
			resp := decode[dto.ErrorResponse](t, body)
			assert.Contains(t, resp.Fields, "goal_id")
		})
	}
}

func TestValidationErrorsListFields(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		field  string
	}{
		{name: "monthly without params", method: http.MethodGet, path: "/api/v1/balance/monthly", field: "month"},
		{name: "calendar bad date", method: http.MethodGet, path: "/api/v1/calendar?start=2024-13-01&end=2024-01-10", field: "start"},
		{name: "calendar too long", method: http.MethodGet, path: "/api/v1/calendar?start=2024-01-01&end=2026-06-01", field: "end"},
		{name: "transaction bad type", method: http.MethodPost, path: "/api/v1/transactions", body: map[string]any{"amount": 1, "type_id": 4, "date": "2024-01-01"}, field: "type_id"},
		{name: "transaction bad date", method: http.MethodPost, path: "/api/v1/transactions", body: map[string]any{"amount": 1, "type_id": 1, "date": "01/02/2024"}, field: "date"},
		{
			name: "scheduled bad pattern", method: http.MethodPost, path: "/api/v1/scheduled-transactions",
			body:  map[string]any{"amount": 10, "type_id": 1, "recurrence_pattern": "hourly", "next_execution_date": "2024-01-01"},
			field: "recurrence_pattern",
		},
		{
			name: "scheduled zero amount", method: http.MethodPost, path: "/api/v1/scheduled-transactions",
			body:  map[string]any{"amount": 0, "type_id": 1, "recurrence_pattern": "daily", "next_execution_date": "2024-01-01"},
			field: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, status, string(body))
			resp := decode[dto.ErrorResponse](t, body)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}

	status, _ := env.do(t, http.MethodGet, "/api/v1/calendar", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCalendarWithScheduledTransactions(t *testing.T) {
	env := newTestEnv(t, nil)

	status, _ := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount": 1000, "type_id": 2, "date": "2023-12-28",
	})
	require.Equal(t, http.StatusCreated, status)
	status, body := env.do(t, http.MethodPost, "/api/v1/scheduled-transactions", map[string]any{
		"description": "rent", "amount": 100, "type_id": 1, "category": "Housing",
		"recurrence_pattern": "weekly", "recurrence_interval": 1, "next_execution_date": "2024-01-02",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	def := decode[dto.ScheduledTransactionResponse](t, body)
	assert.True(t, def.IsActive)

	status, body = env.do(t, http.MethodGet, "/api/v1/calendar?start=2024-01-01&end=2024-01-10", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	cal := decode[dto.CalendarResponse](t, body)
	require.Len(t, cal.Days, 10)
	assert.Equal(t, 1000.0, cal.OpeningBalance)
	assert.Equal(t, 900.0, cal.Days[1].Balance)
	assert.Equal(t, 800.0, cal.Days[9].Balance)
	assert.True(t, cal.Days[4].IsToday)
	assert.Len(t, cal.ScheduledOccurrences, 2)
	require.Len(t, cal.DailyBalances, 10)
	assert.Equal(t, 900.0, cal.DailyBalances["2024-01-02"].Balance)
	assert.Equal(t, "2024-01-02", cal.DailyBalances["2024-01-02"].Date)
	assert.True(t, cal.DailyBalances["2024-01-05"].IsToday)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/scheduled-transactions/"+def.ID, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/calendar?start=2024-01-01&end=2024-01-10", nil)
	require.Equal(t, http.StatusOK, status)
	cal = decode[dto.CalendarResponse](t, body)
	assert.Empty(t, cal.ScheduledOccurrences)
	assert.Equal(t, 1000.0, cal.Days[9].Balance)
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	env := newTestEnv(t, nil)
	env.goals.err = errors.New("connection refused")

	status, body := env.do(t, http.MethodGet, "/api/v1/balance", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotContains(t, string(body), "connection refused")
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, middleware.NewRateLimiter(0.001, 1, time.Minute))

	status, _ := env.do(t, http.MethodGet, "/api/v1/balance/history", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, "/api/v1/balance/history", nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
}
