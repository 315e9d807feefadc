package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
)

const (
	DefaultTTL      = 2 * time.Minute
	DefaultCapacity = 1000

	// ScopeAll keys the all-time available balance.
	ScopeAll = "all"
)

// MonthScope returns the scope key of a single month, formatted YYYY-MM.
func MonthScope(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

type Key struct {
	UserID uuid.UUID
	Scope  string
}

// Snapshot is a fully computed balance result. Monthly scopes only fill
// Balance.
type Snapshot struct {
	Balance          decimal.Decimal
	TotalBalance     decimal.Decimal
	AllocatedSavings decimal.Decimal
	ComputedAt       time.Time
}

// BalanceCache memoizes balance snapshots per user and scope with a TTL and a
// global LRU bound. It is safe for concurrent use.
//
// Writers that compute a snapshot take a Token before reading the stores and
// commit with SetIfUnchanged, which refuses the snapshot when the user was
// invalidated in between.
type BalanceCache struct {
	lru *expirable.LRU[Key, Snapshot]
	ttl time.Duration

	mu          sync.Mutex
	seq         uint64
	invalidated map[uuid.UUID]invalidation
}

type invalidation struct {
	seq uint64
	at  time.Time
}

func NewBalanceCache(capacity int, ttl time.Duration) *BalanceCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BalanceCache{
		lru:         expirable.NewLRU[Key, Snapshot](capacity, nil, ttl),
		ttl:         ttl,
		invalidated: make(map[uuid.UUID]invalidation),
	}
}

func (c *BalanceCache) Get(userID uuid.UUID, scope string) (Snapshot, bool) {
	return c.lru.Get(Key{UserID: userID, Scope: scope})
}

// Set stores value unconditionally.
func (c *BalanceCache) Set(userID uuid.UUID, scope string, value Snapshot) {
	c.lru.Add(Key{UserID: userID, Scope: scope}, value)
}

// Token marks the start of a computation whose result will be committed with
// SetIfUnchanged.
func (c *BalanceCache) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// SetIfUnchanged stores value unless userID was invalidated after token was
// taken. It reports whether the value was stored. Invalidations are
// remembered for one TTL, which bounds how long a computation may run and
// still be checked.
func (c *BalanceCache) SetIfUnchanged(userID uuid.UUID, scope string, value Snapshot, token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if inv, ok := c.invalidated[userID]; ok && inv.seq > token {
		return false
	}
	c.lru.Add(Key{UserID: userID, Scope: scope}, value)
	return true
}

// InvalidateUser drops every scope cached for userID and returns how many
// entries were removed. Computations started before the call can no longer
// commit for this user.
func (c *BalanceCache) InvalidateUser(userID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.seq++
	c.invalidated[userID] = invalidation{seq: c.seq, at: now}
	for id, inv := range c.invalidated {
		if now.Sub(inv.at) > c.ttl {
			delete(c.invalidated, id)
		}
	}

	removed := 0
	for _, k := range c.lru.Keys() {
		if k.UserID == userID && c.lru.Remove(k) {
			removed++
		}
	}
	return removed
}

func (c *BalanceCache) Len() int {
	return c.lru.Len()
}
