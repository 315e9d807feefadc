package balance

import (
	"fmt"
	"time"

	"finbalance/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Occurrence is one dated instance of a scheduled transaction.
type Occurrence struct {
	ExecutionDate     time.Time
	Amount            decimal.Decimal
	TypeID            models.TransactionType
	Category          string
	Description       string
	SourceScheduledID uuid.UUID
}

// AsTransaction views the occurrence as a transaction row so it can go
// through the classifier.
func (o Occurrence) AsTransaction() *models.Transaction {
	return &models.Transaction{
		ID:          o.SourceScheduledID,
		Amount:      o.Amount,
		TypeID:      o.TypeID,
		Category:    o.Category,
		Description: o.Description,
		Date:        o.ExecutionDate,
	}
}

// ValidateRecurrence checks a definition before it is stored.
func ValidateRecurrence(pattern models.RecurrencePattern, interval int, anchor time.Time, end *time.Time) error {
	switch pattern {
	case models.RecurrenceOnce:
		return nil
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceYearly:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRecurrencePattern, pattern)
	}
	if interval <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, interval)
	}
	if end != nil && Day(*end).Before(Day(anchor)) {
		return ErrInvalidEndDate
	}
	return nil
}

// ProjectOccurrences expands def into the occurrences dated within
// [windowStart, windowEnd]. Occurrences never precede the anchor date and
// never pass the optional recurrence end date.
func ProjectOccurrences(def *models.ScheduledTransaction, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	if !def.IsActive {
		return nil, nil
	}

	anchor := Day(def.NextExecutionDate)
	windowStart, windowEnd = Day(windowStart), Day(windowEnd)

	if def.RecurrencePattern == models.RecurrenceOnce {
		if anchor.Before(windowStart) || anchor.After(windowEnd) {
			return nil, nil
		}
		return []Occurrence{newOccurrence(def, anchor)}, nil
	}

	if err := ValidateRecurrence(def.RecurrencePattern, def.RecurrenceInterval, anchor, nil); err != nil {
		return nil, fmt.Errorf("scheduled transaction %s: %w", def.ID, err)
	}

	limit := windowEnd
	if def.RecurrenceEndDate != nil && Day(*def.RecurrenceEndDate).Before(limit) {
		limit = Day(*def.RecurrenceEndDate)
	}
	if limit.Before(anchor) || limit.Before(windowStart) {
		return nil, nil
	}

	step := stepper(def.RecurrencePattern, def.RecurrenceInterval, anchor)

	var out []Occurrence
	for k := firstStep(def.RecurrencePattern, def.RecurrenceInterval, anchor, windowStart); ; k++ {
		date := step(k)
		if date.After(limit) {
			break
		}
		if date.Before(windowStart) {
			continue
		}
		out = append(out, newOccurrence(def, date))
	}
	return out, nil
}

// stepper returns the date of the k-th period after anchor. Calendar patterns
// are computed from the anchor each time so month-end clamping does not drift.
func stepper(pattern models.RecurrencePattern, interval int, anchor time.Time) func(k int) time.Time {
	switch pattern {
	case models.RecurrenceDaily:
		return func(k int) time.Time { return anchor.AddDate(0, 0, k*interval) }
	case models.RecurrenceWeekly:
		return func(k int) time.Time { return anchor.AddDate(0, 0, 7*k*interval) }
	case models.RecurrenceMonthly:
		return func(k int) time.Time { return addMonthsClamped(anchor, k*interval) }
	default:
		return func(k int) time.Time { return addMonthsClamped(anchor, 12*k*interval) }
	}
}

// firstStep estimates the first period index that may land inside the window,
// erring low by at most one period.
func firstStep(pattern models.RecurrencePattern, interval int, anchor, windowStart time.Time) int {
	if !windowStart.After(anchor) {
		return 0
	}
	var k int
	switch pattern {
	case models.RecurrenceDaily:
		k = daysBetween(anchor, windowStart) / interval
	case models.RecurrenceWeekly:
		k = daysBetween(anchor, windowStart) / (7 * interval)
	case models.RecurrenceMonthly:
		k = monthsBetween(anchor, windowStart)/interval - 1
	default:
		k = monthsBetween(anchor, windowStart)/(12*interval) - 1
	}
	if k < 0 {
		return 0
	}
	return k
}

func newOccurrence(def *models.ScheduledTransaction, date time.Time) Occurrence {
	return Occurrence{
		ExecutionDate:     date,
		Amount:            def.Amount,
		TypeID:            def.TypeID,
		Category:          def.Category,
		Description:       def.Description,
		SourceScheduledID: def.ID,
	}
}
