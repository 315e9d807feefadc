package balance

import (
	"fmt"
	"time"

	"finbalance/internal/models"

	"github.com/shopspring/decimal"
)

// DailyBalanceEntry is one day of an assembled calendar. The past/today/future
// flags depend on the today argument given to AssembleCalendar, so the same
// inputs produce different flags on different days.
type DailyBalanceEntry struct {
	Date       time.Time
	Balance    decimal.Decimal
	Change     decimal.Decimal
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	IsNegative bool
	IsPast     bool
	IsToday    bool
	IsFuture   bool
}

type Calendar struct {
	OpeningBalance       decimal.Decimal
	Days                 []DailyBalanceEntry
	PastTransactions     []*models.Transaction
	ScheduledOccurrences []Occurrence
}

// ByDate indexes the days by their YYYY-MM-DD form.
func (c *Calendar) ByDate() map[string]DailyBalanceEntry {
	out := make(map[string]DailyBalanceEntry, len(c.Days))
	for _, d := range c.Days {
		out[d.Date.Format(DateLayout)] = d
	}
	return out
}

// AssembleCalendar merges actual transactions with projected occurrences into
// one entry per day of [start, end]. All sums use ModeHistorical.
func AssembleCalendar(
	past []*models.Transaction,
	defs []*models.ScheduledTransaction,
	start, end, today time.Time,
) (*Calendar, error) {
	start, end, today = Day(start), Day(end), Day(today)
	if end.Before(start) {
		return nil, fmt.Errorf("calendar range ends %s before it starts %s", end.Format(DateLayout), start.Format(DateLayout))
	}
	past = SortByDate(past)

	opening, err := openingBalance(past, defs, start)
	if err != nil {
		return nil, err
	}

	var occurrences []Occurrence
	for _, def := range defs {
		occ, err := ProjectOccurrences(def, start, end)
		if err != nil {
			return nil, err
		}
		occurrences = append(occurrences, occ...)
	}

	inWindow := FilterRange(past, start, end)
	actualByDay := make(map[time.Time][]*models.Transaction)
	for _, tx := range inWindow {
		d := Day(tx.Date)
		actualByDay[d] = append(actualByDay[d], tx)
	}
	projectedByDay := make(map[time.Time][]*models.Transaction)
	for _, o := range occurrences {
		projectedByDay[o.ExecutionDate] = append(projectedByDay[o.ExecutionDate], o.AsTransaction())
	}

	cal := &Calendar{
		OpeningBalance:       opening,
		Days:                 make([]DailyBalanceEntry, 0, daysBetween(start, end)+1),
		PastTransactions:     inWindow,
		ScheduledOccurrences: occurrences,
	}

	running := opening
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := DailyBalanceEntry{
			Date:     day,
			Change:   decimal.Zero,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		for _, group := range [][]*models.Transaction{actualByDay[day], projectedByDay[day]} {
			for _, tx := range group {
				c, err := Classify(tx, ModeHistorical)
				if err != nil {
					return nil, err
				}
				entry.Change = entry.Change.Add(c.SignedDelta)
				switch tx.TypeID {
				case models.TransactionTypeIncome:
					entry.Income = entry.Income.Add(tx.Amount)
				case models.TransactionTypeExpense:
					entry.Expenses = entry.Expenses.Add(tx.Amount)
				}
			}
		}

		running = running.Add(entry.Change)
		entry.Balance = running
		entry.IsNegative = running.IsNegative()
		entry.IsPast = day.Before(today)
		entry.IsToday = day.Equal(today)
		entry.IsFuture = day.After(today)
		cal.Days = append(cal.Days, entry)
	}
	return cal, nil
}

// openingBalance is the balance immediately before start: past rows dated
// before start plus occurrences projected between the earliest known date
// and the day before start.
func openingBalance(sortedPast []*models.Transaction, defs []*models.ScheduledTransaction, start time.Time) (decimal.Decimal, error) {
	earliest := start
	if len(sortedPast) > 0 && Day(sortedPast[0].Date).Before(earliest) {
		earliest = Day(sortedPast[0].Date)
	}

	var before []*models.Transaction
	for _, tx := range sortedPast {
		if !Day(tx.Date).Before(start) {
			break
		}
		before = append(before, tx)
	}

	if earliest.Before(start) {
		dayBefore := start.AddDate(0, 0, -1)
		for _, def := range defs {
			occ, err := ProjectOccurrences(def, earliest, dayBefore)
			if err != nil {
				return decimal.Zero, err
			}
			for _, o := range occ {
				before = append(before, o.AsTransaction())
			}
		}
	}

	return Accumulate(before, ModeHistorical)
}
