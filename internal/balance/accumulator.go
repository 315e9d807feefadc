package balance

import (
	"sort"
	"time"

	"finbalance/internal/models"

	"github.com/shopspring/decimal"
)

const MonthLabelLayout = "2006/01"

type RunningPoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

type MonthlyPoint struct {
	Month   string
	Balance decimal.Decimal
}

// Accumulate sums the signed deltas of txs. Order does not matter.
func Accumulate(txs []*models.Transaction, mode Mode) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range txs {
		c, err := Classify(tx, mode)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(c.SignedDelta)
	}
	return total, nil
}

// AccumulateRunning returns the running balance after each distinct day in
// txs. Rows sharing a day are summed into one point.
func AccumulateRunning(txs []*models.Transaction, mode Mode) ([]RunningPoint, error) {
	sorted := SortByDate(txs)

	var points []RunningPoint
	running := decimal.Zero
	for _, tx := range sorted {
		c, err := Classify(tx, mode)
		if err != nil {
			return nil, err
		}
		running = running.Add(c.SignedDelta)

		day := Day(tx.Date)
		if n := len(points); n > 0 && points[n-1].Date.Equal(day) {
			points[n-1].Balance = running
			continue
		}
		points = append(points, RunningPoint{Date: day, Balance: running})
	}
	return points, nil
}

// AccumulateMonthly collapses the running balance to one point per month with
// activity, holding the balance at the end of that month.
func AccumulateMonthly(txs []*models.Transaction, mode Mode) ([]MonthlyPoint, error) {
	daily, err := AccumulateRunning(txs, mode)
	if err != nil {
		return nil, err
	}

	var months []MonthlyPoint
	for _, p := range daily {
		label := p.Date.Format(MonthLabelLayout)
		if n := len(months); n > 0 && months[n-1].Month == label {
			months[n-1].Balance = p.Balance
			continue
		}
		months = append(months, MonthlyPoint{Month: label, Balance: p.Balance})
	}
	return months, nil
}

// FilterRange keeps the rows dated within [from, to], compared by day.
func FilterRange(txs []*models.Transaction, from, to time.Time) []*models.Transaction {
	from, to = Day(from), Day(to)
	out := make([]*models.Transaction, 0, len(txs))
	for _, tx := range txs {
		d := Day(tx.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortByDate returns a copy of txs ordered by day ascending. The input slice
// is left untouched.
func SortByDate(txs []*models.Transaction) []*models.Transaction {
	sorted := make([]*models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Day(sorted[i].Date).Before(Day(sorted[j].Date))
	})
	return sorted
}
