package dto

import (
	"time"

	"finbalance/internal/balance"
)

type CalendarDay struct {
	Date       string  `json:"date" example:"2024-01-05"`
	Balance    float64 `json:"balance"`
	Change     float64 `json:"change"`
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	IsNegative bool    `json:"is_negative"`
	IsPast     bool    `json:"is_past"`
	IsToday    bool    `json:"is_today"`
	IsFuture   bool    `json:"is_future"`
}

func newCalendarDay(d balance.DailyBalanceEntry) CalendarDay {
	return CalendarDay{
		Date:       d.Date.Format(balance.DateLayout),
		Balance:    d.Balance.InexactFloat64(),
		Change:     d.Change.InexactFloat64(),
		Income:     d.Income.InexactFloat64(),
		Expenses:   d.Expenses.InexactFloat64(),
		IsNegative: d.IsNegative,
		IsPast:     d.IsPast,
		IsToday:    d.IsToday,
		IsFuture:   d.IsFuture,
	}
}

type OccurrenceResponse struct {
	ScheduledTransactionID string  `json:"scheduled_transaction_id"`
	ExecutionDate          string  `json:"execution_date"`
	Amount                 float64 `json:"amount"`
	TypeID                 int     `json:"type_id"`
	Category               string  `json:"category"`
	Description            string  `json:"description"`
}

type CalendarResponse struct {
	StartDate            string                 `json:"start_date"`
	EndDate              string                 `json:"end_date"`
	OpeningBalance       float64                `json:"opening_balance"`
	Days                 []CalendarDay          `json:"days"`
	DailyBalances        map[string]CalendarDay `json:"daily_balances"`
	PastTransactions     []TransactionResponse  `json:"past_transactions"`
	ScheduledOccurrences []OccurrenceResponse   `json:"scheduled_occurrences"`
}

func NewCalendarResponse(cal *balance.Calendar, start, end time.Time) CalendarResponse {
	resp := CalendarResponse{
		StartDate:            start.Format(balance.DateLayout),
		EndDate:              end.Format(balance.DateLayout),
		OpeningBalance:       cal.OpeningBalance.InexactFloat64(),
		Days:                 make([]CalendarDay, 0, len(cal.Days)),
		DailyBalances:        make(map[string]CalendarDay, len(cal.Days)),
		PastTransactions:     NewTransactionList(cal.PastTransactions),
		ScheduledOccurrences: make([]OccurrenceResponse, 0, len(cal.ScheduledOccurrences)),
	}
	for _, d := range cal.Days {
		resp.Days = append(resp.Days, newCalendarDay(d))
	}
	for date, d := range cal.ByDate() {
		resp.DailyBalances[date] = newCalendarDay(d)
	}
	for _, o := range cal.ScheduledOccurrences {
		resp.ScheduledOccurrences = append(resp.ScheduledOccurrences, OccurrenceResponse{
			ScheduledTransactionID: o.SourceScheduledID.String(),
			ExecutionDate:          o.ExecutionDate.Format(balance.DateLayout),
			Amount:                 o.Amount.InexactFloat64(),
			TypeID:                 int(o.TypeID),
			Category:               o.Category,
			Description:            o.Description,
		})
	}
	return resp
}
