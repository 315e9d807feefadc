package dto

import (
	"finbalance/internal/balance"
	"finbalance/internal/service"
)

type AvailableBalanceResponse struct {
	Balance          float64 `json:"balance" example:"600"`
	TotalBalance     float64 `json:"total_balance" example:"700"`
	AllocatedSavings float64 `json:"allocated_savings" example:"100"`
}

type MonthlyBalanceResponse struct {
	Month   int     `json:"month" example:"1"`
	Year    int     `json:"year" example:"2024"`
	Balance float64 `json:"balance" example:"700"`
}

type BalanceHistoryPoint struct {
	Month   string  `json:"month" example:"2024/01"`
	Balance float64 `json:"balance" example:"700"`
}

func NewAvailableBalanceResponse(b *service.AvailableBalance) AvailableBalanceResponse {
	return AvailableBalanceResponse{
		Balance:          b.Balance.InexactFloat64(),
		TotalBalance:     b.TotalBalance.InexactFloat64(),
		AllocatedSavings: b.AllocatedSavings.InexactFloat64(),
	}
}

func NewMonthlyBalanceResponse(b *service.MonthlyBalance) MonthlyBalanceResponse {
	return MonthlyBalanceResponse{
		Month:   int(b.Month),
		Year:    b.Year,
		Balance: b.Balance.InexactFloat64(),
	}
}

func NewBalanceHistory(points []balance.MonthlyPoint) []BalanceHistoryPoint {
	out := make([]BalanceHistoryPoint, 0, len(points))
	for _, p := range points {
		out = append(out, BalanceHistoryPoint{Month: p.Month, Balance: p.Balance.InexactFloat64()})
	}
	return out
}
