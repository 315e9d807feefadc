package handlers

import (
	"finbalance/internal/dto"
	"finbalance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BalanceHandler struct {
	balanceService *service.BalanceService
	logger         *zap.Logger
}

func NewBalanceHandler(balanceService *service.BalanceService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		logger:         logger,
	}
}

// GetAvailableBalance godoc
// @Summary Available balance
// @Description Spendable balance with savings goal transfers netted out, plus the amount held in goals
// @Tags balance
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AvailableBalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /balance [get]
func (h *BalanceHandler) GetAvailableBalance(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	result, err := h.balanceService.GetAvailableBalance(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "compute balance")
	}
	return c.JSON(dto.NewAvailableBalanceResponse(result))
}

// GetMonthlyBalance godoc
// @Summary Monthly balance
// @Description Net of all transactions dated within one calendar month
// @Tags balance
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Security Bearer
// @Success 200 {object} dto.MonthlyBalanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /balance/monthly [get]
func (h *BalanceHandler) GetMonthlyBalance(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)

	result, err := h.balanceService.GetMonthlyBalance(c.UserContext(), userID, month, year)
	if err != nil {
		return respondError(c, h.logger, err, "compute monthly balance")
	}
	return c.JSON(dto.NewMonthlyBalanceResponse(result))
}

// GetBalanceHistory godoc
// @Summary Balance history
// @Description Running balance at the end of every month with activity, oldest first
// @Tags balance
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BalanceHistoryPoint
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /balance/history [get]
func (h *BalanceHandler) GetBalanceHistory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	points, err := h.balanceService.GetBalanceHistory(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "compute balance history")
	}
	return c.JSON(dto.NewBalanceHistory(points))
}

// GetCalendar godoc
// @Summary Cash-flow calendar
// @Description Per-day balances over a date range, combining recorded and scheduled transactions
// @Tags balance
// @Produce json
// @Param start query string true "First day (YYYY-MM-DD)"
// @Param end query string true "Last day (YYYY-MM-DD), at most 731 days after start"
// @Security Bearer
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /calendar [get]
func (h *BalanceHandler) GetCalendar(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDayQuery(c, "start")
	if err != nil {
		return respondError(c, h.logger, err, "build calendar")
	}
	end, err := parseDayQuery(c, "end")
	if err != nil {
		return respondError(c, h.logger, err, "build calendar")
	}
	if start == nil || end == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "start and end are required"})
	}

	cal, err := h.balanceService.GetCalendar(c.UserContext(), userID, *start, *end)
	if err != nil {
		return respondError(c, h.logger, err, "build calendar")
	}
	return c.JSON(dto.NewCalendarResponse(cal, *start, *end))
}
