package handlers

import (
	"finbalance/internal/balance"
	"finbalance/internal/dto"
	"finbalance/internal/models"
	"finbalance/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduledTransactionHandler struct {
	scheduledService *service.ScheduledTransactionService
	logger           *zap.Logger
}

func NewScheduledTransactionHandler(scheduledService *service.ScheduledTransactionService, logger *zap.Logger) *ScheduledTransactionHandler {
	return &ScheduledTransactionHandler{
		scheduledService: scheduledService,
		logger:           logger,
	}
}

// ListScheduled godoc
// @Summary List active scheduled transactions
// @Tags scheduled-transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ScheduledTransactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /scheduled-transactions [get]
func (h *ScheduledTransactionHandler) ListScheduled(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	defs, err := h.scheduledService.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "list scheduled transactions")
	}
	return c.JSON(dto.NewScheduledTransactionList(defs))
}

// CreateScheduled godoc
// @Summary Create a scheduled transaction
// @Description Recurrence is validated here, so stored definitions can always be projected
// @Tags scheduled-transactions
// @Accept json
// @Produce json
// @Param request body dto.ScheduledTransactionRequest true "Scheduled transaction"
// @Security Bearer
// @Success 201 {object} dto.ScheduledTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /scheduled-transactions [post]
func (h *ScheduledTransactionHandler) CreateScheduled(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ScheduledTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.logger, service.NewValidationError("body", "must be a JSON scheduled transaction"), "create scheduled transaction")
	}

	in := service.ScheduledTransactionInput{
		Description:        req.Description,
		Amount:             req.Amount,
		Category:           req.Category,
		TypeID:             models.TransactionType(req.TypeID),
		RecurrencePattern:  models.RecurrencePattern(req.RecurrencePattern),
		RecurrenceInterval: req.RecurrenceInterval,
	}
	if req.NextExecutionDate != "" {
		start, err := balance.ParseDay(req.NextExecutionDate)
		if err != nil {
			return respondError(c, h.logger, service.NewValidationError("next_execution_date", "must be a YYYY-MM-DD date"), "create scheduled transaction")
		}
		in.StartDate = start
	}
	if req.RecurrenceEndDate != nil && *req.RecurrenceEndDate != "" {
		end, err := balance.ParseDay(*req.RecurrenceEndDate)
		if err != nil {
			return respondError(c, h.logger, service.NewValidationError("recurrence_end_date", "must be a YYYY-MM-DD date"), "create scheduled transaction")
		}
		in.EndDate = &end
	}

	def, err := h.scheduledService.Create(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, h.logger, err, "create scheduled transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewScheduledTransactionResponse(def))
}

// DeactivateScheduled godoc
// @Summary Stop a scheduled transaction
// @Tags scheduled-transactions
// @Param id path string true "Scheduled transaction ID"
// @Security Bearer
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /scheduled-transactions/{id} [delete]
func (h *ScheduledTransactionHandler) DeactivateScheduled(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid scheduled transaction ID")
	}

	if err := h.scheduledService.Deactivate(c.UserContext(), userID, id); err != nil {
		return respondError(c, h.logger, err, "deactivate scheduled transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
