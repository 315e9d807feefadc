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

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Transactions of the current user ordered by date, optionally bounded by day
// @Tags transactions
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var filter models.TransactionFilter
	if filter.From, err = parseDayQuery(c, "from"); err != nil {
		return respondError(c, h.logger, err, "list transactions")
	}
	if filter.To, err = parseDayQuery(c, "to"); err != nil {
		return respondError(c, h.logger, err, "list transactions")
	}

	txs, err := h.txService.List(c.UserContext(), userID, filter)
	if err != nil {
		return respondError(c, h.logger, err, "list transactions")
	}
	return c.JSON(dto.NewTransactionList(txs))
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	in, err := parseTransactionRequest(c)
	if err != nil {
		return respondError(c, h.logger, err, "create transaction")
	}

	tx, err := h.txService.Create(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, h.logger, err, "create transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// UpdateTransaction godoc
// @Summary Replace a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Transaction"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}
	in, err := parseTransactionRequest(c)
	if err != nil {
		return respondError(c, h.logger, err, "update transaction")
	}

	tx, err := h.txService.Update(c.UserContext(), userID, id, in)
	if err != nil {
		return respondError(c, h.logger, err, "update transaction")
	}
	return c.JSON(dto.NewTransactionResponse(tx))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	if err := h.txService.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, h.logger, err, "delete transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseTransactionRequest(c *fiber.Ctx) (service.TransactionInput, error) {
	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return service.TransactionInput{}, service.NewValidationError("body", "must be a JSON transaction")
	}

	in := service.TransactionInput{
		Amount:      req.Amount,
		TypeID:      models.TransactionType(req.TypeID),
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := balance.ParseDay(req.Date)
		if err != nil {
			return service.TransactionInput{}, service.NewValidationError("date", "must be a YYYY-MM-DD date")
		}
		in.Date = date
	}
	if req.Metadata != nil {
		in.Operation = models.SavingsOperation(req.Metadata.Operation)
		in.GoalID = req.Metadata.GoalID
	}
	return in, nil
}
