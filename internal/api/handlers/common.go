package handlers

import (
	"context"
	"errors"
	"time"

	"finbalance/internal/balance"
	"finbalance/internal/dto"
	"finbalance/internal/service"
	"finbalance/pkg/logger"
	"finbalance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.LocalUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

// respondError maps service errors onto status codes. Details of server-side
// failures are logged, never returned.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, action string) error {
	log = logger.FromContext(c.UserContext(), log)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:  "Invalid request",
			Fields: verr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrUpstreamFetch):
		log.Error("Failed to "+action, zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "Financial data is temporarily unavailable"})
	case errors.Is(err, balance.ErrConfiguration):
		log.Error("Failed to "+action+": invalid stored data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to " + action})
	case errors.Is(err, context.Canceled):
		log.Debug("Request cancelled", zap.String("action", action))
		return c.SendStatus(fiber.StatusRequestTimeout)
	default:
		log.Error("Failed to "+action, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to " + action})
	}
}

// parseDayQuery reads an optional YYYY-MM-DD query parameter.
func parseDayQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := balance.ParseDay(raw)
	if err != nil {
		return nil, service.NewValidationError(key, "must be a YYYY-MM-DD date")
	}
	return &d, nil
}
