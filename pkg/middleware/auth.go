package middleware

import (
	"strings"

	"finbalance/pkg/auth"
	"finbalance/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LocalUserID    = "userID"
	LocalEmail     = "email"
	LocalRequestID = "requestid"
)

func AuthMiddleware(jwtManager *auth.JWTManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqLogger := log
		if rid, ok := c.Locals(LocalRequestID).(string); ok && rid != "" {
			reqLogger = reqLogger.With(zap.String("request_id", rid))
		}

		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			reqLogger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			reqLogger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		userID, _ := claims.UserID()

		reqLogger = reqLogger.With(zap.String("user_id", userID.String()))
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, claims.Email)
		c.SetUserContext(logger.ToContext(c.UserContext(), reqLogger))

		return c.Next()
	}
}
