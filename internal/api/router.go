package api

import (
	"finbalance/docs"
	"finbalance/internal/api/handlers"
	"finbalance/internal/dto"
	"finbalance/pkg/auth"
	"finbalance/pkg/config"
	"finbalance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Balance      *handlers.BalanceHandler
	Transactions *handlers.TransactionHandler
	Scheduled    *handlers.ScheduledTransactionHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	limiter *middleware.RateLimiter,
	serverCfg config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := app.Group("/api/v1",
		middleware.AuthMiddleware(jwtManager, appLogger),
		limiter.Handler(appLogger),
	)

	bal := protected.Group("/balance")
	bal.Get("", h.Balance.GetAvailableBalance)
	bal.Get("/monthly", h.Balance.GetMonthlyBalance)
	bal.Get("/history", h.Balance.GetBalanceHistory)

	protected.Get("/calendar", h.Balance.GetCalendar)

	txs := protected.Group("/transactions")
	txs.Get("", h.Transactions.ListTransactions)
	txs.Post("", h.Transactions.CreateTransaction)
	txs.Put("/:id", h.Transactions.UpdateTransaction)
	txs.Delete("/:id", h.Transactions.DeleteTransaction)

	scheduled := protected.Group("/scheduled-transactions")
	scheduled.Get("", h.Scheduled.ListScheduled)
	scheduled.Post("", h.Scheduled.CreateScheduled)
	scheduled.Delete("/:id", h.Scheduled.DeactivateScheduled)

	return app
}
