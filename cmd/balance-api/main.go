package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finbalance/internal/api"
	"finbalance/internal/api/handlers"
	"finbalance/internal/cache"
	"finbalance/internal/repository"
	"finbalance/internal/service"
	"finbalance/pkg/auth"
	"finbalance/pkg/config"
	"finbalance/pkg/fieldcrypt"
	"finbalance/pkg/logger"
	"finbalance/pkg/middleware"
	"finbalance/pkg/postgres"

	"go.uber.org/zap"
)

// @title Finbalance API
// @version 1.0
// @description Balance, monthly summary, history and cash-flow calendar for personal finances

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting balance API")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	codec, err := fieldcrypt.NewCodec(cfg.Crypto.FieldKey)
	if err != nil {
		appLogger.Fatal("Failed to initialize field codec", zap.Error(err))
	}
	if !codec.Enabled() {
		appLogger.Warn("FIELD_ENCRYPTION_KEY is not set, text columns are stored unencrypted")
	}

	// Repositories
	txRepo := repository.NewTransactionRepository(db, codec, appLogger)
	scheduledRepo := repository.NewScheduledTransactionRepository(db, codec, appLogger)
	goalRepo := repository.NewSavingsGoalRepository(db, codec, appLogger)

	// Services
	balanceCache := cache.NewBalanceCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	balanceService := service.NewBalanceService(txRepo, scheduledRepo, goalRepo, balanceCache, time.Now, appLogger)
	txService := service.NewTransactionService(txRepo, balanceService, appLogger)
	scheduledService := service.NewScheduledTransactionService(scheduledRepo, balanceService, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleExpiry)

	app := api.SetupRouter(api.Handlers{
		Balance:      handlers.NewBalanceHandler(balanceService, appLogger),
		Transactions: handlers.NewTransactionHandler(txService, appLogger),
		Scheduled:    handlers.NewScheduledTransactionHandler(scheduledService, appLogger),
	}, jwtManager, limiter, cfg.Server, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
