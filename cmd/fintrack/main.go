package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/api"
	"fintrack/internal/api/handlers"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"
	"fintrack/pkg/postgres"

	"go.uber.org/zap"
)

// @title Fintrack API
// @version 1.0
// @description Personal finance tracker: accounts, transactions, transfers, categories and spending stats

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
	appLogger.Info("Starting fintrack service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	chainRepo := repository.NewChainRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	accountService := service.NewAccountService(accountRepo, txRepo, appLogger)
	txService := service.NewTransactionService(txRepo, chainRepo, accountRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	statsService := service.NewStatsService(accountRepo, txRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	accountHandler := handlers.NewAccountHandler(accountService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, appLogger)
	statsHandler := handlers.NewStatsHandler(statsService, appLogger)

	app := api.SetupRouter(authHandler, accountHandler, txHandler, categoryHandler, statsHandler, jwtManager, appLogger)

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
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
