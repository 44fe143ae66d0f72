package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"financeiro/internal/api"
	"financeiro/internal/api/handlers"
	"financeiro/internal/repository"
	"financeiro/internal/service"
	"financeiro/pkg/auth"
	"financeiro/pkg/config"
	"financeiro/pkg/logger"
	"financeiro/pkg/postgres"

	"go.uber.org/zap"
)

// @title Financeiro API
// @version 1.0
// @description Business finance API: transactions, pricing calculator, dashboard and admin.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting financeiro service")

	// Apply schema migrations before opening the pool
	if err := postgres.Migrate(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	pricingRepo := repository.NewPricingRepository(db, appLogger)
	auditRepo := repository.NewAuditRepository(db, appLogger)
	settingsRepo := repository.NewSettingsRepository(db, appLogger)
	txRunner := repository.NewTxRunner(db)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, txRunner, jwtManager, appLogger)
	txService := service.NewTransactionService(txRepo, auditRepo, txRunner, appLogger)
	pricingService := service.NewPricingService(pricingRepo, appLogger)
	userService := service.NewUserService(userRepo, auditRepo, txRunner, appLogger)
	auditService := service.NewAuditService(auditRepo, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	pricingHandler := handlers.NewPricingHandler(pricingService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(txService, appLogger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, appLogger)
	adminHandler := handlers.NewAdminHandler(userService, auditService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, txHandler, pricingHandler, dashboardHandler, settingsHandler, adminHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
