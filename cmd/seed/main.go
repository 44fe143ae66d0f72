package main

import (
	"context"
	"log"
	"time"

	"financeiro/internal/models"
	"financeiro/internal/repository"
	"financeiro/pkg/auth"
	"financeiro/pkg/config"
	"financeiro/pkg/logger"
	"financeiro/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// Seeds an admin account and a handful of example transactions so a fresh
// install has something to look at.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.Migrate(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	admin, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			appLogger.Fatal("Failed to hash password", zap.Error(err))
		}

		now := time.Now()
		admin = &models.User{
			ID:        uuid.New(),
			Name:      "Administrator",
			Username:  "admin",
			Email:     adminEmail,
			Password:  hashed,
			Role:      models.RoleAdmin,
			Status:    models.UserStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, db, admin); err != nil {
			appLogger.Fatal("Failed to create admin user", zap.Error(err))
		}
		appLogger.Info("Admin user created", zap.String("email", adminEmail))
	}

	count, err := txRepo.Count(ctx, admin.ID, repository.TransactionFilter{Kind: models.KindExpense})
	if err != nil {
		appLogger.Fatal("Failed to count transactions", zap.Error(err))
	}
	if count > 0 {
		appLogger.Info("Sample transactions already present, nothing to do")
		return
	}

	today := time.Now()
	samples := []models.Transaction{
		{Description: "Office rent", Amount: 1500, Category: "fixed", Kind: models.KindExpense, Status: models.StatusPaid, Supplier: "ABC Realty", PaymentMethod: "transfer", Notes: "Monthly rent"},
		{Description: "Electricity", Amount: 350, Category: "fixed", Kind: models.KindExpense, Status: models.StatusPending, Supplier: "Power Co", PaymentMethod: "invoice"},
		{Description: "Salaries", Amount: 5000, Category: "payroll", Kind: models.KindExpense, Status: models.StatusPaid, Supplier: "Staff", PaymentMethod: "transfer"},
		{Description: "Office supplies", Amount: 250, Category: "operations", Kind: models.KindExpense, Status: models.StatusPaid, Supplier: "XYZ Stationery", PaymentMethod: "card"},
		{Description: "Product A sale", Amount: 5000, Category: "sales", Kind: models.KindIncome, Status: models.StatusPaid, Supplier: "Customer 1", PaymentMethod: "transfer"},
		{Description: "Consulting service", Amount: 3000, Category: "sales", Kind: models.KindIncome, Status: models.StatusPaid, Supplier: "Customer 2", PaymentMethod: "transfer"},
		{Description: "Product B sale", Amount: 2500, Category: "sales", Kind: models.KindIncome, Status: models.StatusPending, Supplier: "Customer 3", PaymentMethod: "invoice"},
	}

	for i := range samples {
		t := &samples[i]
		t.ID = uuid.New()
		t.OccurrenceDate = today
		t.UserID = admin.ID
		t.CreatedAt = today
		t.UpdatedAt = today
		if err := txRepo.Insert(ctx, db, t); err != nil {
			appLogger.Fatal("Failed to insert sample transaction", zap.Error(err), zap.String("description", t.Description))
		}
	}

	appLogger.Info("Sample data loaded", zap.Int("transactions", len(samples)))
}
