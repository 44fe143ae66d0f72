package api

import (
	"financeiro/docs"
	"financeiro/internal/api/handlers"
	"financeiro/pkg/auth"
	"financeiro/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	txHandler *handlers.TransactionHandler,
	pricingHandler *handlers.PricingHandler,
	dashboardHandler *handlers.DashboardHandler,
	settingsHandler *handlers.SettingsHandler,
	adminHandler *handlers.AdminHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the OpenAPI document through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	transactions := protected.Group("/transactions")
	transactions.Get("", txHandler.List)
	transactions.Post("", txHandler.Create)
	transactions.Get("/:id", txHandler.Get)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	pricing := protected.Group("/pricing")
	pricing.Post("/calculate", pricingHandler.Calculate)
	pricing.Get("/calculations", pricingHandler.ListCalculations)
	pricing.Post("/calculations", pricingHandler.SaveCalculation)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)

	settings := protected.Group("/settings")
	settings.Get("", settingsHandler.Get)
	settings.Put("", settingsHandler.Update)

	// Admin routes (role gated)
	admin := protected.Group("/admin", middleware.AdminOnly(appLogger))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/audit-logs", adminHandler.ListAuditLogs)

	return app
}
