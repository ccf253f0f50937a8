package api

import (
	"fintrack/docs"
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	txHandler *handlers.TransactionHandler,
	categoryHandler *handlers.CategoryHandler,
	statsHandler *handlers.StatsHandler,
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

	// Importing docs registers the swagger spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	accounts := protected.Group("/accounts")
	accounts.Post("", accountHandler.Create)
	accounts.Get("", accountHandler.List)
	accounts.Get("/:id", accountHandler.Get)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Archive)

	transactions := protected.Group("/transactions")
	transactions.Post("", txHandler.Create)
	transactions.Get("", txHandler.List)
	transactions.Get("/chain/:chainId", txHandler.GetChain)
	transactions.Get("/:id", txHandler.Get)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	protected.Post("/transfers", txHandler.CreateTransfer)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.List)
	categories.Post("", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	protected.Get("/stats/spending", statsHandler.Spending)

	return app
}
