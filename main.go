// main.go - QuizDash API server
package main

import (
	"log"
	"os"

	"quizdash/database"
	"quizdash/handlers"
	"quizdash/middleware"
	"quizdash/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ No .env file found, using environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// In-memory session registry and background jobs
	services.InitSessionManager()
	services.StartScheduler()
	defer services.StopScheduler()

	app := fiber.New(fiber.Config{
		AppName:      "QuizDash API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: getEnvOrDefault("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.RateLimitMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "quizdash-api",
			"sessions": services.GetSessionManager().Count(),
		})
	})

	// Public routes
	auth := app.Group("/api/auth", middleware.AuthRateLimitMiddleware())
	auth.Post("/guest", handlers.GuestLogin)
	auth.Post("/login", handlers.Login)
	auth.Post("/register", handlers.Register)
	auth.Post("/upgrade", middleware.AuthMiddleware, handlers.UpgradeGuest)

	app.Get("/api/quizzes", handlers.GetQuizzes)
	app.Get("/api/quizzes/categories", handlers.GetCategories)
	app.Get("/api/quizzes/:id", handlers.GetQuiz)

	app.Get("/api/leaderboard", handlers.GetLeaderboard)

	// Authenticated routes
	api := app.Group("/api", middleware.AuthMiddleware)

	api.Post("/session/start", handlers.StartSession)
	api.Get("/session/active", handlers.GetActiveSession)
	api.Get("/session/:id", handlers.GetSession)
	api.Post("/session/:id/select", handlers.SelectAnswer)
	api.Post("/session/:id/submit", handlers.SubmitAnswer)
	api.Post("/session/:id/timeup", handlers.TimeUp)
	api.Post("/session/:id/next", handlers.NextQuestion)
	api.Post("/session/:id/pause", handlers.PauseSession)
	api.Post("/session/:id/resume", handlers.ResumeSession)
	api.Delete("/session/:id", handlers.AbandonSession)

	api.Get("/results", handlers.GetResults)
	api.Get("/results/:id", handlers.GetResult)

	api.Get("/achievements", handlers.GetAchievements)
	api.Post("/achievements/clear-recent", handlers.ClearRecentAchievements)

	api.Get("/users/me", handlers.GetMe)
	api.Put("/users/me", handlers.UpdateProfile)
	api.Get("/users/:id/stats", handlers.GetUserStats)

	// WebSocket: live session updates
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/session/:id", handlers.SessionWebSocket)

	port := getEnvOrDefault("PORT", "3000")
	log.Printf("🚀 QuizDash API listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func validateEnvironment() {
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("⚠️ JWT_SECRET not set, using insecure default")
	}
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Println("⚠️ DATABASE_URL not set, falling back to local defaults")
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
