package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/crewfit/crewfit-backend/internal/cache"
	"github.com/crewfit/crewfit-backend/internal/handlers"
	"github.com/crewfit/crewfit-backend/internal/hub"
	"github.com/crewfit/crewfit-backend/internal/repository"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "CrewFit Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	rankingCache := cache.NewRankingCache(redisCache)
	historyCache := cache.NewHistoryCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize broker and services
	broker := hub.New(handlers.SendTimeoutFromEnv())
	checkinService := service.NewCheckinService(checkinRepo, userRepo, groupRepo, rankingCache)
	commentService := service.NewCommentService(commentRepo, checkinRepo, userRepo)
	rankingService := service.NewRankingService(checkinRepo, groupRepo, rankingCache)
	chatService := service.NewChatService(messageRepo, userRepo, groupRepo, broker, historyCache)

	// Initialize handlers
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	commentHandler := handlers.NewCommentHandler(commentService)
	groupHandler := handlers.NewGroupHandler(rankingService)
	chatHandler := handlers.NewChatHandler(chatService)
	wsHandler := handlers.NewWebSocketHandler(chatService)

	// Routes
	api := app.Group("/api")

	api.Post("/groups/:id/checkins", checkinHandler.PostCheckin)
	api.Get("/groups/:id/checkins", checkinHandler.ListCheckins)
	api.Get("/checkins/:id", checkinHandler.GetCheckin)

	api.Post("/checkins/:id/comments", commentHandler.PostComment)
	api.Get("/checkins/:id/comments", commentHandler.ListComments)
	api.Delete("/checkins/:id/reactions", commentHandler.RemoveReaction)

	api.Post("/groups/:id/messages", limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}), chatHandler.PublishMessage)
	api.Get("/groups/:id/messages", chatHandler.GetHistory)

	api.Get("/groups/:id/ranking", groupHandler.GetRanking)
	api.Get("/groups/:id/stats", groupHandler.GetStats)

	// WebSocket route (websocket upgrade needs special handling)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "CrewFit backend is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
