package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"formations-backend/internal/adapter"
	"formations-backend/internal/adapter/storage"
	"formations-backend/internal/cache"
	"formations-backend/internal/config"
	"formations-backend/internal/database"
	"formations-backend/internal/handler"
	"formations-backend/internal/logger"
	"formations-backend/internal/middleware"
	"formations-backend/internal/repository"
	"formations-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// healthHandler reports liveness of the server and its backing stores.
func healthHandler(db *sqlx.DB, redisClient *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		checks := fiber.Map{"database": "ok", "redis": "ok"}
		healthy := true

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		status := fiber.StatusOK
		if !healthy {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{"status": checks})
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize file storage
	fileStorage := storage.NewSupabaseStorageAdapter(cfg.Storage)
	appLogger.Info("Storage adapter initialized", zap.String("bucket", cfg.Storage.Bucket))

	// Initialize repositories
	formationRepository := repository.NewFormationDatabaseAdapter(db)
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	quizResultRepository := repository.NewSQLXQuizResultRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	graphCache := service.NewQuizGraphCacheService(cacheAdapter, quizRepository, cfg)
	formationService := service.NewFormationService(formationRepository, quizRepository, fileStorage)
	quizService := service.NewQuizService(quizRepository, quizResultRepository, formationRepository, txManager, graphCache)
	progressService := service.NewProgressService(progressRepository, formationRepository)

	// Initialize handlers
	formationHandler := handler.NewFormationHandler(formationService)
	quizHandler := handler.NewQuizHandler(quizService)
	progressHandler := handler.NewProgressHandler(progressService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", healthHandler(db, redisClient))

	// API group, all routes require a valid access token
	protected := middleware.Protected(cfg.Auth.JWTSecret)
	authoring := middleware.RequireRole("admin", "manager")
	apiGroup := app.Group("/api", protected)

	// Formation routes
	apiGroup.Post("/formations", authoring, formationHandler.CreateFormation)
	apiGroup.Get("/formations", formationHandler.ListFormations)
	apiGroup.Get("/formations/:id", formationHandler.GetFormation)
	apiGroup.Put("/formations/:id", authoring, formationHandler.UpdateFormation)
	apiGroup.Delete("/formations/:id", authoring, formationHandler.DeleteFormation)
	apiGroup.Post("/formations/:id/upload", authoring, formationHandler.UploadFile)

	// Quiz routes
	apiGroup.Post("/formations/:id/quiz", authoring, quizHandler.CreateQuiz)
	apiGroup.Get("/quiz/:quizId", quizHandler.GetQuiz)
	apiGroup.Post("/quiz/:quizId/submit", quizHandler.SubmitQuiz)
	apiGroup.Get("/quiz/:quizId/results", quizHandler.GetQuizResults)

	// Progress routes
	apiGroup.Post("/formations/:formationId/progress", progressHandler.UpsertProgress)
	apiGroup.Get("/formations/:formationId/progress", progressHandler.GetFormationProgress)
	apiGroup.Get("/progress", progressHandler.ListProgress)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
