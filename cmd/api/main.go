package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyforge/internal/adapter"
	"studyforge/internal/adapter/extractor"
	"studyforge/internal/adapter/gemini"
	"studyforge/internal/cache"
	"studyforge/internal/config"
	"studyforge/internal/database"
	"studyforge/internal/handler"
	"studyforge/internal/logger"
	"studyforge/internal/middleware"
	"studyforge/internal/repository"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs each HTTP request with timing and status.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client with key failover
	ctx := context.Background()
	llmClient, err := gemini.New(ctx, cfg.Gemini)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	appLogger.Info("Gemini client initialized",
		zap.String("model", cfg.Gemini.Model),
		zap.Int("key_pool_size", len(cfg.Gemini.APIKeys)))

	// Database
	db, err := database.NewSQLXDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Database ready", zap.String("path", cfg.DB.Path))

	// Redis-backed conversation context store
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	contextStore := adapter.NewRedisContextStore(cacheAdapter, cfg.Agent.ContextTTL)

	// Content extractors
	pdfExtractor := extractor.NewPDFTextExtractor()
	urlExtractor := extractor.NewTavilyExtractor(cfg.Tavily.APIKey)
	resolver := service.NewContentResolver(pdfExtractor, urlExtractor)

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	sequenceRepository := repository.NewSQLXSequenceRepository(db)
	artifactRepository := repository.NewSQLXArtifactRepository(db, sequenceRepository)

	// Services
	authService := service.NewAuthService(userRepository, cfg.Auth)
	explainService := service.NewExplainService(llmClient, resolver)
	quizService := service.NewQuizService(llmClient, resolver)
	flashcardService := service.NewFlashcardService(llmClient, resolver, artifactRepository)
	workflowService := service.NewWorkflowService(llmClient, resolver, artifactRepository)
	presentationService := service.NewPresentationService(llmClient, artifactRepository)
	agentService := service.NewAgentService(llmClient, explainService, quizService,
		flashcardService, workflowService, contextStore, cfg.Agent)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	explainHandler := handler.NewExplainHandler(explainService)
	quizHandler := handler.NewQuizHandler(quizService)
	flashcardHandler := handler.NewFlashcardHandler(flashcardService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	presentationHandler := handler.NewPresentationHandler(presentationService)
	agentHandler := handler.NewAgentHandler(agentService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    25 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Quiz routes
	apiGroup.Post("/quiz/generate", quizHandler.Generate)
	apiGroup.Post("/quiz/submit", quizHandler.Submit)
	apiGroup.Post("/quiz/analysis", quizHandler.Analyze)

	// Explainer routes
	apiGroup.Post("/explainer/generate", explainHandler.Generate)
	apiGroup.Post("/explainer/chat", explainHandler.Chat)

	// Flashcard routes; saved sets require a logged-in user
	apiGroup.Post("/flashcards/generate", flashcardHandler.Generate)
	apiGroup.Post("/flashcards/save", middleware.Protected(authService), flashcardHandler.Save)
	apiGroup.Get("/flashcards/saved", middleware.Protected(authService), flashcardHandler.Saved)

	// Workflow routes
	apiGroup.Post("/workflow/generate", workflowHandler.Generate)
	apiGroup.Post("/workflow/save", middleware.Protected(authService), workflowHandler.Save)
	apiGroup.Get("/workflow/history", middleware.Protected(authService), workflowHandler.History)

	// Presentation routes
	apiGroup.Post("/presentation/outline", presentationHandler.Outline)
	apiGroup.Post("/presentation/generate", presentationHandler.Generate)
	apiGroup.Post("/presentation/save", middleware.Protected(authService), presentationHandler.Save)
	apiGroup.Get("/presentation/history", middleware.Protected(authService), presentationHandler.History)

	// Agent routes
	apiGroup.Post("/agent/message", agentHandler.Message)
	apiGroup.Delete("/agent/context/:session_id", agentHandler.Clear)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
