package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"treasurehunt/internal/config"
	"treasurehunt/internal/database"
	"treasurehunt/internal/handlers"
	"treasurehunt/internal/judge"
	"treasurehunt/internal/photostore"
	"treasurehunt/internal/repository"
	"treasurehunt/internal/security"
	"treasurehunt/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Photo blob store
	photos, err := photostore.New(cfg.PhotoStorePath)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}

	// Judge client for photo validation and activity generation
	judgeClient, err := judge.New(judge.Config{
		BaseURL:     cfg.JudgeBaseURL,
		APIKey:      cfg.JudgeAPIKey,
		VisionModel: cfg.JudgeVisionModel,
		TextModel:   cfg.JudgeTextModel,
		Timeout:     cfg.JudgeTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize judge client: %v", err)
	}
	if cfg.JudgeAPIKey == "" {
		log.Println("Warning: JUDGE_API_KEY not set; photo validation will be unavailable")
	}

	// Initialize repositories
	childRepo := repository.NewChildRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	// Initialize services
	childService := service.NewChildService(childRepo, completionRepo)
	activityService := service.NewActivityService(activityRepo, judgeClient)
	completionService := service.NewCompletionService(completionRepo, childRepo, activityRepo, photos, judgeClient)

	// Initialize handlers
	middleware := handlers.NewMiddleware(security.NewRateLimiter(10, time.Minute))
	childrenHandler := handlers.NewChildrenHandler(childService)
	activitiesHandler := handlers.NewActivitiesHandler(activityService, completionService, cfg.UploadMaxSize)

	// Setup routes
	mux := http.NewServeMux()

	// Children routes
	mux.HandleFunc("POST /children/register", childrenHandler.Register)
	mux.HandleFunc("GET /children/{id}", childrenHandler.GetChild)
	mux.HandleFunc("GET /children/{id}/tokens", childrenHandler.GetTokens)
	mux.HandleFunc("GET /children/{id}/completions", childrenHandler.ListCompletions)
	mux.HandleFunc("POST /children/{id}/regenerate-password", childrenHandler.RegeneratePassword)

	// Activity routes
	mux.HandleFunc("GET /activities", activitiesHandler.List)
	mux.HandleFunc("GET /activities/{id}", activitiesHandler.Get)
	mux.HandleFunc("POST /activities", activitiesHandler.Create)
	mux.HandleFunc("POST /activities/generate", middleware.RateLimit(activitiesHandler.Generate))
	mux.HandleFunc("POST /activities/{id}/complete", middleware.RateLimit(activitiesHandler.Complete))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
