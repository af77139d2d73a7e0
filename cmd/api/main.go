package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drewk/recruiting-copilot/internal/analysis"
	"github.com/drewk/recruiting-copilot/internal/api"
	"github.com/drewk/recruiting-copilot/internal/api/handler"
	"github.com/drewk/recruiting-copilot/internal/ashby"
	"github.com/drewk/recruiting-copilot/internal/chat"
	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/digest"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/drewk/recruiting-copilot/internal/recommend"
	"github.com/drewk/recruiting-copilot/internal/repository"
	"github.com/drewk/recruiting-copilot/internal/trends"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "copilot-api",
	})
	logger.SetDefaultLogger(appLogger)
	ctx := context.Background()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.CtxFatal(ctx, "Failed to initialize database: %v", err)
	}

	// Initialize repositories
	snapshotRepo := repository.NewSnapshotRepository(db)
	sequenceRepo := repository.NewSequenceStatRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)

	// Initialize provider clients and services
	ashbyClient := ashby.NewClient(&cfg.Ashby, cfg.Pipeline.ActiveRoles)
	analyzer := analysis.NewAnalyzer(ashbyClient, &cfg.Pipeline, appLogger)
	trendService := trends.NewService(snapshotRepo)

	recommendService := recommend.NewService(
		recommend.NewEngine(&cfg.Pipeline),
		snapshotRepo,
		trendService,
		recommendationRepo,
		appLogger,
	)

	digestService := digest.NewService(
		digest.NewRenderer(cfg.Pipeline.WeeklyCapacity),
		digest.NewSender(cfg.Email),
		recommendService,
		appLogger,
	)

	var completer chat.Completer
	if cfg.Chat.AnthropicAPIKey != "" {
		completer = chat.NewClient(cfg.Chat)
	}
	chatService := chat.NewService(completer, analyzer, snapshotRepo, recommendService, appLogger)

	// Setup router
	router := api.SetupRouter(api.Handlers{
		Gem:      handler.NewGemHandler(snapshotRepo, sequenceRepo, trendService),
		Pipeline: handler.NewPipelineHandler(analyzer, recommendService),
		Digest:   handler.NewDigestHandler(analyzer, digestService),
		Chat:     handler.NewChatHandler(chatService),
	}, &cfg.Server, appLogger)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.CtxInfo(ctx, "Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxFatal(ctx, "Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.CtxInfo(ctx, "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.CtxFatal(ctx, "Server forced to shutdown: %v", err)
	}

	logger.CtxInfo(ctx, "Server exited")
}
