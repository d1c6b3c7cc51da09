package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aipin/internal/api"
	"aipin/internal/api/handlers"
	"aipin/internal/repository"
	"aipin/internal/search"
	"aipin/internal/service"
	"aipin/pkg/config"
	"aipin/pkg/logger"
	"aipin/pkg/sqlite"
	"aipin/web"

	"go.uber.org/zap"
)

// @title Aipin AI API
// @version 1.0
// @description Keyword-matching chat assistant with file upload, web search and chat history

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

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
	appLogger.Info("Starting Aipin AI service")

	// Initialize database
	ctx := context.Background()
	db, err := sqlite.Open(ctx, &cfg.Database, logger.Named("sqlite"))
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Knowledge base
	knowledgeService := service.NewKnowledgeService(
		repository.NewKnowledgeRepository(cfg.Knowledge.Path, appLogger),
		logger.Named("knowledge"),
	)
	kb := knowledgeService.Load()
	if cfg.Knowledge.SeedOnStart {
		seeded, err := knowledgeService.Seed(kb, service.SampleKnowledge())
		if err != nil {
			appLogger.Warn("Failed to seed knowledge base", zap.Error(err))
		} else {
			kb = seeded
		}
	}
	appLogger.Info("Knowledge base ready",
		zap.Int("categories", len(kb.Categories())),
		zap.Int("topics", kb.Len()),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)
	fileRepo := repository.NewFileRepository(db, appLogger)

	// the configured default user may differ from the row the schema creates
	if err := userRepo.EnsureExists(ctx, cfg.Chat.DefaultUserID); err != nil {
		appLogger.Fatal("Failed to create default user", zap.Error(err))
	}
	defaultUser, err := userRepo.GetByID(ctx, cfg.Chat.DefaultUserID)
	if err != nil {
		appLogger.Fatal("Failed to load default user", zap.Error(err))
	}
	appLogger.Info("Default user ready",
		zap.Int64("id", defaultUser.ID),
		zap.String("username", defaultUser.Username),
	)

	// Initialize services
	searchClient := search.New(search.Config{
		BaseURL: cfg.Search.BaseURL,
		Timeout: cfg.Search.Timeout,
	}, logger.Named("search"))

	resolver := service.NewResolver(kb, searchClient, service.ResolverOptions{
		SearchEnabled: cfg.Search.Enabled,
	}, logger.Named("resolver"))

	chatService := service.NewChatService(resolver, userRepo, chatRepo,
		cfg.Chat.DefaultUserID, cfg.Chat.HistoryLimit, logger.Named("chat"))
	fileService := service.NewFileService(fileRepo, userRepo, cfg.Upload.Dir, logger.Named("files"))

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	fileHandler := handlers.NewFileHandler(fileService, cfg.Chat.DefaultUserID, appLogger)
	infoHandler := handlers.NewInfoHandler(cfg.Search.Enabled, web.AdminTemplate())

	// Setup router
	app := api.SetupRouter(chatHandler, fileHandler, infoHandler, &cfg.Server, appLogger)

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
