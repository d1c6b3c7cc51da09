package main

import (
	"log"

	"aipin/internal/repository"
	"aipin/internal/service"
	"aipin/pkg/config"
	"aipin/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	knowledgeService := service.NewKnowledgeService(
		repository.NewKnowledgeRepository(cfg.Knowledge.Path, appLogger),
		appLogger,
	)

	appLogger.Info("Starting knowledge base seeding...", zap.String("path", cfg.Knowledge.Path))

	kb, err := knowledgeService.Seed(knowledgeService.Load(), service.SampleKnowledge())
	if err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	for _, category := range kb.Categories() {
		appLogger.Info("Category",
			zap.String("name", category.Name),
			zap.Int("topics", len(category.Topics)),
		)
	}

	appLogger.Info("Knowledge base seeding completed successfully!", zap.Int("topics", kb.Len()))
}
