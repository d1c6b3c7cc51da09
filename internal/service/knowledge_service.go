package service

import (
	"errors"
	"fmt"

	"aipin/internal/models"
	"aipin/internal/repository"

	"go.uber.org/zap"
)

type KnowledgeService struct {
	repo   *repository.KnowledgeRepository
	logger *zap.Logger
}

func NewKnowledgeService(repo *repository.KnowledgeRepository, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{
		repo:   repo,
		logger: logger,
	}
}

// Load reads the knowledge document. It never fails: a missing or
// malformed document yields the built-in defaults.
func (s *KnowledgeService) Load() *models.KnowledgeBase {
	kb, err := s.repo.Load()
	if err != nil {
		if errors.Is(err, repository.ErrKnowledgeNotFound) {
			s.logger.Info("Knowledge base not found, using defaults", zap.String("path", s.repo.Path()))
		} else {
			s.logger.Warn("Knowledge base unreadable, using defaults", zap.Error(err))
		}
		return DefaultKnowledge()
	}
	return kb
}

// Seed merges extra into current, writes the result and returns it as the
// new version. current is left unchanged.
func (s *KnowledgeService) Seed(current, extra *models.KnowledgeBase) (*models.KnowledgeBase, error) {
	merged := current.Merge(extra)
	if err := s.repo.Save(merged); err != nil {
		return nil, fmt.Errorf("failed to save seeded knowledge base: %w", err)
	}

	s.logger.Info("Knowledge base seeded",
		zap.Int("topics_before", current.Len()),
		zap.Int("topics_after", merged.Len()),
	)
	return merged, nil
}
