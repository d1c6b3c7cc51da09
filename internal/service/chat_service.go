package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aipin/internal/dto"
	"aipin/internal/models"
	"aipin/internal/repository"

	"go.uber.org/zap"
)

var ErrEmptyQuery = errors.New("query is required")

type ChatService struct {
	resolver      *Resolver
	userRepo      *repository.UserRepository
	chatRepo      *repository.ChatRepository
	defaultUserID int64
	historyLimit  int
	logger        *zap.Logger
}

func NewChatService(
	resolver *Resolver,
	userRepo *repository.UserRepository,
	chatRepo *repository.ChatRepository,
	defaultUserID int64,
	historyLimit int,
	logger *zap.Logger,
) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &ChatService{
		resolver:      resolver,
		userRepo:      userRepo,
		chatRepo:      chatRepo,
		defaultUserID: defaultUserID,
		historyLimit:  historyLimit,
		logger:        logger,
	}
}

// Chat resolves the query and appends it to the history log. A failed
// append is logged and otherwise ignored.
func (s *ChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	userID := s.defaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	response := s.resolver.Resolve(ctx, query, req.WebSearch)
	now := time.Now()

	s.record(ctx, &models.ChatRecord{
		UserID:    userID,
		Query:     query,
		Response:  response,
		CreatedAt: now,
	})

	return &dto.ChatResponse{
		Success:   true,
		Response:  response,
		Timestamp: now.Format(time.RFC3339),
	}, nil
}

func (s *ChatService) record(ctx context.Context, rec *models.ChatRecord) {
	if err := s.userRepo.EnsureExists(ctx, rec.UserID); err != nil {
		s.logger.Warn("Failed to ensure chat user", zap.Int64("user_id", rec.UserID), zap.Error(err))
	}
	if err := s.chatRepo.Create(ctx, rec); err != nil {
		s.logger.Warn("Failed to save chat history", zap.Int64("user_id", rec.UserID), zap.Error(err))
	}
}

// Search runs only the web search step for query.
func (s *ChatService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	return &dto.SearchResponse{
		Success:   true,
		Query:     query,
		Result:    s.resolver.WebSearch(ctx, query),
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// History lists a user's chats, newest first. A zero userID means the
// default user and a non-positive limit means the configured default.
func (s *ChatService) History(ctx context.Context, userID int64, limit int) (*dto.HistoryResponse, error) {
	if userID == 0 {
		userID = s.defaultUserID
	}
	if limit <= 0 {
		limit = s.historyLimit
	}

	records, err := s.chatRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}

	items := make([]dto.HistoryItem, len(records))
	for i, rec := range records {
		items[i] = dto.HistoryItem{
			Query:     rec.Query,
			Response:  rec.Response,
			Timestamp: rec.CreatedAt.Format(time.RFC3339),
		}
	}

	return &dto.HistoryResponse{Success: true, History: items}, nil
}
