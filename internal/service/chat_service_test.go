package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"aipin/internal/dto"
	"aipin/internal/repository"
	"aipin/pkg/config"
	"aipin/pkg/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(),
		&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "aipin.db")},
		zaptest.NewLogger(t),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestChatService(t *testing.T, db *sql.DB) *ChatService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewChatService(
		newTestResolver(t, DefaultKnowledge(), nil, 0),
		repository.NewUserRepository(db, logger),
		repository.NewChatRepository(db, logger),
		sqlite.DefaultUserID,
		50,
		logger,
	)
}

func TestChatRejectsBlankQuery(t *testing.T) {
	s := newTestChatService(t, newTestDB(t))

	_, err := s.Chat(context.Background(), &dto.ChatRequest{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = s.Search(context.Background(), &dto.SearchRequest{})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestChatPersistsHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestChatService(t, newTestDB(t))

	resp, err := s.Chat(ctx, &dto.ChatRequest{Query: "  नमस्ते  "})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "नमस्ते! मैं Aipin AI हूं। आपकी कैसे मदद कर सकता हूं?", resp.Response)
	assert.NotEmpty(t, resp.Timestamp)

	_, err = s.Chat(ctx, &dto.ChatRequest{Query: "html"})
	require.NoError(t, err)

	history, err := s.History(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, history.History, 2)
	assert.Equal(t, "html", history.History[0].Query)
	assert.Equal(t, "नमस्ते", history.History[1].Query, "query is stored trimmed")
}

func TestChatCreatesUnknownUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestChatService(t, newTestDB(t))
	userID := int64(9)

	_, err := s.Chat(ctx, &dto.ChatRequest{Query: "धन्यवाद", UserID: &userID})
	require.NoError(t, err)

	history, err := s.History(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, history.History, 1)

	defaultHistory, err := s.History(ctx, sqlite.DefaultUserID, 10)
	require.NoError(t, err)
	assert.Empty(t, defaultHistory.History)
}

func TestChatSucceedsWhenPersistFails(t *testing.T) {
	db := newTestDB(t)
	s := newTestChatService(t, db)
	require.NoError(t, db.Close())

	resp, err := s.Chat(context.Background(), &dto.ChatRequest{Query: "नमस्ते"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Response)
}

func TestSearchWhenDisabled(t *testing.T) {
	s := newTestChatService(t, newTestDB(t))

	resp, err := s.Search(context.Background(), &dto.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", resp.Query)
	assert.Equal(t, SearchUnavailableMessage, resp.Result, "nil searcher counts as disabled")
}
