package repository

import (
	"context"
	"database/sql"

	"aipin/internal/models"
	"aipin/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type ChatRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewChatRepository(db *sql.DB, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a record and fills in its id.
func (r *ChatRepository) Create(ctx context.Context, rec *models.ChatRecord) error {
	query, args, err := squirrel.Insert("chat_history").
		Columns("user_id", "query", "response", "created_at").
		Values(rec.UserID, rec.Query, rec.Response, rec.CreatedAt.UTC().Format(sqlite.TimeLayout)).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rec.ID, err = res.LastInsertId()
	return err
}

// ListByUserID returns the newest records first.
func (r *ChatRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.ChatRecord, error) {
	query, args, err := squirrel.Select("id", "user_id", "query", "response", "created_at").
		From("chat_history").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ChatRecord
	for rows.Next() {
		var (
			rec       models.ChatRecord
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query, &rec.Response, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, &rec)
	}

	return records, rows.Err()
}
