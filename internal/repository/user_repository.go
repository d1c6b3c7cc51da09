package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aipin/internal/models"
	"aipin/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewUserRepository(db *sql.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureExists creates a placeholder user row for id unless one exists.
// There are no accounts; the row only satisfies chat/file foreign keys.
func (r *UserRepository) EnsureExists(ctx context.Context, id int64) error {
	query, args, err := squirrel.Insert("users").
		Options("OR IGNORE").
		Columns("id", "username", "created_at").
		Values(id, fmt.Sprintf("guest-%d", id), time.Now().UTC().Format(sqlite.TimeLayout)).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := squirrel.Select("id", "username", "COALESCE(email, '')", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		user      models.User
		createdAt string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.Email, &createdAt)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = parseTime(createdAt)

	return &user, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(sqlite.TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
