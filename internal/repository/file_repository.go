package repository

import (
	"context"
	"database/sql"

	"aipin/internal/models"
	"aipin/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type FileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewFileRepository(db *sql.DB, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query, args, err := squirrel.Insert("files").
		Columns("user_id", "filename", "filepath", "filetype", "size", "created_at").
		Values(file.UserID, file.FileName, file.FilePath, file.FileType, file.Size, file.CreatedAt.UTC().Format(sqlite.TimeLayout)).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	file.ID, err = res.LastInsertId()
	return err
}

func (r *FileRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.File, error) {
	query, args, err := squirrel.Select("id", "user_id", "filename", "filepath", "filetype", "size", "created_at").
		From("files").
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

	var files []*models.File
	for rows.Next() {
		var (
			f         models.File
			createdAt string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.FileName, &f.FilePath, &f.FileType, &f.Size, &createdAt); err != nil {
			return nil, err
		}
		f.CreatedAt = parseTime(createdAt)
		files = append(files, &f)
	}

	return files, rows.Err()
}
