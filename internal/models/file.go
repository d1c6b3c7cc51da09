package models

import "time"

type File struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	FileName  string    `db:"filename"` // sanitized client name
	FilePath  string    `db:"filepath"` // where it was stored on disk
	FileType  string    `db:"filetype"` // lower-cased extension without the dot
	Size      int64     `db:"size"`
	CreatedAt time.Time `db:"created_at"`
}
