package models

import "time"

// ChatRecord is one persisted query/response pair. Records are only ever
// appended.
type ChatRecord struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Query     string    `db:"query"`
	Response  string    `db:"response"`
	CreatedAt time.Time `db:"created_at"`
}
