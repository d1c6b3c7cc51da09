package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"aipin/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenCreatesSchemaAndDefaultUser(t *testing.T) {
	ctx := context.Background()
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "nested", "aipin.db")}

	db, err := Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"users", "chat_history", "files"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var username string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT username FROM users WHERE id = ?", DefaultUserID).Scan(&username))
	assert.Equal(t, "guest", username)
}

func TestOpenIsRepeatable(t *testing.T) {
	ctx := context.Background()
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "aipin.db")}

	first, err := Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var count int
	require.NoError(t, second.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, &config.DatabaseConfig{Path: ":memory:"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx,
		"INSERT INTO chat_history (user_id, query, response, created_at) VALUES (?, ?, ?, ?)",
		999, "q", "r", "2026-01-01T00:00:00.000000Z",
	)
	assert.Error(t, err)
}
