package service

import (
	"os"
	"path/filepath"
	"testing"

	"aipin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestKnowledgeService(t *testing.T) (*KnowledgeService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "knowledge_base.json")
	logger := zaptest.NewLogger(t)
	return NewKnowledgeService(repository.NewKnowledgeRepository(path, logger), logger), path
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	s, path := newTestKnowledgeService(t)

	assert.Equal(t, DefaultKnowledge().Categories(), s.Load().Categories(), "missing file")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"general": [1, 2]}`), 0644))
	assert.Equal(t, DefaultKnowledge().Categories(), s.Load().Categories(), "malformed file")
}

func TestSeedIsIdempotent(t *testing.T) {
	s, path := newTestKnowledgeService(t)

	first, err := s.Seed(s.Load(), SampleKnowledge())
	require.NoError(t, err)
	firstRaw, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := s.Seed(s.Load(), SampleKnowledge())
	require.NoError(t, err)
	secondRaw, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, string(firstRaw), string(secondRaw))
	assert.Equal(t, DefaultKnowledge().Len()+SampleKnowledge().Len(), second.Len())
}

func TestSeedKeepsExistingDocumentFirst(t *testing.T) {
	s, path := newTestKnowledgeService(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"custom": {"ai": "custom ai answer"}}`), 0644))

	seeded, err := s.Seed(s.Load(), SampleKnowledge())
	require.NoError(t, err)

	e, ok := seeded.Match("ai")
	require.True(t, ok)
	assert.Equal(t, "custom ai answer", e.Answer)
	assert.Equal(t, "custom", seeded.Categories()[0].Name)

	reloaded := s.Load()
	assert.Equal(t, seeded.Categories(), reloaded.Categories())
}
