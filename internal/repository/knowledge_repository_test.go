package repository

import (
	"os"
	"path/filepath"
	"testing"

	"aipin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeDoc(t *testing.T, body string) *KnowledgeRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return NewKnowledgeRepository(path, zaptest.NewLogger(t))
}

func TestLoadKeepsDocumentOrder(t *testing.T) {
	// "zeta" sorts after "alpha" but comes first in the document
	repo := writeDoc(t, `{
		"zeta":  {"go": "zeta go", "rust": "zeta rust"},
		"alpha": {"go": "alpha go"}
	}`)

	kb, err := repo.Load()
	require.NoError(t, err)

	e, ok := kb.Match("go")
	require.True(t, ok)
	assert.Equal(t, "zeta go", e.Answer)

	cats := kb.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "zeta", cats[0].Name)
	assert.Equal(t, "alpha", cats[1].Name)
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewKnowledgeRepository(filepath.Join(t.TempDir(), "absent.json"), zaptest.NewLogger(t))

	_, err := repo.Load()
	assert.ErrorIs(t, err, ErrKnowledgeNotFound)
}

func TestLoadRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"general": `,
		"array at top":      `["general"]`,
		"category not obj":  `{"general": "hello"}`,
		"answer not string": `{"general": {"hi": 3}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := writeDoc(t, body).Load()
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoadPreservesOrderAndText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "knowledge_base.json")
	repo := NewKnowledgeRepository(path, zaptest.NewLogger(t))

	kb := models.NewKnowledgeBase([]models.Category{
		{Name: "programming", Topics: []models.Topic{
			{Phrase: "html", Answer: "<h1>नमस्ते दुनिया!</h1>\n\"quoted\""},
			{Phrase: "css", Answer: "style"},
		}},
		{Name: "empty"},
		{Name: "general", Topics: []models.Topic{{Phrase: "नमस्ते", Answer: "नमस्ते!"}}},
	})

	require.NoError(t, repo.Save(kb))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"<h1>नमस्ते दुनिया!</h1>\n\"quoted\""`, "html and non-ASCII are written verbatim")

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, kb.Categories(), loaded.Categories())
}

func TestEncodeEmptyKnowledgeBase(t *testing.T) {
	data, err := EncodeKnowledge(models.NewKnowledgeBase(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	kb, err := ParseKnowledge(data)
	require.NoError(t, err)
	assert.Equal(t, 0, kb.Len())
}
