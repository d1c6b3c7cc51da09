package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"aipin/internal/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var ErrKnowledgeNotFound = errors.New("knowledge base document not found")

// KnowledgeRepository reads and writes the knowledge base JSON document.
// The document is an object of categories, each an object of
// topic -> answer strings; key order in the file is significant.
type KnowledgeRepository struct {
	path   string
	logger *zap.Logger
}

func NewKnowledgeRepository(path string, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		path:   path,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Path() string {
	return r.path
}

func (r *KnowledgeRepository) Load() (*models.KnowledgeBase, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKnowledgeNotFound
		}
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	kb, err := ParseKnowledge(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.path, err)
	}

	r.logger.Info("Knowledge base loaded",
		zap.String("path", r.path),
		zap.Int("topics", kb.Len()),
	)
	return kb, nil
}

// ParseKnowledge decodes a knowledge document keeping document order.
func ParseKnowledge(data []byte) (*models.KnowledgeBase, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top level must be an object of categories")
	}

	var (
		categories []models.Category
		parseErr   error
	)
	root.ForEach(func(name, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("category %q must be an object", name.String())
			return false
		}
		category := models.Category{Name: name.String()}
		value.ForEach(func(topic, answer gjson.Result) bool {
			if answer.Type != gjson.String {
				parseErr = fmt.Errorf("answer for %q/%q must be a string", name.String(), topic.String())
				return false
			}
			category.Topics = append(category.Topics, models.Topic{
				Phrase: topic.String(),
				Answer: answer.String(),
			})
			return true
		})
		categories = append(categories, category)
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return models.NewKnowledgeBase(categories), nil
}

// Save rewrites the document in the knowledge base's order. The file is
// replaced through a temp file so readers never see a partial document.
func (r *KnowledgeRepository) Save(kb *models.KnowledgeBase) error {
	data, err := EncodeKnowledge(kb)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create knowledge directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".knowledge-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace knowledge base: %w", err)
	}

	r.logger.Info("Knowledge base saved",
		zap.String("path", r.path),
		zap.Int("topics", kb.Len()),
	)
	return nil
}

// EncodeKnowledge renders kb as two-space indented JSON with non-ASCII
// text left as is.
func EncodeKnowledge(kb *models.KnowledgeBase) ([]byte, error) {
	var buf bytes.Buffer
	categories := kb.Categories()

	buf.WriteString("{")
	for i, c := range categories {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		if err := writeString(&buf, c.Name); err != nil {
			return nil, err
		}
		buf.WriteString(": {")
		for j, t := range c.Topics {
			if j > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n    ")
			if err := writeString(&buf, t.Phrase); err != nil {
				return nil, err
			}
			buf.WriteString(": ")
			if err := writeString(&buf, t.Answer); err != nil {
				return nil, err
			}
		}
		if len(c.Topics) > 0 {
			buf.WriteString("\n  ")
		}
		buf.WriteString("}")
	}
	if len(categories) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
