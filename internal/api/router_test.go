package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aipin/internal/api/handlers"
	"aipin/internal/dto"
	"aipin/internal/repository"
	"aipin/internal/search"
	"aipin/internal/service"
	"aipin/pkg/config"
	"aipin/pkg/sqlite"
	"aipin/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const ddgBody = `{
  "Abstract": "Go is a statically typed, compiled language.",
  "AbstractURL": "https://en.wikipedia.org/wiki/Go_(programming_language)",
  "RelatedTopics": [{"Text": "Gopher mascot"}]
}`

func newTestApp(t *testing.T, searchURL string) *fiber.App {
	t.Helper()
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	db, err := sqlite.Open(context.Background(), &config.DatabaseConfig{Path: filepath.Join(dir, "aipin.db")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repository.NewUserRepository(db, logger)
	resolver := service.NewResolver(service.DefaultKnowledge(),
		search.New(search.Config{BaseURL: searchURL, Timeout: time.Second}, logger),
		service.ResolverOptions{SearchEnabled: searchURL != ""},
		logger,
	)
	chatService := service.NewChatService(resolver, userRepo, repository.NewChatRepository(db, logger),
		sqlite.DefaultUserID, 50, logger)
	fileService := service.NewFileService(repository.NewFileRepository(db, logger), userRepo,
		filepath.Join(dir, "uploads"), logger)

	return SetupRouter(
		handlers.NewChatHandler(chatService, logger),
		handlers.NewFileHandler(fileService, sqlite.DefaultUserID, logger),
		handlers.NewInfoHandler(searchURL != "", web.AdminTemplate()),
		&config.ServerConfig{BodyLimit: 50 * 1024 * 1024},
		logger,
	)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorOf(t *testing.T, raw []byte) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Error
}

func TestChatEndpoint(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := doJSON(t, app, "POST", "/api/chat", map[string]any{"query": "नमस्ते"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "नमस्ते! मैं Aipin AI हूं। आपकी कैसे मदद कर सकता हूं?", body.Response)
	assert.NotEmpty(t, body.Timestamp)
}

func TestChatEndpointRejectsEmptyQuery(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := doJSON(t, app, "POST", "/api/chat", map[string]any{"query": "  "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "क्वेरी आवश्यक है", errorOf(t, raw))

	resp, raw = doJSON(t, app, "POST", "/api/search", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "खोज क्वेरी आवश्यक है", errorOf(t, raw))
}

func TestChatThenHistory(t *testing.T) {
	app := newTestApp(t, "")

	for _, q := range []string{"नमस्ते", "python"} {
		resp, _ := doJSON(t, app, "POST", "/api/chat", map[string]any{"query": q})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, raw := doJSON(t, app, "GET", "/api/history?limit=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HistoryResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.History, 1)
	assert.Equal(t, "python", body.History[0].Query)
}

func TestChatWithWebSearch(t *testing.T) {
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, ddgBody)
	}))
	defer ddg.Close()
	app := newTestApp(t, ddg.URL)

	_, raw := doJSON(t, app, "POST", "/api/chat", map[string]any{"query": "golang", "web_search": true})
	var chat dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &chat))
	assert.True(t, strings.HasPrefix(chat.Response, "वेब खोज परिणाम:\n\n**सारांश:** Go is"))
	assert.Contains(t, chat.Response, "- Gopher mascot...")

	_, raw = doJSON(t, app, "POST", "/api/search", map[string]any{"query": "golang"})
	var found dto.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &found))
	assert.True(t, strings.HasPrefix(found.Result, "**सारांश:** Go is"))
}

func TestSearchUnavailable(t *testing.T) {
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ddg.Close()
	app := newTestApp(t, ddg.URL)

	resp, raw := doJSON(t, app, "POST", "/api/search", map[string]any{"query": "golang"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, service.SearchUnavailableMessage, body.Result)
}

func upload(t *testing.T, app *fiber.App, name, content string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if name != "" {
		part, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestUploadEndpoint(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := upload(t, app, "hello.txt", "hello world")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.UploadResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "hello.txt", body.FileName)
	assert.Equal(t, "11 bytes", body.Analysis.Size)
	assert.Equal(t, "hello world", body.Analysis.Preview)

	resp, raw = doJSON(t, app, "GET", "/api/files", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.FileListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Files, 1)
	assert.Equal(t, "txt", list.Files[0].FileType)
}

func TestUploadEndpointErrors(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := upload(t, app, "tool.exe", "MZ")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "अमान्य फाइल फॉर्मेट", errorOf(t, raw))

	resp, raw = upload(t, app, "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "कोई फाइल नहीं", errorOf(t, raw))
}

func TestInfoEndpoint(t *testing.T) {
	resp, raw := doJSON(t, newTestApp(t, ""), "GET", "/api/info", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.InfoResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Aipin AI", body.Name)
	assert.Equal(t, "active", body.Status)
	assert.Len(t, body.Features, 5)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	resp, raw := doJSON(t, newTestApp(t, ""), "GET", "/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "पेज नहीं मिला", errorOf(t, raw))
}

func TestWebPages(t *testing.T) {
	app := newTestApp(t, "")

	resp, raw := doJSON(t, app, "GET", "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(raw), "Aipin")

	resp, raw = doJSON(t, app, "GET", "/admin", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "Version: 1.0.0")
	assert.Contains(t, string(raw), "Disabled")

	resp, _ = doJSON(t, app, "GET", "/static/style.css", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
