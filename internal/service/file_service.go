package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"aipin/internal/dto"
	"aipin/internal/models"
	"aipin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFileRequired       = errors.New("file is required")
	ErrFileNameMissing    = errors.New("file name is missing")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
)

var allowedExtensions = map[string]bool{
	"txt": true, "pdf": true, "png": true, "jpg": true, "jpeg": true, "gif": true,
	"doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	"mp3": true, "mp4": true, "wav": true,
}

// previewed as text; the rest are reported as Unknown
var textExtensions = map[string]bool{
	"txt": true, "py": true, "js": true, "html": true, "css": true, "json": true,
}

const (
	previewReadRunes = 1000
	previewRunes     = 200
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type FileService struct {
	fileRepo  *repository.FileRepository
	userRepo  *repository.UserRepository
	uploadDir string
	logger    *zap.Logger
}

func NewFileService(
	fileRepo *repository.FileRepository,
	userRepo *repository.UserRepository,
	uploadDir string,
	logger *zap.Logger,
) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &FileService{
		fileRepo:  fileRepo,
		userRepo:  userRepo,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// AllowedFile reports whether fileName has an extension on the allow-list.
func AllowedFile(fileName string) bool {
	ext, ok := extension(fileName)
	return ok && allowedExtensions[ext]
}

func extension(fileName string) (string, bool) {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return "", false
	}
	return strings.ToLower(fileName[i+1:]), true
}

// SecureFileName reduces a client supplied name to a safe ASCII base name.
// Names that sanitize to nothing become "upload.<ext>".
func SecureFileName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFileChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	ext, _ := extension(fileName)
	if name == "" || !strings.Contains(name, ".") {
		if ext == "" {
			return "upload"
		}
		return "upload." + ext
	}
	return name
}

// Upload stores the file under a fresh uuid name, records it, and returns
// a shallow analysis.
func (s *FileService) Upload(ctx context.Context, userID int64, src io.Reader, fileName string) (*dto.UploadResponse, error) {
	if src == nil {
		return nil, ErrFileRequired
	}
	if fileName == "" {
		return nil, ErrFileNameMissing
	}
	if !AllowedFile(fileName) {
		return nil, ErrFileTypeNotAllowed
	}

	ext, _ := extension(fileName)
	displayName := SecureFileName(fileName)
	storedPath := filepath.Join(s.uploadDir, uuid.NewString()+"."+ext)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if err := s.userRepo.EnsureExists(ctx, userID); err != nil {
		s.logger.Warn("Failed to ensure upload user", zap.Int64("user_id", userID), zap.Error(err))
	}

	record := &models.File{
		UserID:    userID,
		FileName:  displayName,
		FilePath:  storedPath,
		FileType:  ext,
		Size:      size,
		CreatedAt: time.Now(),
	}
	if err := s.fileRepo.Create(ctx, record); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("File uploaded",
		zap.String("filename", displayName),
		zap.String("path", storedPath),
		zap.Int64("size", size),
	)

	return &dto.UploadResponse{
		Success:  true,
		FileName: displayName,
		Analysis: s.Analyze(storedPath, displayName),
		Message:  fmt.Sprintf("फाइल %s अपलोड हो गई", displayName),
	}, nil
}

// Analyze reports name, extension and size, plus a short preview for
// text formats. Problems are reported in the Error field.
func (s *FileService) Analyze(path, displayName string) dto.FileAnalysis {
	ext, _ := extension(displayName)
	info, err := os.Stat(path)
	if err != nil {
		return dto.FileAnalysis{Error: err.Error()}
	}

	analysis := dto.FileAnalysis{
		FileName:    displayName,
		Extension:   ext,
		Size:        groupThousands(info.Size()) + " bytes",
		ContentType: "Unknown",
	}

	if textExtensions[ext] {
		content, err := readPrefix(path, previewReadRunes)
		if err != nil {
			return dto.FileAnalysis{Error: err.Error()}
		}
		if preview, truncated := firstRunes(content, previewRunes); truncated {
			analysis.Preview = preview + "..."
		} else {
			analysis.Preview = preview
		}
		analysis.ContentType = "Text"
	}

	return analysis
}

// readPrefix returns up to n runes from the start of the file, dropping
// invalid UTF-8.
func readPrefix(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(n*4)))
	if err != nil {
		return "", err
	}
	content, _ := firstRunes(sanitizeUTF8(string(buf)), n)
	return content, nil
}

func (s *FileService) List(ctx context.Context, userID int64, limit int) (*dto.FileListResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	files, err := s.fileRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	out := make([]dto.FileResponse, len(files))
	for i, f := range files {
		out[i] = dto.FileResponse{
			ID:        f.ID,
			FileName:  f.FileName,
			FileType:  f.FileType,
			Size:      f.Size,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		}
	}

	return &dto.FileListResponse{Success: true, Files: out}, nil
}
