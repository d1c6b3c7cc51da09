package handlers

import (
	"errors"
	"strconv"

	"aipin/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService   *service.FileService
	defaultUserID int64
	logger        *zap.Logger
}

func NewFileHandler(fileService *service.FileService, defaultUserID int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// UploadFile godoc
// @Summary Upload a file
// @Description Save an allow-listed file and return a shallow analysis
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param user_id formData int false "User ID" default(1)
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/upload [post]
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "कोई फाइल नहीं",
		})
	}

	userID := h.defaultUserID
	if id, err := strconv.ParseInt(c.FormValue("user_id"), 10, 64); err == nil && id > 0 {
		userID = id
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "फाइल खोली नहीं जा सकी",
		})
	}
	defer src.Close()

	resp, err := h.fileService.Upload(c.UserContext(), userID, src, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "कोई फाइल नहीं",
			})
		case errors.Is(err, service.ErrFileNameMissing):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "फाइल का नाम नहीं",
			})
		case errors.Is(err, service.ErrFileTypeNotAllowed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "अमान्य फाइल फॉर्मेट",
			})
		}
		h.logger.Error("Failed to upload file", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(resp)
}

// ListFiles godoc
// @Summary List uploaded files
// @Tags files
// @Produce json
// @Param user_id query int false "User ID" default(1)
// @Param limit query int false "Limit" default(50)
// @Success 200 {object} dto.FileListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/files [get]
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id", int(h.defaultUserID)))
	limit := c.QueryInt("limit", 50)

	resp, err := h.fileService.List(c.UserContext(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to list files", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(resp)
}
