package handlers

import (
	"errors"

	"aipin/internal/dto"
	"aipin/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the assistant
// @Description Resolve a query via special phrases, the knowledge base, optional web search, or a filler reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "अमान्य अनुरोध",
		})
	}

	resp, err := h.chatService.Chat(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "क्वेरी आवश्यक है",
			})
		}
		h.logger.Error("Chat failed", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(resp)
}

// Search godoc
// @Summary Web search
// @Description Instant-answer web search; failures return a fixed unavailable message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Search request"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/search [post]
func (h *ChatHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "अमान्य अनुरोध",
		})
	}

	resp, err := h.chatService.Search(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "खोज क्वेरी आवश्यक है",
			})
		}
		h.logger.Error("Search failed", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(resp)
}

// History godoc
// @Summary Chat history
// @Description Most recent chats of a user, newest first
// @Tags chat
// @Produce json
// @Param user_id query int false "User ID" default(1)
// @Param limit query int false "Limit" default(50)
// @Success 200 {object} dto.HistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id", 0))
	limit := c.QueryInt("limit", 0)

	resp, err := h.chatService.History(c.UserContext(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(resp)
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "सर्वर त्रुटि",
	})
}
