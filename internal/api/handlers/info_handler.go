package handlers

import (
	"bytes"
	"html/template"
	"time"

	"aipin/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

type InfoHandler struct {
	searchEnabled bool
	adminPage     *template.Template
}

func NewInfoHandler(searchEnabled bool, adminPage *template.Template) *InfoHandler {
	return &InfoHandler{
		searchEnabled: searchEnabled,
		adminPage:     adminPage,
	}
}

// Info godoc
// @Summary Service information
// @Tags system
// @Produce json
// @Success 200 {object} dto.InfoResponse
// @Router /api/info [get]
func (h *InfoHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.InfoResponse{
		Name:        "Aipin AI",
		Version:     Version,
		Description: "DeepSeek जैसा AI असिस्टेंट",
		Features: []string{
			"AI चैट",
			"फाइल अपलोड",
			"वेब खोज",
			"चैट हिस्ट्री",
			"मल्टीलैंग्वेज सपोर्ट",
		},
		Status:    "active",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Admin renders the status page.
func (h *InfoHandler) Admin(c *fiber.Ctx) error {
	var buf bytes.Buffer
	err := h.adminPage.Execute(&buf, map[string]any{
		"Version":       Version,
		"SearchEnabled": h.searchEnabled,
	})
	if err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
