package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// PreviewHandler serves the parsed contact data for an open session.
type PreviewHandler struct {
	sessions *services.SessionManager
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(sessions *services.SessionManager) *PreviewHandler {
	return &PreviewHandler{sessions: sessions}
}

// Preview returns the full flattened contact list for a session.
func (h *PreviewHandler) Preview(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("sessionID"))
	if err != nil {
		return failErr(c, fiber.StatusNotFound, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"contacts":    session.Contacts,
		"total_count": len(session.Contacts),
	})
}
