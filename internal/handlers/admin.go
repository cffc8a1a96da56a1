package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// AdminHandler exposes the conversion audit log for monitoring.
type AdminHandler struct {
	history *services.HistoryService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(history *services.HistoryService) *AdminHandler {
	return &AdminHandler{history: history}
}

// RecentConversions lists the most recent conversions, newest first.
func (h *AdminHandler) RecentConversions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	conversions, err := h.history.Recent(limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch conversion history")
	}
	total, err := h.history.Total()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to count conversions")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"conversions": conversions,
		"count":       len(conversions),
		"total":       total,
	})
}
