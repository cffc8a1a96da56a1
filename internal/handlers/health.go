package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	Version     string
	StorageType string
	sessions    *services.SessionManager
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version, storageType string, sessions *services.SessionManager) *HealthHandler {
	return &HealthHandler{
		Version:     version,
		StorageType: storageType,
		sessions:    sessions,
	}
}

// Check returns the health status of the service.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":          "OK",
		"service":         "CardSheet Backend",
		"version":         h.Version,
		"active_sessions": h.sessions.ActiveCount(),
		"history_storage": h.StorageType,
	})
}
