package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// DownloadHandler serves generated workbooks. Downloads are session-scoped:
// the reference returned by Convert is the session id, and the file is gone
// once the session is evicted.
type DownloadHandler struct {
	sessions *services.SessionManager
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(sessions *services.SessionManager) *DownloadHandler {
	return &DownloadHandler{sessions: sessions}
}

// Download streams the workbook generated for a session as an attachment.
func (h *DownloadHandler) Download(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("sessionID"))
	if err != nil {
		return failErr(c, fiber.StatusNotFound, err)
	}
	if session.ExcelPath == "" {
		return fail(c, fiber.StatusNotFound, "No spreadsheet has been generated for this session")
	}

	return c.Download(session.ExcelPath, session.ExcelFilename)
}
