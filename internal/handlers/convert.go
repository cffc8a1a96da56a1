package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/excel"
	"github.com/cardsheet/cardsheet-backend/internal/models"
	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// ConvertHandler turns a session's contacts into a downloadable workbook.
type ConvertHandler struct {
	sessions    *services.SessionManager
	history     *services.HistoryService
	downloadDir string
}

// NewConvertHandler creates a new convert handler writing into downloadDir.
func NewConvertHandler(sessions *services.SessionManager, history *services.HistoryService, downloadDir string) *ConvertHandler {
	return &ConvertHandler{
		sessions:    sessions,
		history:     history,
		downloadDir: downloadDir,
	}
}

// Convert generates the spreadsheet for the selected fields, in the selected
// order, and attaches it to the session for download.
func (h *ConvertHandler) Convert(c *fiber.Ctx) error {
	var req models.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SessionID == "" {
		return fail(c, fiber.StatusBadRequest, "Missing session id")
	}

	session, err := h.sessions.Get(req.SessionID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Session expired. Please upload the file again.")
	}

	if len(req.Fields) == 0 {
		return failErr(c, fiber.StatusBadRequest, models.ErrNoFieldsSelected)
	}
	for _, field := range req.Fields {
		if !session.Catalog.Has(field) {
			return fail(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown field %q", field))
		}
	}

	// On-disk name is session-scoped so same-named uploads cannot collide.
	excelFilename := strings.TrimSuffix(session.Filename, filepath.Ext(session.Filename)) + ".xlsx"
	excelPath := filepath.Join(h.downloadDir, session.ID+".xlsx")

	if err := excel.WriteFile(session.Contacts, req.Fields, excelPath); err != nil {
		if errors.Is(err, models.ErrNoFieldsSelected) || errors.Is(err, models.ErrEmptySession) {
			return failErr(c, fiber.StatusBadRequest, err)
		}
		return failErr(c, fiber.StatusInternalServerError, err)
	}

	if err := h.sessions.AttachWorkbook(session.ID, excelFilename, excelPath); err != nil {
		return failErr(c, fiber.StatusNotFound, err)
	}
	h.history.Record(session, excelFilename, len(req.Fields))

	return c.JSON(fiber.Map{
		"success":        true,
		"download_url":   "/download/" + session.ID,
		"excel_filename": excelFilename,
		"records_count":  len(session.Contacts),
	})
}
