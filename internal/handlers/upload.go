package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/models"
	"github.com/cardsheet/cardsheet-backend/internal/services"
	"github.com/cardsheet/cardsheet-backend/internal/vcf"
)

// previewSize is how many contacts the upload response carries for the
// immediate UI preview. The full list is available via the preview endpoint.
const previewSize = 3

// UploadHandler handles vCard file uploads.
type UploadHandler struct {
	sessions *services.SessionManager
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(sessions *services.SessionManager) *UploadHandler {
	return &UploadHandler{sessions: sessions}
}

// Upload parses an uploaded .vcf file, flattens its contacts and opens a
// session for the later preview and convert requests.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "No file selected")
	}
	if err := validateUpload(fileHeader); err != nil {
		return failErr(c, fiber.StatusBadRequest, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer func() { _ = file.Close() }()

	cards, skipped, err := vcf.Parse(file)
	if err != nil {
		if errors.Is(err, models.ErrEmptyOrInvalidInput) {
			return failErr(c, fiber.StatusBadRequest, err)
		}
		return fail(c, fiber.StatusInternalServerError, "Error processing file: "+err.Error())
	}

	contacts, catalog := vcf.Extract(cards)
	session := h.sessions.Create(filepath.Base(fileHeader.Filename), contacts, catalog, skipped)

	preview := contacts
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"session_id":        session.ID,
		"filename":          session.Filename,
		"contacts_count":    len(contacts),
		"skipped_records":   skipped,
		"available_fields":  catalog.Fields,
		"field_suggestions": catalog.Categories,
		"preview_contacts":  preview,
	})
}

func validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Filename == "" {
		return errors.New("no file selected")
	}
	if ext := filepath.Ext(fileHeader.Filename); !strings.EqualFold(ext, ".vcf") {
		return fmt.Errorf("%w: expected a .vcf file, got %q", models.ErrInvalidFileType, ext)
	}
	return nil
}
