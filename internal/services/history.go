package services

import (
	"log"

	"github.com/cardsheet/cardsheet-backend/internal/models"
	"github.com/cardsheet/cardsheet-backend/internal/storage"
)

// HistoryService records completed conversions through the configured store.
// A failed audit write never fails the conversion itself.
type HistoryService struct {
	store storage.Store
}

// NewHistoryService creates a history service over the given store.
func NewHistoryService(store storage.Store) *HistoryService {
	return &HistoryService{store: store}
}

// Record logs one successful conversion. Only counts are persisted, never
// contact data.
func (h *HistoryService) Record(session *models.Session, excelFilename string, fieldCount int) {
	conversion := &models.Conversion{
		SessionID:     session.ID,
		Filename:      session.Filename,
		ExcelFilename: excelFilename,
		ContactCount:  len(session.Contacts),
		FieldCount:    fieldCount,
	}
	if err := h.store.RecordConversion(conversion); err != nil {
		log.Printf("Failed to record conversion for session %s: %v", session.ID, err)
	}
}

// Recent returns the most recent conversions, newest first.
func (h *HistoryService) Recent(limit int) ([]*models.Conversion, error) {
	return h.store.RecentConversions(limit)
}

// Total returns the all-time conversion count.
func (h *HistoryService) Total() (int64, error) {
	return h.store.CountConversions()
}
