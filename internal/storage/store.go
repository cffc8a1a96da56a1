package storage

import "github.com/cardsheet/cardsheet-backend/internal/models"

// Store defines the persistence seam for the conversion audit log. Session
// data itself never goes through a Store; sessions are in-memory and
// ephemeral by design.
type Store interface {
	RecordConversion(conversion *models.Conversion) error
	RecentConversions(limit int) ([]*models.Conversion, error)
	CountConversions() (int64, error)
}
