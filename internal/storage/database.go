package storage

import (
	"gorm.io/gorm"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

// DatabaseStore persists the conversion log in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store over an open GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) RecordConversion(conversion *models.Conversion) error {
	return d.db.Create(conversion).Error
}

func (d *DatabaseStore) RecentConversions(limit int) ([]*models.Conversion, error) {
	var conversions []*models.Conversion
	query := d.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&conversions).Error
	return conversions, err
}

func (d *DatabaseStore) CountConversions() (int64, error) {
	var count int64
	err := d.db.Model(&models.Conversion{}).Count(&count).Error
	return count, err
}
