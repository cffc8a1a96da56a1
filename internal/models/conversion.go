package models

import "gorm.io/gorm"

// Conversion is one row of the conversion audit log, written after each
// successful export. No contact data is persisted, only counts.
type Conversion struct {
	gorm.Model
	SessionID     string `json:"session_id" gorm:"index"`
	Filename      string `json:"filename"`
	ExcelFilename string `json:"excel_filename"`
	ContactCount  int    `json:"contact_count"`
	FieldCount    int    `json:"field_count"`
}
