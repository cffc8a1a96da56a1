package models

import "time"

// Session associates one uploaded batch with an opaque identifier. It is
// written once at upload time and read-only afterwards; the generated
// workbook belongs to the session until eviction.
type Session struct {
	ID        string             `json:"session_id"`
	Filename  string             `json:"filename"`
	Contacts  []FlattenedContact `json:"-"`
	Catalog   *FieldCatalog      `json:"-"`
	Skipped   int                `json:"-"` // malformed records dropped during parse
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`

	// Generated spreadsheet artifact, set by the convert operation.
	ExcelFilename string `json:"-"`
	ExcelPath     string `json:"-"`
}

// ConvertRequest is the convert request body: which session to export and
// which fields, in which order. Order determines output column order.
type ConvertRequest struct {
	SessionID string   `json:"session_id"`
	Fields    []string `json:"selected_fields"`
}
