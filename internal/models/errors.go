package models

import "errors"

// Error taxonomy surfaced to API clients. Handlers translate these to HTTP
// status codes with errors.Is; messages are safe to show to the end user.
var (
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrEmptyOrInvalidInput  = errors.New("no parseable vCard records found")
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrNoFieldsSelected     = errors.New("no fields selected")
	ErrEmptySession         = errors.New("session has no contacts")
	ErrInternalWriteFailure = errors.New("spreadsheet generation failed")
)
