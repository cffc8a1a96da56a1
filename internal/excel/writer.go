package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

// SheetName is the single worksheet every exported workbook contains.
const SheetName = "Contacts"

const (
	maxColumnWidth = 50
	headerFill     = "4472C4"
)

// Write builds a one-sheet workbook: row 1 holds the field names verbatim in
// the caller-supplied order, followed by one row per contact. Every cell is
// written as text so phone numbers and postal codes survive untouched.
func Write(contacts []models.FlattenedContact, fields []string) (*excelize.File, error) {
	if len(fields) == 0 {
		return nil, models.ErrNoFieldsSelected
	}
	if len(contacts) == 0 {
		return nil, models.ErrEmptySession
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, writeFailure(err)
	}

	widths := make([]int, len(fields))
	for col, field := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, writeFailure(err)
		}
		if err := f.SetCellStr(SheetName, cell, field); err != nil {
			return nil, writeFailure(err)
		}
		widths[col] = len(field)
	}

	for row, contact := range contacts {
		for col, field := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, writeFailure(err)
			}
			value := contact[field] // absent fields export as empty cells
			if err := f.SetCellStr(SheetName, cell, value); err != nil {
				return nil, writeFailure(err)
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, writeFailure(err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(fields), 1)
	if err != nil {
		return nil, writeFailure(err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, writeFailure(err)
	}

	for col := range fields {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, writeFailure(err)
		}
		width := widths[col] + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width)); err != nil {
			return nil, writeFailure(err)
		}
	}

	return f, nil
}

// WriteFile writes the workbook for the given selection to path.
func WriteFile(contacts []models.FlattenedContact, fields []string, path string) error {
	f, err := Write(contacts, fields)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return writeFailure(err)
	}
	return nil
}

func writeFailure(err error) error {
	return fmt.Errorf("%w: %v", models.ErrInternalWriteFailure, err)
}
