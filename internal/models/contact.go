package models

// FlattenedContact is one contact reduced to a flat field-name → value
// mapping, ready for tabular export. Fields absent from a contact are simply
// missing keys; readers treat them as empty strings.
type FlattenedContact map[string]string

// FieldCatalog is the set of all field names discovered across one upload
// batch, in first-seen order, partitioned into categories for UI grouping.
// Every field name belongs to exactly one category.
type FieldCatalog struct {
	Fields     []string            `json:"fields"`
	Categories map[string][]string `json:"categories"`

	seen map[string]bool
}

// NewFieldCatalog creates an empty catalog.
func NewFieldCatalog() *FieldCatalog {
	return &FieldCatalog{
		Categories: make(map[string][]string),
		seen:       make(map[string]bool),
	}
}

// Add registers a field under a category. Re-adding a known field is a no-op,
// so the first contact to produce a field decides its catalog position.
func (fc *FieldCatalog) Add(field, category string) {
	if fc.seen[field] {
		return
	}
	fc.seen[field] = true
	fc.Fields = append(fc.Fields, field)
	fc.Categories[category] = append(fc.Categories[category], field)
}

// Has reports whether the field was discovered in this batch.
func (fc *FieldCatalog) Has(field string) bool {
	return fc.seen[field]
}
