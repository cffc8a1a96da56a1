package vcf

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/quotedprintable"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

// Categories used to group discovered fields for the selection UI.
const (
	CategoryName         = "Name"
	CategoryContact      = "Contact"
	CategoryOrganization = "Organization"
	CategoryPersonal     = "Personal"
	CategoryOther        = "Other"
)

var (
	nameSubfields    = []string{"Last Name", "First Name", "Middle Name", "Name Prefix", "Name Suffix"}
	addressSubfields = []string{"PO Box", "Extended Address", "Street Address", "City", "State/Province", "Postal Code", "Country"}

	phoneTypes = map[string]string{
		"HOME":   "Home",
		"WORK":   "Work",
		"CELL":   "Mobile",
		"MOBILE": "Mobile",
		"FAX":    "Fax",
		"PAGER":  "Pager",
		"VOICE":  "Voice",
		"MAIN":   "Main",
	}
	emailTypes = map[string]string{
		"HOME":     "Home",
		"WORK":     "Work",
		"INTERNET": "Internet",
	}
	addressTypes = map[string]string{
		"HOME": "Home",
		"WORK": "Work",
	}

	// Known properties are labeled in this order so the catalog is stable
	// regardless of property order inside the file.
	propertyOrder = []string{
		"FN", "N", "NICKNAME", "TEL", "EMAIL", "URL", "ADR",
		"ORG", "TITLE", "ROLE", "BDAY", "NOTE", "CATEGORIES", "REV",
	}

	phoneCleanRe = regexp.MustCompile(`[^0-9+\-() ]`)

	dateLayouts = []string{"20060102", "2006-01-02", "01/02/2006", "02/01/2006"}
)

type fieldValue struct {
	label    string
	value    string
	category string
}

// Extract flattens each card into a field-name → value map and builds the
// batch field catalog. Labels are a pure function of (property, TYPE
// parameter, per-label ordinal), so identical logical fields share one
// column name across all contacts in the batch.
func Extract(cards []vcard.Card) ([]models.FlattenedContact, *models.FieldCatalog) {
	catalog := models.NewFieldCatalog()
	contacts := make([]models.FlattenedContact, 0, len(cards))

	for i, card := range cards {
		contact := models.FlattenedContact{}
		counts := make(map[string]int)

		for _, prop := range orderedProperties(card) {
			for _, f := range card[prop] {
				for _, fv := range extractProperty(prop, f) {
					if fv.value == "" {
						continue
					}
					label := uniqueLabel(fv.label, counts)
					contact[label] = fv.value
					catalog.Add(label, fv.category)
				}
			}
		}

		// A fully blank row helps no one; give empty cards a placeholder.
		if len(contact) == 0 {
			contact["Full Name"] = fmt.Sprintf("Unnamed Contact %d", i+1)
			catalog.Add("Full Name", CategoryName)
		}

		contacts = append(contacts, contact)
	}

	return contacts, catalog
}

// uniqueLabel disambiguates repeated labels within one contact by ordinal
// suffix: the first occurrence keeps the base label, the second becomes
// "<label> 2", and so on, in property occurrence order.
func uniqueLabel(base string, counts map[string]int) string {
	counts[base]++
	if n := counts[base]; n > 1 {
		return fmt.Sprintf("%s %d", base, n)
	}
	return base
}

// orderedProperties returns the card's property names in deterministic
// labeling order: the known mapping table first, then any remaining
// properties alphabetically. Binary-valued properties are not exportable to
// a text table and are dropped here.
func orderedProperties(card vcard.Card) []string {
	props := make([]string, 0, len(card))
	seen := make(map[string]bool)
	for _, p := range propertyOrder {
		if _, ok := card[p]; ok {
			props = append(props, p)
			seen[p] = true
		}
	}
	var extras []string
	for p := range card {
		switch p {
		case "VERSION", "BEGIN", "END", "PHOTO", "LOGO", "SOUND", "KEY":
			continue
		}
		if !seen[p] {
			extras = append(extras, p)
		}
	}
	sort.Strings(extras)
	return append(props, extras...)
}

func extractProperty(name string, f *vcard.Field) []fieldValue {
	value := strings.TrimSpace(decodeValue(f))
	if value == "" {
		return nil
	}
	category := categoryFor(name)

	switch name {
	case "FN":
		return []fieldValue{{"Full Name", value, category}}
	case "N":
		return explode(value, nameSubfields, "", category)
	case "ADR":
		return explode(value, addressSubfields, typeSuffix(f, addressTypes), category)
	case "TEL":
		return []fieldValue{{"Phone" + typeSuffix(f, phoneTypes), cleanPhone(value), category}}
	case "EMAIL":
		return []fieldValue{{"Email" + typeSuffix(f, emailTypes), strings.ToLower(value), category}}
	case "ORG":
		parts := splitStructured(value)
		out := []fieldValue{{"Organization", strings.TrimSpace(parts[0]), category}}
		if len(parts) > 1 {
			if dept := strings.TrimSpace(parts[1]); dept != "" {
				out = append(out, fieldValue{"Department", dept, category})
			}
		}
		return out
	case "TITLE":
		return []fieldValue{{"Job Title", value, category}}
	case "ROLE":
		return []fieldValue{{"Role", value, category}}
	case "URL":
		return []fieldValue{{"Website", value, category}}
	case "BDAY":
		return []fieldValue{{"Birthday", formatDate(value), category}}
	case "NOTE":
		return []fieldValue{{"Notes", value, category}}
	case "NICKNAME":
		return []fieldValue{{"Nickname", value, category}}
	case "CATEGORIES":
		return []fieldValue{{"Categories", value, category}}
	case "REV":
		return []fieldValue{{"Last Modified", value, category}}
	default:
		return []fieldValue{{titleLabel(name), value, category}}
	}
}

// categoryFor assigns each property name to exactly one catalog category.
func categoryFor(name string) string {
	switch name {
	case "FN", "N", "NICKNAME":
		return CategoryName
	case "TEL", "EMAIL", "URL", "ADR":
		return CategoryContact
	case "ORG", "TITLE", "ROLE", "X-MANAGER", "X-ASSISTANT":
		return CategoryOrganization
	case "BDAY", "NOTE", "CATEGORIES", "REV", "X-ANNIVERSARY", "X-SPOUSE":
		return CategoryPersonal
	default:
		return CategoryOther
	}
}

// explode splits a structured compound value (N, ADR) into one field per
// subfield, aligned by position. Empty subfields produce no field.
func explode(value string, subfields []string, suffix, category string) []fieldValue {
	parts := splitStructured(value)
	var out []fieldValue
	for i, sub := range subfields {
		if i >= len(parts) {
			break
		}
		if v := strings.TrimSpace(parts[i]); v != "" {
			out = append(out, fieldValue{sub + suffix, v, category})
		}
	}
	return out
}

// splitStructured splits on unescaped semicolons, honoring the vCard
// backslash escapes (\; \, \n).
func splitStructured(value string) []string {
	var parts []string
	var b strings.Builder
	escaped := false
	for _, r := range value {
		switch {
		case escaped:
			if r == 'n' || r == 'N' {
				b.WriteRune('\n')
			} else {
				b.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	parts = append(parts, b.String())
	return parts
}

// typeSuffix maps the field's TYPE parameter to a label suffix like
// " (Home)". The first recognized type token wins; untyped fields get no
// suffix.
func typeSuffix(f *vcard.Field, table map[string]string) string {
	for _, v := range f.Params["TYPE"] {
		for _, tok := range strings.Split(v, ",") {
			if label, ok := table[strings.ToUpper(strings.TrimSpace(tok))]; ok {
				return " (" + label + ")"
			}
		}
	}
	return ""
}

// decodeValue undoes vCard 2.1 transfer encodings; the decoder passes those
// values through verbatim.
func decodeValue(f *vcard.Field) string {
	switch strings.ToUpper(f.Params.Get("ENCODING")) {
	case "QUOTED-PRINTABLE":
		decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(f.Value)))
		if err == nil {
			return string(decoded)
		}
	case "B", "BASE64":
		if decoded, err := base64.StdEncoding.DecodeString(f.Value); err == nil {
			return string(decoded)
		}
	}
	return f.Value
}

// cleanPhone strips everything that is not a digit or common phone
// punctuation.
func cleanPhone(value string) string {
	return strings.TrimSpace(phoneCleanRe.ReplaceAllString(value, ""))
}

// formatDate normalizes the date layouts seen in the wild to YYYY-MM-DD.
// Unrecognized values pass through unchanged.
func formatDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// titleLabel turns an unmapped property name into a readable column label:
// X-SPOUSE → "Spouse", X-PHONETIC-LAST-NAME → "Phonetic Last Name".
func titleLabel(name string) string {
	name = strings.TrimPrefix(name, "X-")
	words := strings.Split(strings.ToLower(strings.ReplaceAll(name, "-", " ")), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
