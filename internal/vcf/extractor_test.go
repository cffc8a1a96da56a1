package vcf_test

import (
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsheet/cardsheet-backend/internal/models"
	"github.com/cardsheet/cardsheet-backend/internal/vcf"
)

func card(props map[string][]*vcard.Field) vcard.Card {
	c := vcard.Card{}
	for name, fields := range props {
		c[name] = fields
	}
	return c
}

func field(value string, params vcard.Params) *vcard.Field {
	return &vcard.Field{Value: value, Params: params}
}

func TestExtract_BasicContact(t *testing.T) {
	// The canonical scenario: FN + typed TEL + untyped EMAIL.
	c := card(map[string][]*vcard.Field{
		"FN":    {field("Jane Doe", nil)},
		"TEL":   {field("555-1234", vcard.Params{"TYPE": {"CELL"}})},
		"EMAIL": {field("jane@example.com", nil)},
	})

	contacts, catalog := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, models.FlattenedContact{
		"Full Name":      "Jane Doe",
		"Phone (Mobile)": "555-1234",
		"Email":          "jane@example.com",
	}, contacts[0])
	assert.ElementsMatch(t, []string{"Full Name", "Phone (Mobile)", "Email"}, catalog.Fields)
}

func TestExtract_StructuredName(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"N": {field("Doe;Jane;Marie;Dr.;PhD", nil)},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, models.FlattenedContact{
		"Last Name":   "Doe",
		"First Name":  "Jane",
		"Middle Name": "Marie",
		"Name Prefix": "Dr.",
		"Name Suffix": "PhD",
	}, contacts[0])
}

func TestExtract_StructuredAddress(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"ADR": {field(";;123 Main St;Springfield;IL;62704;USA", vcard.Params{"TYPE": {"HOME"}})},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, models.FlattenedContact{
		"Street Address (Home)":  "123 Main St",
		"City (Home)":            "Springfield",
		"State/Province (Home)":  "IL",
		"Postal Code (Home)":     "62704",
		"Country (Home)":         "USA",
	}, contacts[0])
}

func TestExtract_OrganizationWithDepartment(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"ORG":   {field("Acme Corp;Engineering", nil)},
		"TITLE": {field("Staff Engineer", nil)},
	})

	contacts, catalog := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, "Acme Corp", contacts[0]["Organization"])
	assert.Equal(t, "Engineering", contacts[0]["Department"])
	assert.Equal(t, "Staff Engineer", contacts[0]["Job Title"])
	assert.ElementsMatch(t, []string{"Organization", "Department", "Job Title"},
		catalog.Categories[vcf.CategoryOrganization])
}

func TestExtract_OrdinalSuffixForRepeatedLabels(t *testing.T) {
	// Two HOME phones and one untyped phone: the first occurrence keeps
	// the base label, later ones get ordinal suffixes.
	c := card(map[string][]*vcard.Field{
		"TEL": {
			field("111-1111", vcard.Params{"TYPE": {"HOME"}}),
			field("222-2222", vcard.Params{"TYPE": {"HOME"}}),
			field("333-3333", nil),
		},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, models.FlattenedContact{
		"Phone (Home)":   "111-1111",
		"Phone (Home) 2": "222-2222",
		"Phone":          "333-3333",
	}, contacts[0])
}

func TestExtract_ColumnsAlignAcrossContacts(t *testing.T) {
	// Two contacts with the same (property, type, ordinal) shape must land
	// on identical field names, or the exported columns drift apart.
	makeCard := func(a, b string) vcard.Card {
		return card(map[string][]*vcard.Field{
			"TEL": {
				field(a, vcard.Params{"TYPE": {"WORK"}}),
				field(b, vcard.Params{"TYPE": {"WORK"}}),
			},
		})
	}

	contacts, catalog := vcf.Extract([]vcard.Card{
		makeCard("111", "222"),
		makeCard("333", "444"),
	})

	require.Len(t, contacts, 2)
	for _, contact := range contacts {
		assert.Contains(t, contact, "Phone (Work)")
		assert.Contains(t, contact, "Phone (Work) 2")
	}
	assert.Len(t, catalog.Fields, 2)
}

func TestExtract_CatalogInvariants(t *testing.T) {
	cards := []vcard.Card{
		card(map[string][]*vcard.Field{
			"FN":  {field("Jane Doe", nil)},
			"TEL": {field("555-1234", vcard.Params{"TYPE": {"WORK"}})},
		}),
		card(map[string][]*vcard.Field{
			"FN":    {field("John Smith", nil)},
			"EMAIL": {field("john@example.com", nil)},
			"BDAY":  {field("1990-01-15", nil)},
		}),
	}

	contacts, catalog := vcf.Extract(cards)

	// Every field of every contact appears in the catalog.
	for _, contact := range contacts {
		for name := range contact {
			assert.True(t, catalog.Has(name), "field %q missing from catalog", name)
		}
	}

	// Every catalog field belongs to exactly one category.
	counts := make(map[string]int)
	for _, fields := range catalog.Categories {
		for _, name := range fields {
			counts[name]++
		}
	}
	for _, name := range catalog.Fields {
		assert.Equal(t, 1, counts[name], "field %q should be in exactly one category", name)
	}
}

func TestExtract_EmptyCardGetsPlaceholder(t *testing.T) {
	cards := []vcard.Card{
		card(map[string][]*vcard.Field{"FN": {field("Jane Doe", nil)}}),
		card(map[string][]*vcard.Field{"PHOTO": {field("binarybits", nil)}}),
	}

	contacts, _ := vcf.Extract(cards)

	require.Len(t, contacts, 2)
	assert.Equal(t, "Unnamed Contact 2", contacts[1]["Full Name"])
}

func TestExtract_PhoneCleaningAndEmailLowercasing(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"TEL":   {field("tel: +1 (555) 123-4567", nil)},
		"EMAIL": {field("Jane.Doe@Example.COM", vcard.Params{"TYPE": {"WORK"}})},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, "+1 (555) 123-4567", contacts[0]["Phone"])
	assert.Equal(t, "jane.doe@example.com", contacts[0]["Email (Work)"])
}

func TestExtract_BirthdayNormalization(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"basic format", "19900115", "1990-01-15"},
		{"dashed format", "1990-01-15", "1990-01-15"},
		{"us format", "01/15/1990", "1990-01-15"},
		{"unknown format", "around 1990", "around 1990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := card(map[string][]*vcard.Field{"BDAY": {field(tt.value, nil)}})
			contacts, _ := vcf.Extract([]vcard.Card{c})
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.want, contacts[0]["Birthday"])
		})
	}
}

func TestExtract_CustomProperties(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"X-SPOUSE":              {field("Chris Doe", nil)},
		"X-PHONETIC-LAST-NAME":  {field("dow", nil)},
	})

	contacts, catalog := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, "Chris Doe", contacts[0]["Spouse"])
	assert.Equal(t, "dow", contacts[0]["Phonetic Last Name"])
	assert.Contains(t, catalog.Categories[vcf.CategoryPersonal], "Spouse")
	assert.Contains(t, catalog.Categories[vcf.CategoryOther], "Phonetic Last Name")
}

func TestExtract_QuotedPrintableValue(t *testing.T) {
	input := `BEGIN:VCARD
VERSION:2.1
FN:Jane Doe
NOTE;ENCODING=QUOTED-PRINTABLE:Caf=C3=A9 meeting
END:VCARD`

	cards, _, err := vcf.Parse(strings.NewReader(input))
	require.NoError(t, err)

	contacts, _ := vcf.Extract(cards)

	require.Len(t, contacts, 1)
	assert.Equal(t, "Café meeting", contacts[0]["Notes"])
}

func TestExtract_Base64Value(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"X-GREETING": {field("aGVsbG8=", vcard.Params{"ENCODING": {"B"}})},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, "hello", contacts[0]["Greeting"])
}

func TestExtract_EscapedStructuredValues(t *testing.T) {
	c := card(map[string][]*vcard.Field{
		"ORG": {field(`Smith\; Sons & Co;Sales`, nil)},
	})

	contacts, _ := vcf.Extract([]vcard.Card{c})

	require.Len(t, contacts, 1)
	assert.Equal(t, "Smith; Sons & Co", contacts[0]["Organization"])
	assert.Equal(t, "Sales", contacts[0]["Department"])
}
