package vcf

import (
	"bytes"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-vcard"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

// Parse reads a stream of concatenated vCard blocks and returns the decoded
// cards plus the number of malformed blocks that were skipped. A block that
// fails to decode (missing END:VCARD, unparseable line) is dropped and
// counted; the batch fails only when not a single block decodes, with
// models.ErrEmptyOrInvalidInput.
func Parse(r io.Reader) ([]vcard.Card, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}

	blocks := splitBlocks(decodeText(raw))
	if len(blocks) == 0 {
		return nil, 0, models.ErrEmptyOrInvalidInput
	}

	var cards []vcard.Card
	skipped := 0
	for i, block := range blocks {
		card, err := vcard.NewDecoder(strings.NewReader(block)).Decode()
		if err != nil {
			log.Printf("Skipping malformed vCard block %d: %v", i+1, err)
			skipped++
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, skipped, models.ErrEmptyOrInvalidInput
	}
	return cards, skipped, nil
}

// decodeText converts raw file bytes to a string. Exported contact files are
// usually UTF-8 but Windows exports are often Latin-1/CP1252; invalid UTF-8
// falls back to a byte-to-rune widening so no input is rejected outright.
func decodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// splitBlocks cuts the input into individual BEGIN:VCARD..END:VCARD blocks so
// that one broken block cannot poison the rest of the batch. An unterminated
// block is still returned; decoding it fails and the caller counts the skip.
func splitBlocks(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var blocks []string
	var current []string
	inBlock := false

	for _, line := range strings.Split(content, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			if inBlock {
				blocks = append(blocks, strings.Join(current, "\r\n"))
			}
			current = []string{line}
			inBlock = true
		case strings.HasPrefix(upper, "END:VCARD"):
			if inBlock {
				current = append(current, line)
				blocks = append(blocks, strings.Join(current, "\r\n"))
				current = nil
				inBlock = false
			}
		default:
			if inBlock {
				current = append(current, normalizeParams(line))
			}
		}
	}
	if inBlock {
		blocks = append(blocks, strings.Join(current, "\r\n"))
	}
	return blocks
}

// normalizeParams rewrites vCard 2.1 bare parameters ("TEL;CELL:...") into
// the 3.0 form ("TEL;TYPE=CELL:...") that the decoder accepts.
func normalizeParams(line string) string {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return line // folded continuation, value data only
	}
	colon := strings.Index(line, ":")
	if colon < 0 {
		return line
	}
	head := line[:colon]
	if !strings.Contains(head, ";") {
		return line
	}
	parts := strings.Split(head, ";")
	for i, p := range parts[1:] {
		if p != "" && !strings.Contains(p, "=") {
			parts[i+1] = "TYPE=" + p
		}
	}
	return strings.Join(parts, ";") + line[colon:]
}
