package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/genie/internal/models"
)

// extractPlain returns the full content verbatim as one text unit, validating
// UTF-8. Invalid sequences are replaced with the replacement character.
func extractPlain(doc models.SourceDocument) ([]models.TextUnit, error) {
	content := doc.Content
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "�"))
	}
	if len(content) == 0 {
		return nil, nil
	}
	return []models.TextUnit{{Source: doc.Filename, Content: string(content)}}, nil
}
