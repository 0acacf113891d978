package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hyperjump/genie/internal/models"
	"github.com/ledongthuc/pdf"
)

// extractPDF produces one text unit per page. Pages with no extractable text
// are skipped; a page extraction error fails the whole document.
func extractPDF(doc models.SourceDocument) ([]models.TextUnit, error) {
	r, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	var units []models.TextUnit
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		units = append(units, models.TextUnit{
			Source:  doc.Filename,
			Page:    i,
			Content: text,
		})
	}
	return units, nil
}
