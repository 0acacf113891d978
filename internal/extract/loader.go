// Package extract converts uploaded documents into text units with provenance.
package extract

import (
	"os"
	"path/filepath"

	"github.com/hyperjump/genie/internal/models"
	"go.uber.org/zap"
)

// extractFunc produces text units from one source document.
type extractFunc func(doc models.SourceDocument) ([]models.TextUnit, error)

// Loader extracts text units from source documents, dispatching on format.
type Loader struct {
	table  map[models.Format]extractFunc
	logger *zap.Logger // optional; when set, logs skipped and failed files
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for debug output (skipped files, extraction failures).
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader returns a loader with extraction strategies registered for
// PDF, DOCX, and plain text.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{
		table: map[models.Format]extractFunc{
			models.FormatPDF:  extractPDF,
			models.FormatDOCX: extractDOCX,
			models.FormatText: extractPlain,
		},
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load extracts text units from docs in upload order. Documents with an
// unregistered format are skipped, and per-document extraction failures do not
// abort the batch. The returned units preserve upload order then intra-file
// (page) order.
func (ld *Loader) Load(docs []models.SourceDocument) []models.TextUnit {
	var units []models.TextUnit
	for _, doc := range docs {
		fn, ok := ld.table[doc.Format]
		if !ok {
			if ld.logger != nil {
				ld.logger.Debug("skipping unsupported document",
					zap.String("filename", doc.Filename),
					zap.String("format", string(doc.Format)))
			}
			continue
		}
		extracted, err := fn(doc)
		if err != nil {
			if ld.logger != nil {
				ld.logger.Warn("extraction failed, skipping document",
					zap.String("filename", doc.Filename),
					zap.Error(err))
			}
			continue
		}
		units = append(units, extracted...)
	}
	return units
}

// FromFile reads the file at path into a SourceDocument, deriving the format
// from the file extension.
func FromFile(path string) (models.SourceDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.SourceDocument{}, err
	}
	return models.SourceDocument{
		Filename: filepath.Base(path),
		Format:   models.FormatFromExt(filepath.Ext(path)),
		Content:  content,
	}, nil
}
