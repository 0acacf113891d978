// Package models defines core data structures for documents, chunks, and dialogue.
package models

import "strings"

// Format identifies a source document format supported by the loader.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// FormatFromExt maps a file extension (with leading dot, case-insensitive)
// to a Format. Unrecognized extensions map to FormatUnknown.
func FormatFromExt(ext string) Format {
	switch strings.ToLower(ext) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// SourceDocument is a raw uploaded artifact. It is consumed by the loader
// during extraction and not retained afterwards.
type SourceDocument struct {
	Filename string
	Format   Format
	Content  []byte
}

// TextUnit is one extracted logical block of document text with provenance.
// PDF files produce one unit per page; other formats produce one unit per file.
// Page is 1-based for PDF units and 0 for whole-file units.
type TextUnit struct {
	Source  string `json:"source"`
	Page    int    `json:"page,omitempty"`
	Content string `json:"content"`
}
