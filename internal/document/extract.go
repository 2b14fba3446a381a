package document

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFileSize caps extraction input at 50MB.
	MaxFileSize = 50 * 1024 * 1024

	// maxCSVRows limits how many rows of a CSV are carried into the text.
	maxCSVRows = 100
)

// sourceTypes maps file extensions to source type tags. Formats requiring
// format-specific parsers (pdf, docx, xlsx, pptx) are not listed; those are
// extracted by the external document collaborator before reaching the
// engine.
var sourceTypes = map[string]string{
	".txt": "txt",
	".md":  "txt",
	".csv": "csv",
}

// ExtractFromBytes extracts plain text from raw file content. Unsupported
// extensions degrade to a best-effort UTF-8 decode with source type
// "unknown"; extraction never returns a Go error, failures are recorded on
// the document itself.
func ExtractFromBytes(content []byte, filename string) ExtractedDocument {
	if len(content) > MaxFileSize {
		return ExtractedDocument{
			Filename:   filename,
			SourceType: "unknown",
			Error:      fmt.Sprintf("file too large: %d bytes (max %d)", len(content), MaxFileSize),
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	sourceType, ok := sourceTypes[ext]
	if !ok {
		sourceType = "unknown"
	}

	var text string
	switch sourceType {
	case "csv":
		text = extractCSV(content)
	default:
		text = decodeText(content)
	}

	return ExtractedDocument{
		Filename:   filename,
		Text:       text,
		SourceType: sourceType,
		Metadata:   map[string]string{"file_size": fmt.Sprintf("%d", len(content))},
		Success:    true,
	}
}

// decodeText decodes bytes as UTF-8, replacing invalid sequences rather than
// failing. Legacy single-byte encodings come through readable enough for
// keyword matching.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "�")
}

// extractCSV renders CSV rows as pipe-separated lines, capped at maxCSVRows.
func extractCSV(content []byte) string {
	r := csv.NewReader(strings.NewReader(decodeText(content)))
	r.FieldsPerRecord = -1

	var lines []string
	for len(lines) < maxCSVRows {
		row, err := r.Read()
		if err != nil {
			break
		}
		lines = append(lines, strings.Join(row, " | "))
	}

	if _, err := r.Read(); err == nil {
		lines = append(lines, "... (truncated, more rows follow)")
	}

	return strings.Join(lines, "\n")
}
