// Package document holds extracted document content and the insight
// summarizer that derives metric mentions and structural information from
// plain text. Heavyweight format conversion (PDF, DOCX, XLSX) is owned by an
// external collaborator; this package only handles formats that are already
// text.
package document

import "strings"

// ExtractedDocument is plain-text content extracted from one file.
// Produced by the extraction collaborator (or ExtractFromBytes for text
// formats) and consumed read-only by the engine.
type ExtractedDocument struct {
	Filename   string            `json:"filename"`
	Text       string            `json:"text"`
	SourceType string            `json:"source_type"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
}

// WordCount returns the number of whitespace-separated tokens in the text.
func (d ExtractedDocument) WordCount() int {
	if d.Text == "" {
		return 0
	}
	return len(strings.Fields(d.Text))
}

// Preview returns the leading maxChars of the text, with an ellipsis when
// truncated.
func (d ExtractedDocument) Preview(maxChars int) string {
	if d.Text == "" {
		return ""
	}
	if len(d.Text) <= maxChars {
		return d.Text
	}
	return d.Text[:maxChars] + "..."
}
