// Package briefing runs the relevance classifier and insight extractor over
// a gathered pool and assembles the filtered, annotated context bundle for
// one meeting.
package briefing

import (
	"github.com/fyrsmithlabs/briefd/internal/document"
	"github.com/fyrsmithlabs/briefd/internal/gather"
	"github.com/fyrsmithlabs/briefd/internal/relevance"
)

// AnalyzedEmail pairs one raw email with its classification.
type AnalyzedEmail struct {
	Email gather.Email `json:"email"`
	relevance.Analysis
}

// AnalyzedMessage pairs one raw chat message with its classification.
type AnalyzedMessage struct {
	Message gather.ChatMessage `json:"message"`
	relevance.Analysis
}

// DocumentSummary is the per-document summary record.
type DocumentSummary struct {
	Filename   string   `json:"filename"`
	SourceType string   `json:"source_type"`
	WordCount  int      `json:"word_count"`
	Headings   []string `json:"headings,omitempty"`
	HasTables  bool     `json:"has_tables"`
	KeyMetrics []string `json:"key_metrics,omitempty"`
	Preview    string   `json:"preview,omitempty"`
}

// FilteredContext is the engine's output: ranked included items, extracted
// insight lists, document summaries, and counters. All fields are plain
// data so any downstream consumer can serialize it without depending on the
// engine.
type FilteredContext struct {
	Emails    []AnalyzedEmail              `json:"emails"`
	Messages  []AnalyzedMessage            `json:"messages"`
	Documents []document.ExtractedDocument `json:"documents"`

	ActionItems         []string `json:"action_items"`
	Commitments         []string `json:"commitments"`
	Blockers            []string `json:"blockers"`
	UnansweredQuestions []string `json:"unanswered_questions"`
	HealthMentions      []string `json:"health_mentions"`
	// RelationshipNotes is reserved for future signals; the engine never
	// populates it.
	RelationshipNotes []string `json:"relationship_notes"`

	KeyMetrics        []string          `json:"key_metrics"`
	DocumentSummaries []DocumentSummary `json:"document_summaries"`

	TotalItemsAnalyzed int `json:"total_items_analyzed"`
	ItemsIncluded      int `json:"items_included"`
	ItemsExcluded      int `json:"items_excluded"`
}
