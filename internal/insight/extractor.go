// Package insight pulls short human-attributable snippets out of classified
// items: the actual commitment sentence, the actual blocker sentence, and so
// on. Extraction is best-effort; a flag without a matching sub-pattern
// simply yields no entry.
package insight

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/briefd/internal/relevance"
)

// Insights holds the snippets extracted from one item, keyed by category.
type Insights struct {
	ActionItems    []string
	Commitments    []string
	Blockers       []string
	Questions      []string
	HealthMentions []string
}

// Empty reports whether no snippet was extracted.
func (i Insights) Empty() bool {
	return len(i.ActionItems) == 0 && len(i.Commitments) == 0 &&
		len(i.Blockers) == 0 && len(i.Questions) == 0 && len(i.HealthMentions) == 0
}

// actionCues are substrings that mark a line as the action item itself.
var actionCues = []string{"action:", "todo:", "need to", "please"}

// commitmentPatterns are tried in order; the first pattern that matches
// anything wins.
var commitmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(i(?:'ll| will)[^.!?]+[.!?])`),
	regexp.MustCompile(`(?i)(by (?:friday|monday|tuesday|wednesday|thursday|eod|eow)[^.!?]*[.!?]?)`),
}

var blockerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(blocked[^.!?]+[.!?])`),
	regexp.MustCompile(`(?i)(waiting on[^.!?]+[.!?])`),
	regexp.MustCompile(`(?i)(can't proceed[^.!?]+[.!?])`),
}

// questionCues mark a sentence as a question directed at the reader even
// after sentence-terminal punctuation has been stripped.
var questionCues = []string{"can you", "could you", "did you"}

var sentenceSplit = regexp.MustCompile(`[.!?]`)

// Extractor derives insight snippets from flagged item text.
// Extractor is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract pulls snippets for every flag set on the analysis. source labels
// where the snippet came from (email subject or chat channel) and is
// appended to each entry.
func (x *Extractor) Extract(text, source string, a relevance.Analysis) Insights {
	var out Insights

	if a.HasFlag(relevance.FlagActionItem) {
		if line, ok := firstActionLine(text); ok {
			out.ActionItems = append(out.ActionItems, line+" (from "+source+")")
		}
	}

	if a.HasFlag(relevance.FlagCommitment) {
		if m, ok := firstPatternMatch(commitmentPatterns, text); ok {
			out.Commitments = append(out.Commitments, m+" (from "+source+")")
		}
	}

	if a.HasFlag(relevance.FlagBlocker) {
		if m, ok := firstPatternMatch(blockerPatterns, text); ok {
			out.Blockers = append(out.Blockers, m+" (from "+source+")")
		}
	}

	if a.HasFlag(relevance.FlagQuestion) {
		if s, ok := firstQuestionSentence(text); ok {
			out.Questions = append(out.Questions, s+"? (from "+source+")")
		}
	}

	if a.HasFlag(relevance.FlagHealth) {
		if s, ok := healthSnippet(text); ok {
			out.HealthMentions = append(out.HealthMentions, "..."+s+"... (from "+source+")")
		}
	}

	return out
}

// firstActionLine scans the text line by line for the first line containing
// an action cue.
func firstActionLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, cue := range actionCues {
			if strings.Contains(lower, cue) {
				return strings.TrimSpace(line), true
			}
		}
	}
	return "", false
}

// firstPatternMatch applies the ordered pattern list and returns the first
// match of the first pattern that matches anything.
func firstPatternMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// firstQuestionSentence splits on sentence-terminal punctuation and returns
// the first sentence that still carries a "?" or a direct-address cue.
func firstQuestionSentence(text string) (string, bool) {
	for _, sentence := range sentenceSplit.Split(text, -1) {
		lower := strings.ToLower(sentence)
		hit := strings.Contains(sentence, "?")
		for _, cue := range questionCues {
			if strings.Contains(lower, cue) {
				hit = true
				break
			}
		}
		if hit {
			return strings.TrimSpace(sentence), true
		}
	}
	return "", false
}

// healthSnippet locates the first health keyword and emits a context window
// of 50 characters before and 100 after the match.
func healthSnippet(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range relevance.HealthKeywords() {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		start := idx - 50
		if start < 0 {
			start = 0
		}
		end := idx + len(kw) + 100
		if end > len(text) {
			end = len(text)
		}
		return strings.TrimSpace(text[start:end]), true
	}
	return "", false
}
