package relevance

import (
	"regexp"
	"strings"
)

// topicStopWords are generic meeting/calendar terms and short function words
// removed from meeting titles before keyword matching.
var topicStopWords = map[string]struct{}{
	"meeting": {}, "sync": {}, "review": {}, "discussion": {}, "call": {},
	"chat": {}, "with": {}, "the": {}, "a": {}, "an": {}, "and": {},
	"or": {}, "for": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"by": {}, "re": {}, "about": {}, "weekly": {}, "monthly": {},
	"daily": {}, "quarterly": {}, "annual": {}, "team": {}, "1:1": {},
	"one-on-one": {},
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// TopicKeywords is the normalized keyword set derived from a meeting title.
// It anchors the classifier's topic-match rule.
type TopicKeywords []string

// ExtractTopicKeywords lower-cases the title, tokenizes on word boundaries,
// drops stop words and tokens of length <= 2, and returns the remainder.
// An empty title yields an empty set, which disables topic matching.
func ExtractTopicKeywords(title string) TopicKeywords {
	words := wordPattern.FindAllString(strings.ToLower(title), -1)
	keywords := make(TopicKeywords, 0, len(words))
	for _, w := range words {
		if _, stop := topicStopWords[w]; stop {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// Match reports whether text matches the keyword set: at least min(2, len)
// keywords must appear as case-insensitive substrings. Single-keyword titles
// match on one hit; longer titles need two, so one common word cannot
// trigger a match on its own. An empty set never matches.
func (k TopicKeywords) Match(text string) bool {
	if len(k) == 0 {
		return false
	}

	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range k {
		if strings.Contains(lower, kw) {
			matches++
		}
	}

	need := 2
	if len(k) < need {
		need = len(k)
	}
	return matches >= need
}
