package relevance

import (
	"regexp"
	"strings"
)

// Detector keyword lists. Kept as data so they can be tuned and tested
// independently of the classification algorithm. All matching is done
// against lower-cased text.

// healthKeywords signal illness, fatigue, or availability concerns.
var healthKeywords = []string{
	"sick", "ill", "not feeling well", "under the weather",
	"doctor", "appointment", "medical", "health issue",
	"back pain", "migraine", "headache", "tired", "exhausted",
	"mental health", "stress", "burned out", "burnout",
	"taking time off", "pto", "personal day", "family emergency",
}

// blockerKeywords signal blocked work or dependencies.
var blockerKeywords = []string{
	"blocked", "blocker", "blocking", "stuck", "waiting on",
	"dependency", "depends on", "can't proceed", "need approval",
	"delayed", "hold", "on hold", "postponed", "issue with",
	"problem with", "failing", "broken", "down", "outage",
}

// commitmentKeywords signal promises and deadlines.
var commitmentKeywords = []string{
	"i will", "i'll", "i promise", "committed to", "by friday",
	"by monday", "by end of", "deadline", "due date", "deliver",
	"ship", "complete", "finish", "send you", "get back to you",
	"follow up", "action item", "todo", "to do", "assigned to me",
}

// socialKeywords indicate non-work chatter.
var socialKeywords = []string{
	"weekend", "holiday", "vacation", "party", "birthday",
	"lunch", "coffee", "happy hour", "how are you", "how's it going",
	"congratulations", "congrats", "thanks for", "thank you for",
	"great job", "awesome", "nice work", "well done",
}

// workKeywords indicate work content. Any single hit prevents the
// purely-social exclusion regardless of how many social keywords matched.
var workKeywords = []string{
	"project", "deadline", "task", "work", "meeting", "review",
	"code", "bug", "feature", "release", "deploy", "sprint",
	"ticket", "issue", "pr", "pull request", "commit",
}

// sensitiveKeywords mark confidential/HR/legal content that must be
// redacted from briefings for external-attendee meetings.
var sensitiveKeywords = []string{
	"confidential", "internal only", "do not share", "private",
	"salary", "compensation", "performance review", "pip",
	"termination", "layoff", "restructuring", "acquisition",
	"legal", "lawsuit", "complaint", "hr issue", "investigation",
	"between us", "off the record", "don't tell", "secret",
}

// Pattern-based detectors.

var documentReferencePatterns = compilePatterns([]string{
	`see the (doc|document|spreadsheet|slides|deck|file)`,
	`attached (is|are|the)`,
	`check out the`,
	`i've shared`,
	`link to the`,
	`google doc`,
	`confluence`,
	`notion page`,
	`\.pdf|\.docx|\.xlsx|\.pptx`,
})

var actionItemPatterns = compilePatterns([]string{
	`action item`,
	`todo:`,
	`to-do:`,
	`follow up on`,
	`need to`,
	`please (do|complete|finish|review|check)`,
	`by (monday|tuesday|wednesday|thursday|friday|eod|eow)`,
})

var stressPatterns = compilePatterns([]string{
	`stressed`, `overwhelmed`, `too much`, `overloaded`,
	`bandwidth`, `capacity`, `spread thin`, `behind on`,
	`catching up`, `falling behind`, `concerned about`,
})

var questionPatterns = compilePatterns([]string{
	`\?\s*$`,
	`@you`,
	`did you`,
	`can you`,
	`could you`,
	`would you`,
	`thoughts\?`,
	`opinion\?`,
	`feedback\?`,
})

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

func anyPattern(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// containsAny reports whether any keyword appears as a substring of the
// lower-cased text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// SensitiveText reports whether text matches the confidentiality keyword
// list. The same test is applied to documents (filename plus content).
func SensitiveText(text string) bool {
	return containsAny(strings.ToLower(text), sensitiveKeywords)
}

// purelySocial reports whether lower-cased text is social chatter with zero
// work indicators. The work count must be exactly zero: a single work
// keyword keeps an item in scope no matter how social it otherwise reads.
func purelySocial(text string) bool {
	socialCount := countMatches(text, socialKeywords)
	workCount := countMatches(text, workKeywords)
	return socialCount > workCount && workCount == 0
}

// HealthKeywords exposes the health keyword list for snippet extraction.
func HealthKeywords() []string {
	return healthKeywords
}
