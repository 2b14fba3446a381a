package document

import "regexp"

// maxMetricsPerFamily caps how many matches each metric regex family
// contributes.
const maxMetricsPerFamily = 10

var (
	currencyPattern  = regexp.MustCompile(`(?i)[$€£¥]\s*[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|M|B|K))?`)
	percentPattern   = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	magnitudePattern = regexp.MustCompile(`(?i)(?:\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*(?:million|billion|thousand|M|B|K)`)

	headingPattern = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	bulletPattern  = regexp.MustCompile(`(?m)^[\s]*[-•*]\s+`)
	tablePattern   = regexp.MustCompile(`\[Table\]`)
	pagePattern    = regexp.MustCompile(`---\s*Page\s+\d+\s*---`)
)

// Structure is the structural summary of a document's text.
type Structure struct {
	Headings     []string `json:"headings"`
	BulletPoints int      `json:"bullet_points"`
	Tables       int      `json:"tables"`
	Pages        int      `json:"pages"`
}

// KeyMetrics extracts currency amounts, percentages, and large magnitude
// numbers from document text. Each regex family contributes at most ten
// matches; the combined result is deduplicated preserving first-seen order.
func KeyMetrics(text string) []string {
	var metrics []string
	for _, re := range []*regexp.Regexp{currencyPattern, percentPattern, magnitudePattern} {
		matches := re.FindAllString(text, maxMetricsPerFamily)
		metrics = append(metrics, matches...)
	}

	seen := make(map[string]struct{}, len(metrics))
	out := metrics[:0]
	for _, m := range metrics {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// ExtractStructure derives headings, bullet and table counts, and an
// estimated page count from document text. Documents without page-break
// markers count as a single page.
func ExtractStructure(text string) Structure {
	s := Structure{Pages: 1}

	for _, m := range headingPattern.FindAllStringSubmatch(text, 20) {
		s.Headings = append(s.Headings, m[1])
	}
	s.BulletPoints = len(bulletPattern.FindAllString(text, -1))
	s.Tables = len(tablePattern.FindAllString(text, -1))

	if pages := len(pagePattern.FindAllString(text, -1)); pages > 0 {
		s.Pages = pages
	}

	return s
}
