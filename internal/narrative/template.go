package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/gather"
)

// TemplateGenerator renders a deterministic markdown briefing with no
// external dependencies. It is the default provider and the fallback when
// the LLM provider is unavailable.
type TemplateGenerator struct{}

var _ Generator = (*TemplateGenerator)(nil)

// NewTemplateGenerator creates a TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Name implements Generator.
func (g *TemplateGenerator) Name() string { return "template" }

// Available implements Generator. The template generator is always ready.
func (g *TemplateGenerator) Available() bool { return true }

// Generate implements Generator.
func (g *TemplateGenerator) Generate(_ context.Context, meeting gather.Meeting, fc *briefing.FilteredContext) (*PrepDocument, error) {
	if fc == nil {
		return nil, fmt.Errorf("filtered context cannot be nil")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Meeting Prep: %s\n\n", meeting.Title)
	if !meeting.StartTime.IsZero() {
		fmt.Fprintf(&b, "**When:** %s\n\n", meeting.StartTime.Format("Monday, Jan 2 2006 15:04 MST"))
	}

	if len(meeting.Attendees) > 0 {
		names := make([]string, 0, len(meeting.Attendees))
		for _, a := range meeting.Attendees {
			name := a.DisplayName()
			if a.External {
				name += " (external)"
			}
			names = append(names, name)
		}
		fmt.Fprintf(&b, "**Attendees:** %s\n\n", strings.Join(names, ", "))
	}

	if meeting.HasExternalAttendees() {
		b.WriteString("> External attendees present. Internal-only and sensitive material has been withheld from this briefing.\n\n")
	}

	writeList(&b, "Action Items", fc.ActionItems)
	writeList(&b, "Open Commitments", fc.Commitments)
	writeList(&b, "Blockers", fc.Blockers)
	writeList(&b, "Unanswered Questions", fc.UnansweredQuestions)
	writeList(&b, "Team Health", fc.HealthMentions)
	writeList(&b, "Key Metrics", fc.KeyMetrics)

	if len(fc.DocumentSummaries) > 0 {
		b.WriteString("## Documents\n\n")
		for _, d := range fc.DocumentSummaries {
			fmt.Fprintf(&b, "### %s\n\n", d.Filename)
			fmt.Fprintf(&b, "%d words", d.WordCount)
			if d.HasTables {
				b.WriteString(", contains tables")
			}
			b.WriteString("\n\n")
			if len(d.Headings) > 0 {
				fmt.Fprintf(&b, "Sections: %s\n\n", strings.Join(d.Headings, "; "))
			}
			if len(d.KeyMetrics) > 0 {
				fmt.Fprintf(&b, "Figures: %s\n\n", strings.Join(d.KeyMetrics, ", "))
			}
			if d.Preview != "" {
				fmt.Fprintf(&b, "> %s\n\n", d.Preview)
			}
		}
	}

	if len(fc.Emails) > 0 {
		b.WriteString("## Relevant Email\n\n")
		for _, e := range fc.Emails {
			fmt.Fprintf(&b, "- **%s** from %s (tier %d: %s)\n",
				e.Email.Subject, e.Email.Sender, int(e.Tier), strings.Join(e.Reasons, "; "))
		}
		b.WriteString("\n")
	}

	if len(fc.Messages) > 0 {
		b.WriteString("## Relevant Chat\n\n")
		for _, m := range fc.Messages {
			fmt.Fprintf(&b, "- **#%s** %s (tier %d: %s)\n",
				m.Message.Channel, firstLine(m.Message.Text), int(m.Tier), strings.Join(m.Reasons, "; "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n_%d items analyzed, %d included, %d excluded._\n",
		fc.TotalItemsAnalyzed, fc.ItemsIncluded, fc.ItemsExcluded)

	return &PrepDocument{
		MeetingID:   meeting.ID,
		Title:       meeting.Title,
		Markdown:    b.String(),
		Generator:   g.Name(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
