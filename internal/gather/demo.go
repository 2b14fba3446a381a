package gather

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fyrsmithlabs/briefd/internal/document"
)

// DemoSource produces a canned pool so the engine can be exercised without
// provider credentials. Item ages are relative to the clock so the recency
// rules behave the same on every run.
type DemoSource struct {
	// Now overrides the clock; zero means time.Now.
	Now time.Time
}

// DemoMeeting returns the meeting the demo pool is built around.
func (d DemoSource) DemoMeeting() Meeting {
	return Meeting{
		ID:        "demo-meeting-1",
		Title:     "Q4 Planning Review",
		StartTime: d.now().Add(2 * time.Hour),
		Attendees: []Attendee{
			{Email: "sarah.chen@company.com", Name: "Sarah Chen"},
			{Email: "mike.johnson@company.com", Name: "Mike Johnson"},
			{Email: "lisa.wang@company.com", Name: "Lisa Wang"},
		},
	}
}

// Gather implements Source.
func (d DemoSource) Gather(_ context.Context, meeting Meeting) (*Pool, error) {
	now := d.now()

	emails := []Email{
		{
			ID:      "email-1",
			Subject: "Re: Q4 Planning - Initial Thoughts",
			Sender:  "sarah.chen@company.com",
			Date:    now.AddDate(0, 0, -2),
			BodyText: "Thanks for sending over the preliminary numbers. I've reviewed the " +
				"budget allocations and have a few suggestions for the engineering team's " +
				"requests. Revenue came in at $2.4M, down 8% from last quarter. " +
				"Attached is the updated planning spreadsheet.",
			Attachments: []Attachment{
				{Filename: "q4-planning.xlsx", MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
			},
		},
		{
			ID:      "email-2",
			Subject: "Follow-up: Last Week's Discussion",
			Sender:  "mike.johnson@company.com",
			Date:    now.AddDate(0, 0, -3),
			BodyText: "As discussed, I'll send the analysis over by Friday. We're still " +
				"waiting on the vendor for the final pricing, so the procurement piece " +
				"is blocked until they respond.",
		},
		{
			ID:      "email-3",
			Subject: "Quick Question",
			Sender:  "lisa.wang@company.com",
			Date:    now.AddDate(0, 0, -4),
			BodyText: "Hey, quick question - do you have the latest version of the roadmap " +
				"doc? I want to make sure I'm referencing the right priorities. Thoughts?",
		},
		{
			ID:       "email-4",
			Subject:  "Office Holiday Party",
			Sender:   "events@company.com",
			Date:     now.AddDate(0, 0, -20),
			BodyText: "Join us for the holiday party next month! Food, drinks, and music.",
		},
	}

	messages := []ChatMessage{
		{
			Text:        "Reminder: we need to finalize the Q4 budget by EOD Friday. Please share your team's requests.",
			User:        "finance-bot",
			Channel:     "leadership",
			ChannelType: ChannelPublic,
			Timestamp:   epoch(now.AddDate(0, 0, -1)),
		},
		{
			Text:        "I'm feeling pretty overwhelmed with the release this week, not sure I have the bandwidth for the planning deck too.",
			User:        "tom.anderson",
			Channel:     "dm-tom",
			ChannelType: ChannelDM,
			Timestamp:   epoch(now.AddDate(0, 0, -2)),
		},
		{
			Text:        "congrats on the launch! see you at happy hour",
			User:        "emma.davis",
			Channel:     "general",
			ChannelType: ChannelPublic,
			Timestamp:   epoch(now.AddDate(0, 0, -3)),
		},
		{
			Text:        "Action item: please review the Q4 planning spreadsheet before Thursday's session.",
			User:        "sarah.chen",
			Channel:     "planning",
			ChannelType: ChannelPublic,
			Timestamp:   epoch(now.AddDate(0, 0, -1)),
		},
	}

	documents := []document.ExtractedDocument{
		{
			Filename:   "q4-forecast.md",
			SourceType: "drive",
			Success:    true,
			Text: "# Q4 Forecast\n\n" +
				"## Revenue\n" +
				"Projected revenue is $3.1M, up 12% over Q3. Marketing spend holds at $400K.\n\n" +
				"## Risks\n" +
				"- Vendor pricing still open\n" +
				"- Hiring plan assumes 3 thousand applicants\n\n" +
				"[Table]\nRegion | Target\nEMEA | $1.2M\nAMER | $1.9M\n",
		},
	}

	return &Pool{
		Meeting:    meeting,
		Emails:     emails,
		Messages:   messages,
		Documents:  documents,
		GatheredAt: now,
	}, nil
}

func (d DemoSource) now() time.Time {
	if !d.Now.IsZero() {
		return d.Now
	}
	return time.Now().UTC()
}

func epoch(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10) + fmt.Sprintf(".%06d", 0)
}
