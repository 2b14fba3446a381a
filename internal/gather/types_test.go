package gather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/briefd/internal/document"
)

func TestAttendeeDisplayName(t *testing.T) {
	assert.Equal(t, "Sarah Chen", Attendee{Email: "sarah@co.com", Name: "Sarah Chen"}.DisplayName())
	assert.Equal(t, "sarah", Attendee{Email: "sarah@co.com"}.DisplayName())
	assert.Equal(t, "no-at-sign", Attendee{Email: "no-at-sign"}.DisplayName())
}

func TestMeetingExternalAttendees(t *testing.T) {
	m := Meeting{
		Attendees: []Attendee{
			{Email: "in@co.com"},
			{Email: "out@partner.com", External: true},
		},
	}

	assert.True(t, m.HasExternalAttendees())
	assert.Equal(t, []string{"out@partner.com"}, m.ExternalAttendees())

	internal := Meeting{Attendees: []Attendee{{Email: "in@co.com"}}}
	assert.False(t, internal.HasExternalAttendees())
	assert.Empty(t, internal.ExternalAttendees())
}

func TestChatMessageTime(t *testing.T) {
	msg := ChatMessage{Timestamp: "1700000000.123456"}
	ts, ok := msg.Time()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), ts.Unix())

	_, ok = ChatMessage{Timestamp: "yesterday"}.Time()
	assert.False(t, ok)

	_, ok = ChatMessage{}.Time()
	assert.False(t, ok)
}

func TestPoolExtractedDocuments(t *testing.T) {
	p := &Pool{
		Emails: []Email{
			{
				Subject: "Budget",
				Attachments: []Attachment{
					{Filename: "budget.xlsx", ExtractedText: "numbers"},
					{Filename: "raw.bin"}, // no extracted text, skipped
				},
			},
		},
		Messages: []ChatMessage{
			{
				Channel: "planning",
				Files: []ChatFile{
					{Name: "deck.txt", ExtractedText: "slides"},
				},
			},
		},
		Documents: []document.ExtractedDocument{
			{Filename: "forecast.md", Text: "forecast", SourceType: "drive", Success: true},
		},
	}

	docs := p.ExtractedDocuments()

	require.Len(t, docs, 3)
	assert.Equal(t, "budget.xlsx", docs[0].Filename)
	assert.Equal(t, "email_attachment", docs[0].SourceType)
	assert.Equal(t, "Budget", docs[0].Metadata["email_subject"])
	assert.Equal(t, "deck.txt", docs[1].Filename)
	assert.Equal(t, "chat_file", docs[1].SourceType)
	assert.Equal(t, "planning", docs[1].Metadata["channel"])
	assert.Equal(t, "forecast.md", docs[2].Filename)
}

func TestParseDate(t *testing.T) {
	parsed := ParseDate("2025-11-10T12:00:00Z")
	assert.Equal(t, time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC), parsed)

	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not a date").IsZero())
}
