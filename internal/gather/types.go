// Package gather defines the raw communication pool consumed by the briefing
// engine: the meeting descriptor, emails, chat messages, and extracted
// documents collected for one analysis run.
//
// Provider adapters (calendar, mail, chat, drive) implement the Source
// interface and own data acquisition. The engine only reads the pool and
// never mutates it.
package gather

import (
	"context"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/fyrsmithlabs/briefd/internal/document"
)

// Attendee is one meeting participant.
type Attendee struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	External bool   `json:"external,omitempty"`
}

// DisplayName returns the attendee name, falling back to the mailbox part
// of the email address.
func (a Attendee) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	for i := 0; i < len(a.Email); i++ {
		if a.Email[i] == '@' {
			return a.Email[:i]
		}
	}
	return a.Email
}

// Meeting describes the meeting an analysis run prepares for.
// Immutable per run.
type Meeting struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	StartTime time.Time  `json:"start_time"`
	Attendees []Attendee `json:"attendees"`
}

// ExternalAttendees returns the email addresses of attendees flagged
// external.
func (m Meeting) ExternalAttendees() []string {
	var out []string
	for _, a := range m.Attendees {
		if a.External {
			out = append(out, a.Email)
		}
	}
	return out
}

// HasExternalAttendees reports whether any attendee is external. Sensitive
// items are redacted from the briefing when this is true.
func (m Meeting) HasExternalAttendees() bool {
	for _, a := range m.Attendees {
		if a.External {
			return true
		}
	}
	return false
}

// Attachment is a file attached to an email. ExtractedText is populated by
// the document extraction collaborator when the format is supported.
type Attachment struct {
	Filename      string `json:"filename"`
	MimeType      string `json:"mime_type,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// Email is one raw email item.
type Email struct {
	ID          string       `json:"id"`
	ThreadID    string       `json:"thread_id,omitempty"`
	Subject     string       `json:"subject"`
	Sender      string       `json:"sender"`
	Recipients  []string     `json:"recipients,omitempty"`
	Date        time.Time    `json:"date"`
	BodyText    string       `json:"body_text"`
	Snippet     string       `json:"snippet,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ChannelType tags where a chat message was posted.
type ChannelType string

const (
	ChannelDM      ChannelType = "dm"
	ChannelPublic  ChannelType = "channel"
	ChannelGroup   ChannelType = "group"
	ChannelUnknown ChannelType = ""
)

// ChatFile is a file shared alongside a chat message.
type ChatFile struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// ChatMessage is one raw chat item. Timestamp is the provider's numeric
// epoch string (seconds, optionally fractional); parse failures are
// tolerated downstream.
type ChatMessage struct {
	Text        string      `json:"text"`
	User        string      `json:"user,omitempty"`
	Channel     string      `json:"channel"`
	ChannelType ChannelType `json:"channel_type"`
	Timestamp   string      `json:"timestamp"`
	Files       []ChatFile  `json:"files,omitempty"`
}

// Time parses the epoch timestamp. ok is false when the timestamp is
// malformed; callers treat such messages as maximally recent.
func (m ChatMessage) Time() (t time.Time, ok bool) {
	secs, err := strconv.ParseFloat(m.Timestamp, 64)
	if err != nil {
		return time.Time{}, false
	}
	sec := int64(secs)
	nsec := int64((secs - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC(), true
}

// Pool is the complete raw context gathered for one meeting.
type Pool struct {
	Meeting    Meeting                      `json:"meeting"`
	Emails     []Email                      `json:"emails"`
	Messages   []ChatMessage                `json:"messages"`
	Documents  []document.ExtractedDocument `json:"documents,omitempty"`
	GatheredAt time.Time                    `json:"gathered_at,omitempty"`
}

// ExtractedDocuments returns every document in the pool: drive documents
// plus documents reconstructed from email attachments and chat files that
// carry extracted text.
func (p *Pool) ExtractedDocuments() []document.ExtractedDocument {
	docs := make([]document.ExtractedDocument, 0, len(p.Documents))

	for _, e := range p.Emails {
		for _, att := range e.Attachments {
			if att.ExtractedText == "" {
				continue
			}
			docs = append(docs, document.ExtractedDocument{
				Filename:   att.Filename,
				Text:       att.ExtractedText,
				SourceType: "email_attachment",
				Metadata:   map[string]string{"email_subject": e.Subject},
				Success:    true,
			})
		}
	}

	for _, m := range p.Messages {
		for _, f := range m.Files {
			if f.ExtractedText == "" {
				continue
			}
			docs = append(docs, document.ExtractedDocument{
				Filename:   f.Name,
				Text:       f.ExtractedText,
				SourceType: "chat_file",
				Metadata:   map[string]string{"channel": m.Channel},
				Success:    true,
			})
		}
	}

	docs = append(docs, p.Documents...)
	return docs
}

// Source gathers a raw pool for a meeting. Implementations wrap provider
// APIs; DemoSource supplies canned data.
type Source interface {
	Gather(ctx context.Context, meeting Meeting) (*Pool, error)
}

// ParseDate leniently parses a provider date header. The zero time is
// returned when the value is unparseable; the classifier treats zero dates
// as age zero.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
