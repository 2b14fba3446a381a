package narrative

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/config"
	"github.com/fyrsmithlabs/briefd/internal/gather"
)

func testMeeting() gather.Meeting {
	return gather.Meeting{
		ID:        "m-1",
		Title:     "Q4 Planning Review",
		StartTime: time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC),
		Attendees: []gather.Attendee{
			{Email: "sarah@co.com", Name: "Sarah Chen"},
			{Email: "guest@partner.com", External: true},
		},
	}
}

func testContext() *briefing.FilteredContext {
	return &briefing.FilteredContext{
		ActionItems: []string{"Action item: please review the deck (from Chat #planning)"},
		Blockers:    []string{"waiting on the vendor for pricing. (from Email: Follow-up)"},
		KeyMetrics:  []string{"$2.4M", "8%"},
		DocumentSummaries: []briefing.DocumentSummary{
			{
				Filename:  "q4-forecast.md",
				WordCount: 42,
				Headings:  []string{"Q4 Forecast", "Revenue"},
				HasTables: true,
				Preview:   "Projected revenue is up.",
			},
		},
		TotalItemsAnalyzed: 5,
		ItemsIncluded:      3,
		ItemsExcluded:      2,
	}
}

func TestTemplateGenerator_Generate(t *testing.T) {
	g := NewTemplateGenerator()
	require.True(t, g.Available())

	prep, err := g.Generate(context.Background(), testMeeting(), testContext())
	require.NoError(t, err)

	assert.Equal(t, "m-1", prep.MeetingID)
	assert.Equal(t, "template", prep.Generator)

	md := prep.Markdown
	assert.Contains(t, md, "# Meeting Prep: Q4 Planning Review")
	assert.Contains(t, md, "Sarah Chen")
	assert.Contains(t, md, "guest (external)")
	assert.Contains(t, md, "External attendees present")
	assert.Contains(t, md, "## Action Items")
	assert.Contains(t, md, "please review the deck")
	assert.Contains(t, md, "## Blockers")
	assert.Contains(t, md, "## Key Metrics")
	assert.Contains(t, md, "$2.4M")
	assert.Contains(t, md, "### q4-forecast.md")
	assert.Contains(t, md, "contains tables")
	assert.Contains(t, md, "5 items analyzed, 3 included, 2 excluded")
}

func TestTemplateGenerator_OmitsEmptySections(t *testing.T) {
	g := NewTemplateGenerator()

	prep, err := g.Generate(context.Background(), testMeeting(), &briefing.FilteredContext{})
	require.NoError(t, err)

	assert.NotContains(t, prep.Markdown, "## Action Items")
	assert.NotContains(t, prep.Markdown, "## Blockers")
	assert.NotContains(t, prep.Markdown, "## Documents")
}

func TestTemplateGenerator_NilContext(t *testing.T) {
	g := NewTemplateGenerator()

	_, err := g.Generate(context.Background(), testMeeting(), nil)
	assert.Error(t, err)
}

func TestNew_ProviderSelection(t *testing.T) {
	logger := zap.NewNop()

	g, err := New(config.NarrativeConfig{Provider: "template"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "template", g.Name())

	// openai without a key falls back to the template generator.
	g, err = New(config.NarrativeConfig{Provider: "openai"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "template", g.Name())

	g, err = New(config.NarrativeConfig{Provider: "openai", APIKey: "sk-test"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "openai", g.Name())

	_, err = New(config.NarrativeConfig{Provider: "mystery"}, logger)
	assert.Error(t, err)
}
