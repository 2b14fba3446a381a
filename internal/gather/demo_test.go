package gather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSourceGather(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	source := DemoSource{Now: now}

	meeting := source.DemoMeeting()
	assert.Equal(t, "Q4 Planning Review", meeting.Title)
	assert.False(t, meeting.HasExternalAttendees())

	pool, err := source.Gather(context.Background(), meeting)
	require.NoError(t, err)

	assert.Len(t, pool.Emails, 4)
	assert.Len(t, pool.Messages, 4)
	assert.Len(t, pool.Documents, 1)
	assert.Equal(t, now, pool.GatheredAt)

	// Every demo timestamp must be parseable so classifier recency behaves.
	for _, m := range pool.Messages {
		_, ok := m.Time()
		assert.True(t, ok, "message timestamp should parse: %q", m.Timestamp)
	}

	// One message is a DM so sensitivity paths are exercised.
	var dms int
	for _, m := range pool.Messages {
		if m.ChannelType == ChannelDM {
			dms++
		}
	}
	assert.Equal(t, 1, dms)
}
