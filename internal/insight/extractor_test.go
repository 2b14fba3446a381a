package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/briefd/internal/relevance"
)

func analysisWith(flags ...relevance.Flag) relevance.Analysis {
	return relevance.Analysis{Tier: relevance.TierDynamics, Flags: flags}
}

func TestExtract_ActionItem(t *testing.T) {
	x := NewExtractor()

	text := "Morning all.\nAction: review the Q4 planning spreadsheet before Thursday.\nThanks!"
	ins := x.Extract(text, "Chat #planning", analysisWith(relevance.FlagActionItem))

	require.Len(t, ins.ActionItems, 1)
	assert.Equal(t, "Action: review the Q4 planning spreadsheet before Thursday. (from Chat #planning)", ins.ActionItems[0])
}

func TestExtract_Commitment(t *testing.T) {
	x := NewExtractor()

	text := "Quick update. I'll send the analysis over by Friday. Let me know if sooner helps."
	ins := x.Extract(text, "Email: Follow-up", analysisWith(relevance.FlagCommitment))

	require.Len(t, ins.Commitments, 1)
	assert.Equal(t, "I'll send the analysis over by Friday. (from Email: Follow-up)", ins.Commitments[0])
}

func TestExtract_CommitmentDeadlineFallback(t *testing.T) {
	x := NewExtractor()

	text := "The numbers are due by friday at the latest."
	ins := x.Extract(text, "Email: Numbers", analysisWith(relevance.FlagCommitment))

	require.Len(t, ins.Commitments, 1)
	assert.Contains(t, ins.Commitments[0], "by friday")
}

func TestExtract_Blocker(t *testing.T) {
	x := NewExtractor()

	text := "Procurement is blocked until the vendor responds. Everything else is on track."
	ins := x.Extract(text, "Email: Status", analysisWith(relevance.FlagBlocker))

	require.Len(t, ins.Blockers, 1)
	assert.Equal(t, "blocked until the vendor responds. (from Email: Status)", ins.Blockers[0])
}

func TestExtract_Question(t *testing.T) {
	x := NewExtractor()

	text := "Hey. Did you get the latest roadmap doc? I want the right priorities."
	ins := x.Extract(text, "Email: Quick Question", analysisWith(relevance.FlagQuestion))

	require.Len(t, ins.Questions, 1)
	assert.Equal(t, "Did you get the latest roadmap doc? (from Email: Quick Question)", ins.Questions[0])
}

func TestExtract_QuestionByCue(t *testing.T) {
	x := NewExtractor()

	text := "Can you take a look at the deck before tomorrow."
	ins := x.Extract(text, "Chat #dm-alex", analysisWith(relevance.FlagQuestion))

	require.Len(t, ins.Questions, 1)
	assert.Equal(t, "Can you take a look at the deck before tomorrow? (from Chat #dm-alex)", ins.Questions[0])
}

func TestExtract_HealthWindow(t *testing.T) {
	x := NewExtractor()

	text := "Heads up, I'm feeling pretty sick today so I may miss the afternoon session."
	ins := x.Extract(text, "Chat #dm-tom", analysisWith(relevance.FlagHealth))

	require.Len(t, ins.HealthMentions, 1)
	assert.Contains(t, ins.HealthMentions[0], "sick today")
	assert.Contains(t, ins.HealthMentions[0], "(from Chat #dm-tom)")
}

func TestExtract_FlagWithoutSubPatternYieldsNothing(t *testing.T) {
	x := NewExtractor()

	// The classifier may flag a commitment on keywords the snippet patterns
	// don't cover; extraction stays silent rather than guessing.
	text := "We are committed to the plan"
	ins := x.Extract(text, "Email: Plan", analysisWith(relevance.FlagCommitment))

	assert.Empty(t, ins.Commitments)
	assert.True(t, ins.Empty())
}

func TestExtract_NoFlagsNoInsights(t *testing.T) {
	x := NewExtractor()

	text := "Action: do the thing. I'll handle it by friday. Blocked on nothing?"
	ins := x.Extract(text, "Email: Busy", relevance.Analysis{Tier: relevance.TierGeneral})

	assert.True(t, ins.Empty(), "insights are flag-driven, not text-driven")
}
