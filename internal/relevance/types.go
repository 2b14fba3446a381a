// Package relevance classifies raw communication items into relevance tiers
// for meeting briefings. Detection is keyword and pattern matching over
// data-driven rule tables; there is no language model involved.
package relevance

// Tier is the ordinal relevance bucket assigned to an item. Lower is more
// urgent; TierExclude items never reach the briefing output.
type Tier int

const (
	TierCritical Tier = 1 // directly meeting-related, always include
	TierDynamics Tier = 2 // relationship/meeting dynamics
	TierGeneral  Tier = 3 // recent work-related
	TierExclude  Tier = 4 // social, unrelated, or stale
)

func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "critical"
	case TierDynamics:
		return "dynamics"
	case TierGeneral:
		return "general"
	case TierExclude:
		return "exclude"
	default:
		return "unknown"
	}
}

// Flag is a category tag set during classification; flags drive insight
// extraction downstream.
type Flag string

const (
	FlagActionItem Flag = "action_item"
	FlagCommitment Flag = "commitment"
	FlagBlocker    Flag = "blocker"
	FlagQuestion   Flag = "question"
	FlagHealth     Flag = "health"
	FlagStress     Flag = "stress"
)

// Analysis is the classification result for one item. Created once by the
// classifier and never mutated afterwards.
type Analysis struct {
	Tier      Tier     `json:"tier"`
	Score     float64  `json:"relevance_score"`
	Reasons   []string `json:"reasons,omitempty"`
	Flags     []Flag   `json:"flags,omitempty"`
	Sensitive bool     `json:"is_sensitive"`
}

// HasFlag reports whether f was set during classification.
func (a Analysis) HasFlag(f Flag) bool {
	for _, have := range a.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// Included reports whether the item survives tier filtering.
func (a Analysis) Included() bool {
	return a.Tier != TierExclude
}
