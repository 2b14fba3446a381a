package relevance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fyrsmithlabs/briefd/internal/gather"
)

// Config tunes the classifier's recency behavior.
type Config struct {
	// RecencyWindowDays is the maximum age for the tier-3 recency rule.
	RecencyWindowDays int
	// MaxAgeDays is the age past which tier-2/3 items are downgraded to
	// exclude. Tier-1 items are never downgraded on age.
	MaxAgeDays int
}

// DefaultConfig returns the standard recency tuning.
func DefaultConfig() Config {
	return Config{
		RecencyWindowDays: 7,
		MaxAgeDays:        14,
	}
}

// Classifier assigns a relevance tier, score, and category flags to raw
// items. Topic keywords are derived once from the meeting title at
// construction; classification itself is a pure function of the item and
// the evaluation time.
type Classifier struct {
	keywords TopicKeywords
	cfg      Config
}

// NewClassifier builds a classifier anchored on the meeting title.
func NewClassifier(meetingTitle string, cfg Config) *Classifier {
	if cfg.RecencyWindowDays == 0 {
		cfg.RecencyWindowDays = 7
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 14
	}
	return &Classifier{
		keywords: ExtractTopicKeywords(meetingTitle),
		cfg:      cfg,
	}
}

// Keywords returns the derived topic keyword set.
func (c *Classifier) Keywords() TopicKeywords {
	return c.keywords
}

// itemView is the detector-facing view of one item.
type itemView struct {
	text        string // lower-cased subject+body or message text
	attachments int
	isChat      bool
	directMsg   bool
}

// rule couples one detector with the tier, score, reason, and flag it
// proposes. Rules are evaluated independently; they never short-circuit
// each other.
type rule struct {
	name     string
	tier     Tier
	score    float64
	flag     Flag
	chatOnly bool
	match    func(c *Classifier, v itemView) bool
	reason   func(v itemView) string
}

func staticReason(s string) func(itemView) string {
	return func(itemView) string { return s }
}

var rules = []rule{
	{
		name: "topic_match", tier: TierCritical, score: 0.9,
		match:  func(c *Classifier, v itemView) bool { return c.keywords.Match(v.text) },
		reason: staticReason("Directly mentions meeting topic"),
	},
	{
		name: "attachments", tier: TierCritical, score: 0.85,
		match: func(_ *Classifier, v itemView) bool { return v.attachments > 0 },
		reason: func(v itemView) string {
			if v.isChat {
				return fmt.Sprintf("Shared %d file(s)", v.attachments)
			}
			return fmt.Sprintf("Has %d attachment(s)", v.attachments)
		},
	},
	{
		name: "document_reference", tier: TierCritical, score: 0.8,
		match:  func(_ *Classifier, v itemView) bool { return anyPattern(documentReferencePatterns, v.text) },
		reason: staticReason("References shared document"),
	},
	{
		name: "action_items", tier: TierCritical, score: 0.85, flag: FlagActionItem,
		match:  func(_ *Classifier, v itemView) bool { return anyPattern(actionItemPatterns, v.text) },
		reason: staticReason("Contains action items"),
	},
	{
		name: "health", tier: TierDynamics, score: 0.75, flag: FlagHealth,
		match:  func(_ *Classifier, v itemView) bool { return containsAny(v.text, healthKeywords) },
		reason: staticReason("Mentions health/availability"),
	},
	{
		name: "blocker", tier: TierDynamics, score: 0.8, flag: FlagBlocker,
		match:  func(_ *Classifier, v itemView) bool { return containsAny(v.text, blockerKeywords) },
		reason: staticReason("Mentions blocker/dependency"),
	},
	{
		name: "commitment", tier: TierDynamics, score: 0.75, flag: FlagCommitment,
		match:  func(_ *Classifier, v itemView) bool { return containsAny(v.text, commitmentKeywords) },
		reason: staticReason("Contains commitment/promise"),
	},
	{
		name: "question", tier: TierDynamics, score: 0.7, flag: FlagQuestion,
		match:  func(_ *Classifier, v itemView) bool { return anyPattern(questionPatterns, v.text) },
		reason: staticReason("Contains unanswered question"),
	},
	{
		name: "stress", tier: TierDynamics, score: 0.7, flag: FlagStress, chatOnly: true,
		match:  func(_ *Classifier, v itemView) bool { return anyPattern(stressPatterns, v.text) },
		reason: staticReason("Mentions stress/workload concern"),
	},
}

// ClassifyEmail analyzes one email. now is the evaluation clock, passed
// explicitly so classification is deterministic.
func (c *Classifier) ClassifyEmail(e gather.Email, now time.Time) Analysis {
	v := itemView{
		text:        strings.ToLower(e.Subject + " " + e.BodyText),
		attachments: len(e.Attachments),
	}
	return c.classify(v, daysOld(e.Date, now))
}

// ClassifyMessage analyzes one chat message. Malformed timestamps are
// treated as age zero rather than an error.
func (c *Classifier) ClassifyMessage(m gather.ChatMessage, now time.Time) Analysis {
	v := itemView{
		text:        strings.ToLower(m.Text),
		attachments: len(m.Files),
		isChat:      true,
		directMsg:   m.ChannelType == gather.ChannelDM,
	}

	days := 0
	if t, ok := m.Time(); ok {
		days = daysOld(t, now)
	}
	return c.classify(v, days)
}

// classify evaluates every rule independently, then reduces: tier is the
// minimum (most urgent) triggered tier, score the maximum proposed value.
func (c *Classifier) classify(v itemView, daysOld int) Analysis {
	a := Analysis{Tier: TierExclude}

	for _, r := range rules {
		if r.chatOnly && !v.isChat {
			continue
		}
		if !r.match(c, v) {
			continue
		}
		if r.tier < a.Tier {
			a.Tier = r.tier
		}
		if r.score > a.Score {
			a.Score = r.score
		}
		a.Reasons = append(a.Reasons, r.reason(v))
		if r.flag != "" {
			a.Flags = append(a.Flags, r.flag)
		}
	}

	// Direct messages carry more weight and are inherently sensitive.
	if v.directMsg {
		a.Score = math.Min(a.Score+0.1, 1.0)
		a.Reasons = append(a.Reasons, "Direct message")
	}

	// Recent items with no triggered rule still surface unless purely
	// social. Score decays with age.
	if a.Tier == TierExclude && daysOld <= c.cfg.RecencyWindowDays && !purelySocial(v.text) {
		a.Tier = TierGeneral
		if s := 0.5 - 0.05*float64(daysOld); s > a.Score {
			a.Score = s
		}
		a.Reasons = append(a.Reasons, fmt.Sprintf("Recent work discussion (%d days ago)", daysOld))
	}

	a.Sensitive = containsAny(v.text, sensitiveKeywords) || v.directMsg

	// Stale tier-2/3 items are excluded; tier 1 survives any age.
	if daysOld > c.cfg.MaxAgeDays && a.Tier > TierCritical {
		a.Tier = TierExclude
		a.Reasons = append(a.Reasons, fmt.Sprintf("Too old (>%d days)", c.cfg.MaxAgeDays))
	}

	return a
}

// daysOld returns whole days between t and now. Zero times and future
// timestamps count as age zero.
func daysOld(t, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
