// Package narrative renders a filtered context bundle into a meeting prep
// document. Two generators are available: a deterministic markdown template
// and an LLM-backed generator for narrative prose.
package narrative

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/config"
	"github.com/fyrsmithlabs/briefd/internal/gather"
)

// PrepDocument is one rendered briefing.
type PrepDocument struct {
	MeetingID   string    `json:"meeting_id"`
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	Generator   string    `json:"generator"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator renders a prep document from an analyzed context bundle.
type Generator interface {
	// Generate renders the prep document.
	Generate(ctx context.Context, meeting gather.Meeting, fc *briefing.FilteredContext) (*PrepDocument, error)
	// Available reports whether the generator can run with its current
	// configuration.
	Available() bool
	// Name identifies the generator in output and logs.
	Name() string
}

// New builds the generator selected by config. An openai provider without an
// API key falls back to the template generator with a warning rather than
// failing startup.
func New(cfg config.NarrativeConfig, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case "template", "":
		return NewTemplateGenerator(), nil
	case "openai":
		g := NewOpenAIGenerator(cfg)
		if !g.Available() {
			logger.Warn("openai narrative provider configured without api key, falling back to template")
			return NewTemplateGenerator(), nil
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown narrative provider: %q", cfg.Provider)
	}
}
