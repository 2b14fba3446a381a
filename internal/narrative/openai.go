package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/config"
	"github.com/fyrsmithlabs/briefd/internal/gather"
)

const defaultOpenAIModel = openai.GPT4oMini

const systemPrompt = `You are an executive assistant writing a meeting prep briefing.
You receive a JSON bundle of pre-filtered meeting context: classified emails and
chat messages, extracted action items, commitments, blockers, open questions,
team health notes, key metrics, and document summaries.

Write a concise markdown briefing for the meeting owner. Lead with what they
must do or decide. Group related threads. Do not invent facts that are not in
the bundle. If external attendees are flagged, note that sensitive material was
withheld and keep the tone suitable for sharing.`

// OpenAIGenerator renders narrative prose briefings through the OpenAI chat
// API. It degrades to an error at call time rather than retrying; the caller
// decides whether to fall back to the template.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator creates an OpenAIGenerator from config. The returned
// generator is not Available when the API key is empty.
func NewOpenAIGenerator(cfg config.NarrativeConfig) *OpenAIGenerator {
	g := &OpenAIGenerator{model: cfg.Model}
	if g.model == "" {
		g.model = defaultOpenAIModel
	}
	if cfg.APIKey == "" {
		return g
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	g.client = openai.NewClientWithConfig(clientCfg)
	return g
}

// Name implements Generator.
func (g *OpenAIGenerator) Name() string { return "openai" }

// Available implements Generator.
func (g *OpenAIGenerator) Available() bool { return g.client != nil }

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, meeting gather.Meeting, fc *briefing.FilteredContext) (*PrepDocument, error) {
	if g.client == nil {
		return nil, fmt.Errorf("openai generator not configured")
	}
	if fc == nil {
		return nil, fmt.Errorf("filtered context cannot be nil")
	}

	payload, err := json.Marshal(struct {
		Meeting gather.Meeting            `json:"meeting"`
		Context *briefing.FilteredContext `json:"context"`
	}{meeting, fc})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal context bundle: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &PrepDocument{
		MeetingID:   meeting.ID,
		Title:       meeting.Title,
		Markdown:    resp.Choices[0].Message.Content,
		Generator:   g.Name(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
