package llm

import (
	"context"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/prompts"
)

// ChatMessage represents a generic chat turn in the prompt history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the behaviour required from a chat completion vendor.
type Client interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64) (string, error)
}

const layoutTemperature = 0.7

// TextProvider adapts a chat client into a fallback-chain provider that
// produces layout descriptions.
type TextProvider struct {
	name   string
	client Client
}

// NewTextProvider wraps the given client under the provider name used in
// diagnostics and configuration.
func NewTextProvider(name string, client Client) *TextProvider {
	return &TextProvider{name: name, client: client}
}

// Name identifies the provider in chain diagnostics.
func (p *TextProvider) Name() string { return p.name }

// Invoke builds the layout prompt, performs one completion call and parses
// the description out of the response.
func (p *TextProvider) Invoke(ctx context.Context, req design.Request) (string, error) {
	completion, err := p.client.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: prompts.SystemPrompt()},
		{Role: "user", Content: prompts.BuildLayoutPrompt(req)},
	}, layoutTemperature)
	if err != nil {
		return "", err
	}

	layout, err := prompts.ParseLayoutResponse(completion)
	if err != nil {
		return "", chain.Malformed(err)
	}
	return layout, nil
}
