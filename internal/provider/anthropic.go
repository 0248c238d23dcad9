package provider

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const anthropicMaxTokens = 1000

// Anthropic verifies claims through the Messages API.
type Anthropic struct {
	client *anthropic.Client
	name   string
	model  string
}

func NewAnthropic(name, apiKey, model, baseURL string) *Anthropic {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(apiKey, opts...),
		name:   name,
		model:  model,
	}
}

func (p *Anthropic) Name() string {
	return p.name
}

func (p *Anthropic) Verify(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(p.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(buildPrompt(req)),
				},
			},
		},
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return nil, fmt.Errorf("no response content")
	}

	out, err := parseResponse(*resp.Content[0].Text)
	if err != nil {
		return nil, err
	}
	out.TokensUsed = resp.Usage.InputTokens + resp.Usage.OutputTokens
	return out, nil
}
