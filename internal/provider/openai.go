package provider

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAI verifies claims through a chat-completion endpoint. It also serves
// any OpenAI-compatible server (Ollama, vLLM) via BaseURL.
type OpenAI struct {
	client *openai.Client
	name   string
	model  string
}

func NewOpenAI(name, apiKey, model, baseURL string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		name:   name,
		model:  model,
	}
}

func (p *OpenAI) Name() string {
	return p.name
}

func (p *OpenAI) Verify(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	out, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	out.TokensUsed = resp.Usage.TotalTokens
	return out, nil
}
