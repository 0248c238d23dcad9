package provider

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini verifies claims through Google's generative API.
type Gemini struct {
	client *genai.Client
	name   string
	model  string
}

func NewGemini(ctx context.Context, name, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{
		client: client,
		name:   name,
		model:  model,
	}, nil
}

func (p *Gemini) Name() string {
	return p.name
}

func (p *Gemini) Verify(ctx context.Context, req Request) (*Response, error) {
	m := p.client.GenerativeModel(p.model)
	resp, err := m.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response candidates or content")
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type")
	}

	out, err := parseResponse(string(txt))
	if err != nil {
		return nil, err
	}
	if resp.UsageMetadata != nil {
		out.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}
