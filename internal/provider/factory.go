package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/civiclab/veritas/internal/config"
)

// New builds one provider from its configuration block.
func New(ctx context.Context, cfg config.ProviderConfig) (Provider, error) {
	name := cfg.Name
	if name == "" {
		name = cfg.Type
	}

	switch strings.ToLower(cfg.Type) {
	case "openai":
		return NewOpenAI(name, cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "anthropic", "claude":
		return NewAnthropic(name, cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGemini(ctx, name, cfg.APIKey, cfg.Model)

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; it ignores the key but the
		// client requires one.
		baseURL := strings.TrimRight(cfg.BaseURL, "/")
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAI(name, apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Type)
	}
}

// FromConfigs builds the full provider set; a single bad block fails boot
// rather than silently shrinking the consensus pool.
func FromConfigs(ctx context.Context, cfgs []config.ProviderConfig) ([]Provider, error) {
	providers := make([]Provider, 0, len(cfgs))
	for _, cfg := range cfgs {
		p, err := New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
