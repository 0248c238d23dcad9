package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civiclab/veritas/internal/config"
)

func TestFactoryKnownTypes(t *testing.T) {
	ctx := context.Background()

	p, err := New(ctx, config.ProviderConfig{Type: "openai", Model: "gpt-4o-mini", APIKey: "k"})
	assert.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = New(ctx, config.ProviderConfig{Name: "claude-fast", Type: "anthropic", Model: "claude-3-5-haiku-latest", APIKey: "k"})
	assert.NoError(t, err)
	assert.Equal(t, "claude-fast", p.Name())

	p, err = New(ctx, config.ProviderConfig{Type: "ollama", Model: "llama3", BaseURL: "http://localhost:11434"})
	assert.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
}

func TestFactoryUnsupportedType(t *testing.T) {
	_, err := New(context.Background(), config.ProviderConfig{Type: "watson"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider type")
}

// TestFromConfigsFailsBoot: one bad block fails the whole set instead of
// shrinking the consensus pool.
func TestFromConfigsFailsBoot(t *testing.T) {
	_, err := FromConfigs(context.Background(), []config.ProviderConfig{
		{Type: "openai", Model: "gpt-4o-mini", APIKey: "k"},
		{Type: "watson"},
	})

	assert.Error(t, err)
}
