package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = "9090"

[splitter]
mode = "external"
url = "https://splitter.internal/v1/split"

[[providers]]
name = "openai"
type = "openai"
model = "gpt-4o-mini"
api_key = "k"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "external", cfg.Splitter.Mode)
	assert.Equal(t, "https://splitter.internal/v1/split", cfg.Splitter.URL)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1200, cfg.Splitter.LongFormThreshold)
	assert.Equal(t, 2, cfg.Verify.Workers)
	assert.Len(t, cfg.Providers, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "memory", cfg.Queue.Backend)
	assert.Equal(t, "internal", cfg.Splitter.Mode)
	assert.Empty(t, cfg.Providers)
}
