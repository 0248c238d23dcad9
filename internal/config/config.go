package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type StoreConfig struct {
	Backend  string         `toml:"backend"` // memory | memgraph
	Memgraph MemgraphConfig `toml:"memgraph"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type QueueConfig struct {
	Backend string      `toml:"backend"` // memory | redis
	Redis   RedisConfig `toml:"redis"`
}

type SplitterConfig struct {
	Mode              string `toml:"mode"` // internal | external
	URL               string `toml:"url"`
	Token             string `toml:"token"`
	TimeoutMs         int    `toml:"timeout_ms"`
	LongFormThreshold int    `toml:"long_form_threshold"`
	CooldownMs        int    `toml:"cooldown_ms"`
	CacheTTLMs        int    `toml:"cache_ttl_ms"`
}

type TriageConfig struct {
	// HotTopics overrides the built-in watchlist patterns when non-empty.
	HotTopics []string `toml:"hot_topics"`
}

type VerifyConfig struct {
	Workers           int     `toml:"workers"`
	Fanout            int     `toml:"fanout"`
	ProviderTimeoutMs int     `toml:"provider_timeout_ms"`
	RatePerSecond     float64 `toml:"rate_per_second"`
	Burst             int     `toml:"burst"`
}

type ProviderConfig struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"` // openai | anthropic | gemini | ollama
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type Config struct {
	Server    ServerConfig     `toml:"server"`
	Store     StoreConfig      `toml:"store"`
	Queue     QueueConfig      `toml:"queue"`
	Splitter  SplitterConfig   `toml:"splitter"`
	Triage    TriageConfig     `toml:"triage"`
	Verify    VerifyConfig     `toml:"verify"`
	Providers []ProviderConfig `toml:"providers"`
}

// Default is the single-process development setup: everything in memory, no
// external splitter, no providers.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{Backend: "memory"},
		Queue:  QueueConfig{Backend: "memory"},
		Splitter: SplitterConfig{
			Mode:              "internal",
			TimeoutMs:         3000,
			LongFormThreshold: 1200,
			CooldownMs:        15000,
			CacheTTLMs:        300000,
		},
		Verify: VerifyConfig{
			Workers:           2,
			Fanout:            3,
			ProviderTimeoutMs: 20000,
			RatePerSecond:     5,
			Burst:             5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}
