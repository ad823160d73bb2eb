// Package config provides configuration types and helpers for kevinify.
package config

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format   string         `mapstructure:"format"`
	Verbose  bool           `mapstructure:"verbose"`
	Debug    bool           `mapstructure:"debug"`
	Color    string         `mapstructure:"color"`
	Compress CompressConfig `mapstructure:"compress"`
	Expand   ExpandConfig   `mapstructure:"expand"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Redact   RedactConfig   `mapstructure:"redact"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// CompressConfig mirrors kevinify.CompressOptions.
type CompressConfig struct {
	RemoveStopwords     bool `mapstructure:"remove_stopwords"`
	PreserveEntities    bool `mapstructure:"preserve_entities"`
	KeepCase            bool `mapstructure:"keep_case"`
	ShortenLongWords    bool `mapstructure:"shorten_long_words"`
	MinLengthToShorten  int  `mapstructure:"min_length_to_shorten"`
	AggressiveAmpersand bool `mapstructure:"aggressive_ampersand"`
	PhraseAbbreviations bool `mapstructure:"phrase_abbreviations"`
}

// ExpandConfig mirrors kevinify.ExpandOptions.
type ExpandConfig struct {
	PreserveEntities bool   `mapstructure:"preserve_entities"`
	Collision        string `mapstructure:"collision"` // "last" or "first"
}

// RulesConfig customizes the word tables shared by both directions.
type RulesConfig struct {
	// ReplaceDefaults drops the built-in tables instead of extending them.
	ReplaceDefaults bool              `mapstructure:"replace_defaults"`
	Abbreviations   map[string]string `mapstructure:"abbreviations"`
	Stopwords       []string          `mapstructure:"stopwords"`
	ProtectWords    []string          `mapstructure:"protect_words"`
}

// RedactConfig controls secret redaction before compression.
type RedactConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Patterns []string `mapstructure:"patterns"` // empty means the default set
}

// LLMConfig holds configuration for the send command's LLM providers.
type LLMConfig struct {
	// Provider selects which LLM to use: "ollama" or "openai"
	Provider string `mapstructure:"provider"`

	// Global settings applied to all providers
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	Ollama OllamaConfig `mapstructure:"ollama"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string `mapstructure:"host"` // empty means OLLAMA_HOST or localhost
	Model string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`  // Optional: read from OPENAI_API_KEY if empty
	Model   string `mapstructure:"model"`    // e.g., "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional: for compatible endpoints
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := kevinify.DefaultCompressOptions()
	e := kevinify.DefaultExpandOptions()

	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("debug", false)
	v.SetDefault("color", "auto")

	v.SetDefault("compress.remove_stopwords", d.RemoveStopwords)
	v.SetDefault("compress.preserve_entities", d.PreserveEntities)
	v.SetDefault("compress.keep_case", d.KeepCase)
	v.SetDefault("compress.shorten_long_words", d.ShortenLongWords)
	v.SetDefault("compress.min_length_to_shorten", d.MinLengthToShorten)
	v.SetDefault("compress.aggressive_ampersand", d.AggressiveAmpersand)
	v.SetDefault("compress.phrase_abbreviations", d.PhraseAbbreviations)

	v.SetDefault("expand.preserve_entities", e.PreserveEntities)
	v.SetDefault("expand.collision", e.Collision.String())

	v.SetDefault("rules.replace_defaults", false)

	v.SetDefault("redact.enabled", false)
	v.SetDefault("redact.patterns", []string{})

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.temperature", 0)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.ollama.model", "llama3.2")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// CompressOptions builds the options for kevinify.Compress.
func (c *Config) CompressOptions() kevinify.CompressOptions {
	return kevinify.CompressOptions{
		RemoveStopwords:     c.Compress.RemoveStopwords,
		PreserveEntities:    c.Compress.PreserveEntities,
		KeepCase:            c.Compress.KeepCase,
		ShortenLongWords:    c.Compress.ShortenLongWords,
		MinLengthToShorten:  c.Compress.MinLengthToShorten,
		AggressiveAmpersand: c.Compress.AggressiveAmpersand,
		PhraseAbbreviations: c.Compress.PhraseAbbreviations,
		Abbreviations:       c.Rules.abbreviations(),
		Stopwords:           c.Rules.wordSet(c.Rules.Stopwords, kevinify.DefaultStopwords),
		ProtectWords:        c.Rules.wordSet(c.Rules.ProtectWords, kevinify.DefaultProtectWords),
	}
}

// ExpandOptions builds the options for kevinify.Expand.
func (c *Config) ExpandOptions() kevinify.ExpandOptions {
	return kevinify.ExpandOptions{
		Abbreviations:    c.Rules.abbreviations(),
		PreserveEntities: c.Expand.PreserveEntities,
		Collision:        kevinify.ParseCollisionPolicy(c.Expand.Collision),
	}
}

// abbreviations returns nil when nothing is customized so the core falls
// back to its shared table.
func (r RulesConfig) abbreviations() *kevinify.Abbreviations {
	if r.ReplaceDefaults {
		return kevinify.NewAbbreviations().Merge(r.Abbreviations)
	}
	if len(r.Abbreviations) == 0 {
		return nil
	}
	return kevinify.DefaultAbbreviations().Merge(r.Abbreviations)
}

func (r RulesConfig) wordSet(extra []string, defaults func() kevinify.WordSet) kevinify.WordSet {
	words := make([]string, 0, len(extra))
	for _, w := range extra {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}

	if r.ReplaceDefaults {
		return kevinify.NewWordSet(words...)
	}
	if len(words) == 0 {
		return nil
	}
	return defaults().Union(words...)
}
