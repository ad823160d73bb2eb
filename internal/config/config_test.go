package config

import (
	"strings"
	"testing"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/spf13/viper"
)

func loadYAML(t *testing.T, doc string) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if doc != "" {
		if err := v.ReadConfig(strings.NewReader(doc)); err != nil {
			t.Fatalf("ReadConfig() error = %v", err)
		}
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadYAML(t, "")

	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Ollama.Model != "llama3.2" {
		t.Errorf("LLM = %+v, want ollama/llama3.2", cfg.LLM)
	}

	got := cfg.CompressOptions()
	want := kevinify.DefaultCompressOptions()
	if got.RemoveStopwords != want.RemoveStopwords ||
		got.PreserveEntities != want.PreserveEntities ||
		got.KeepCase != want.KeepCase ||
		got.ShortenLongWords != want.ShortenLongWords ||
		got.MinLengthToShorten != want.MinLengthToShorten ||
		got.AggressiveAmpersand != want.AggressiveAmpersand ||
		got.PhraseAbbreviations != want.PhraseAbbreviations {
		t.Errorf("CompressOptions() = %+v, want %+v", got, want)
	}
	if got.Abbreviations != nil || got.Stopwords != nil || got.ProtectWords != nil {
		t.Error("uncustomized tables should be nil so the built-ins are used")
	}

	in := "Please send me the documentation about the new API features."
	if a, b := kevinify.Compress(in, &got), kevinify.Compress(in, nil); a != b {
		t.Errorf("Compress with loaded defaults = %q, want %q", a, b)
	}

	e := cfg.ExpandOptions()
	if !e.PreserveEntities || e.Collision != kevinify.LastWriteWins {
		t.Errorf("ExpandOptions() = %+v", e)
	}
}

func TestLoad_Rules(t *testing.T) {
	cfg := loadYAML(t, `
compress:
  keep_case: true
  min_length_to_shorten: 8
expand:
  collision: first
rules:
  abbreviations:
    kubernetes: k8s
  stopwords: [cluster]
  protect_words: [golang]
`)

	o := cfg.CompressOptions()
	if !o.KeepCase || o.MinLengthToShorten != 8 {
		t.Errorf("compress settings not applied: %+v", o)
	}
	if got, _ := o.Abbreviations.Lookup("kubernetes"); got != "k8s" {
		t.Errorf("custom abbreviation = %q, want k8s", got)
	}
	if got, _ := o.Abbreviations.Lookup("please"); got != "pls" {
		t.Errorf("built-in abbreviation lost: %q", got)
	}
	if !o.Stopwords.Has("cluster") || !o.Stopwords.Has("the") {
		t.Error("stopwords should extend the built-ins")
	}
	if !o.ProtectWords.Has("golang") || !o.ProtectWords.Has("api") {
		t.Error("protect words should extend the built-ins")
	}

	if got := kevinify.Compress("Kubernetes cluster", &o); got != "K8s" {
		t.Errorf("Compress() = %q, want %q", got, "K8s")
	}

	e := cfg.ExpandOptions()
	if e.Collision != kevinify.FirstWriteWins {
		t.Errorf("Collision = %v, want first", e.Collision)
	}
	if got := kevinify.Expand("k8s ur", &e); got != "kubernetes you're" {
		t.Errorf("Expand() = %q, want %q", got, "kubernetes you're")
	}
}

func TestLoad_ReplaceDefaults(t *testing.T) {
	cfg := loadYAML(t, `
rules:
  replace_defaults: true
  abbreviations:
    kubernetes: k8s
`)

	o := cfg.CompressOptions()
	if _, ok := o.Abbreviations.Lookup("please"); ok {
		t.Error("built-in abbreviations should be replaced")
	}
	if len(o.Stopwords) != 0 {
		t.Errorf("stopwords = %v, want empty", o.Stopwords.Words())
	}
	if got := kevinify.Compress("send the kubernetes docs", &o); got != "send the k8s docs" {
		t.Errorf("Compress() = %q, want %q", got, "send the k8s docs")
	}
}

func TestLoad_Redact(t *testing.T) {
	if cfg := loadYAML(t, ""); cfg.Redact.Enabled || len(cfg.Redact.Patterns) != 0 {
		t.Errorf("Redact defaults = %+v, want disabled with no patterns", cfg.Redact)
	}

	cfg := loadYAML(t, `
redact:
  enabled: true
  patterns: [jwt, aws_key]
`)
	if !cfg.Redact.Enabled {
		t.Error("Redact.Enabled = false, want true")
	}
	if len(cfg.Redact.Patterns) != 2 || cfg.Redact.Patterns[0] != "jwt" {
		t.Errorf("Redact.Patterns = %v", cfg.Redact.Patterns)
	}
}
