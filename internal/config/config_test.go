package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	Init(nil)
}

func TestDefaults(t *testing.T) {
	resetViper(t)
	if ProviderName() != "deepseek" {
		t.Fatalf("unexpected default provider %q", ProviderName())
	}
	if MaxHeaderLength() != 50 {
		t.Fatalf("unexpected default max_header_length %d", MaxHeaderLength())
	}
	if got := CommitTypes(); len(got) == 0 || got[0] != "feat" {
		t.Fatalf("unexpected default commit types %v", got)
	}
	if MaxAttempts() != 3 {
		t.Fatalf("unexpected default max_attempts %d", MaxAttempts())
	}
}

func TestLoadFileOverridesKeyByKey(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "caa.yaml")
	content := `commit:
  types: [feat, fix]
  max_header_length: 72
provider:
  name: ollama
  model: qwen2.5-coder
  base_url: http://localhost:11434
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := LoadFile(path); err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := CommitTypes(); len(got) != 2 {
		t.Fatalf("override must replace commit types, got %v", got)
	}
	if MaxHeaderLength() != 72 {
		t.Fatalf("override must replace max_header_length, got %d", MaxHeaderLength())
	}
	if ProviderName() != "ollama" {
		t.Fatalf("override must replace provider, got %q", ProviderName())
	}
	// Keys absent from the file keep their defaults.
	if MaxBodyLength() != 72 {
		t.Fatalf("absent keys must fall back to defaults, got %d", MaxBodyLength())
	}
	if PRTitleFormat() != "{type}({scope}): {description}" {
		t.Fatalf("absent pr template must keep default, got %q", PRTitleFormat())
	}
}

func TestLoadFileMissingExplicitPath(t *testing.T) {
	resetViper(t)
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing config file must error")
	}
}

func TestLoadFileNoImplicitFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	if err := LoadFile(""); err != nil {
		t.Fatalf("absent implicit config must be a no-op, got %v", err)
	}
}

func TestAPIKeyEnv(t *testing.T) {
	if got := APIKeyEnv("deepseek"); got != "DEEPSEEK_API_KEY" {
		t.Fatalf("unexpected env name %q", got)
	}
	if got := APIKeyEnv(" openai "); got != "OPENAI_API_KEY" {
		t.Fatalf("unexpected env name %q", got)
	}
}
