// Package assistant wires diff collection, prompt building, generation and
// validation into the commit and pr flows.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/roivaz/commit-assistant/internal/assistant/llm"
	"github.com/roivaz/commit-assistant/internal/assistant/validate"
	"github.com/roivaz/commit-assistant/internal/config"
)

// PRTemplate is the configured pull request shape: a title format with
// {type}/{scope}/{description} placeholders and an ordered section list.
type PRTemplate struct {
	TitleFormat string
	Sections    []string
}

// Config is the immutable per-invocation configuration snapshot. It is
// assembled once from the merged viper state and passed by parameter; no
// component reads ambient configuration after this point.
type Config struct {
	Provider    llm.Config
	Commit      validate.Rules
	PR          PRTemplate
	SimplifyAt  int // token threshold above which the diff is simplified
	ContextMax  int // token budget for the diff section of the prompt
	MaxAttempts int // generate/validate attempts before giving up
	GitHubToken string
}

// LoadConfig builds the typed snapshot from the merged configuration.
func LoadConfig() (Config, error) {
	timeout, err := parseDuration(config.LLMCallTimeout(), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid llm_call_timeout: %w", err)
	}

	cfg := Config{
		Provider: llm.Config{
			Provider:    config.ProviderName(),
			Model:       config.ProviderModel(),
			BaseURL:     config.ProviderBaseURL(),
			Temperature: config.Temperature(),
			MaxTokens:   config.MaxTokens(),
			CallTimeout: timeout,
			MaxRetries:  config.LLMMaxRetries(),
		},
		Commit: validate.Rules{
			Types:           config.CommitTypes(),
			MaxHeaderLength: config.MaxHeaderLength(),
			MaxBodyLength:   config.MaxBodyLength(),
		},
		PR: PRTemplate{
			TitleFormat: config.PRTitleFormat(),
			Sections:    config.PRSections(),
		},
		SimplifyAt:  config.SimplifyTokens(),
		ContextMax:  config.ContextTokens(),
		MaxAttempts: config.MaxAttempts(),
		GitHubToken: config.GitHubToken(),
	}

	if len(cfg.Commit.Types) == 0 {
		return Config{}, fmt.Errorf("commit.types must not be empty")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if len(cfg.PR.Sections) == 0 {
		return Config{}, fmt.Errorf("pr.template.sections must not be empty")
	}
	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}
