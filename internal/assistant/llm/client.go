// Package llm sends prompts to a remote text-generation provider and returns
// raw completion text. Providers are selected by name behind the Generator
// contract, so adding one never touches the prompt builder or validator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/roivaz/commit-assistant/internal/config"
	"github.com/roivaz/commit-assistant/internal/logging"
)

// ErrEmptyCompletion reports a provider response carrying no usable text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// AuthError reports a missing API key. Raised before any network call so no
// spend occurs.
type AuthError struct {
	Env string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s not found in environment; set it in .env or the environment", e.Env)
}

// Generator is the single contract the rest of the pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	CallTimeout time.Duration
	MaxRetries  int
}

type client struct {
	model llms.Model
	cfg   Config
	log   logging.Logger
}

// New builds a Generator for the configured provider. Everything that speaks
// the OpenAI chat API (openai, deepseek, ...) goes through the openai client
// with the provider's base URL; ollama talks to a local server and needs no
// key.
func New(cfg Config, log logging.Logger) (Generator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model name is required")
	}

	var model llms.Model
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		opts := []ollama.Option{
			ollama.WithModel(cfg.Model),
			ollama.WithKeepAlive("5m"),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		m, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		model = m
	default:
		keyEnv := config.APIKeyEnv(cfg.Provider)
		key := os.Getenv(keyEnv)
		if key == "" {
			return nil, &AuthError{Env: keyEnv}
		}
		opts := []openai.Option{
			openai.WithModel(cfg.Model),
			openai.WithToken(key),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
		}
		model = m
	}

	return &client{model: model, cfg: cfg, log: log}, nil
}

// Generate sends the prompt and returns the completion text, retrying
// transient provider failures with backoff up to MaxRetries extra attempts.
func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.Info("retrying generation", "attempt", attempt+1, "backoff", backoff.String())
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		callCtx, cancel := c.withTimeout(ctx)
		start := time.Now()
		resp, err := c.model.GenerateContent(callCtx, messages,
			llms.WithTemperature(c.cfg.Temperature),
			llms.WithMaxTokens(c.cfg.MaxTokens),
		)
		cancel()
		if err != nil {
			err = c.annotateError(err)
			if transient(err) && attempt < c.cfg.MaxRetries {
				c.log.Error(err, "transient generation failure", "elapsed", time.Since(start).String())
				lastErr = err
				continue
			}
			return "", err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
			return "", ErrEmptyCompletion
		}
		c.log.Debug("completion received", "elapsed", time.Since(start).String())
		return strings.TrimSpace(resp.Choices[0].Content), nil
	}
	return "", lastErr
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.CallTimeout)
}

func (c *client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llm call timed out after %s: %w", c.cfg.CallTimeout, err)
	}
	return err
}

// transient reports whether an error is worth an automatic retry: rate
// limits, timeouts, transport hiccups. Anything else surfaces immediately.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"rate limit", "429", "too many requests", "connection refused", "connection reset", "timeout", "502", "503"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
