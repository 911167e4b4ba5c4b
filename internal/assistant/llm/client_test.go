package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/roivaz/commit-assistant/internal/logging"
)

type fakeModel struct {
	errs  []error
	text  string
	calls int
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.text}}}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return f.text, nil
}

func newTestClient(model llms.Model, retries int) *client {
	return &client{
		model: model,
		cfg:   Config{MaxRetries: retries, CallTimeout: time.Minute},
		log:   logging.Discard(),
	}
}

func TestGenerateReturnsTrimmedText(t *testing.T) {
	c := newTestClient(&fakeModel{text: "  feat: add thing \n"}, 0)
	got, err := c.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "feat: add thing" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	c := newTestClient(&fakeModel{text: "   "}, 2)
	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGenerateRetriesTransientFailure(t *testing.T) {
	model := &fakeModel{errs: []error{errors.New("429 too many requests")}, text: "feat: ok"}
	c := newTestClient(model, 2)
	got, err := c.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "feat: ok" || model.calls != 2 {
		t.Fatalf("expected one retry, got %d calls, %q", model.calls, got)
	}
}

func TestGenerateFatalFailureSurfacesImmediately(t *testing.T) {
	model := &fakeModel{errs: []error{errors.New("401 invalid api key"), nil}, text: "feat: ok"}
	c := newTestClient(model, 2)
	_, err := c.Generate(context.Background(), "p")
	if err == nil {
		t.Fatalf("expected error")
	}
	if model.calls != 1 {
		t.Fatalf("non-transient failure must not retry, got %d calls", model.calls)
	}
}

func TestNewMissingAPIKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	_, err := New(Config{Provider: "deepseek", Model: "deepseek-chat"}, logging.Discard())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Env != "DEEPSEEK_API_KEY" {
		t.Fatalf("unexpected env name %q", authErr.Env)
	}
}

func TestTransientClassification(t *testing.T) {
	cases := map[string]bool{
		"rate limit exceeded":          true,
		"429 too many requests":        true,
		"dial tcp: connection refused": true,
		"502 bad gateway":              true,
		"401 unauthorized":             false,
		"invalid request":              false,
	}
	for msg, want := range cases {
		if got := transient(errors.New(msg)); got != want {
			t.Fatalf("transient(%q) = %v, want %v", msg, got, want)
		}
	}
}
