package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/roivaz/commit-assistant/internal/assistant/diff"
	"github.com/roivaz/commit-assistant/internal/assistant/llm"
	"github.com/roivaz/commit-assistant/internal/assistant/prompt"
	"github.com/roivaz/commit-assistant/internal/assistant/validate"
	"github.com/roivaz/commit-assistant/internal/logging"
)

// ErrAborted reports that the user declined the generated message. Terminal,
// no side effect beyond a non-zero exit.
var ErrAborted = errors.New("aborted by user")

// GitCommitter records a commit with the accepted message.
type GitCommitter interface {
	Commit(ctx context.Context, message string) error
}

// CommitOptions shape a commit run.
type CommitOptions struct {
	Scope      string
	Brief      bool
	Emoji      bool
	Simplified bool
	Force      bool
	Apply      bool
}

// PROptions shape a pr run.
type PROptions struct {
	Base       string
	Head       string
	TitleHint  string
	Context    string
	Simplified bool
	Force      bool
}

// Draft is a generated message plus any conventions it violates. Used by
// surfaces that report instead of deciding interactively.
type Draft struct {
	Message    string
	Violations []string
}

// Engine drives one Collect -> Prompt -> Generate -> Validate ->
// Accept/Retry/Abort pass. It holds no state across runs; each call is a
// self-contained pipeline.
type Engine struct {
	cfg       Config
	collector *diff.Collector
	git       GitCommitter
	gen       llm.Generator
	decide    DecideFunc
	log       logging.Logger
	out       io.Writer
}

func NewEngine(cfg Config, collector *diff.Collector, git GitCommitter, gen llm.Generator, decide DecideFunc, log logging.Logger, out io.Writer) *Engine {
	return &Engine{cfg: cfg, collector: collector, git: git, gen: gen, decide: decide, log: log, out: out}
}

// RunCommit generates, validates and accepts a commit message for the staged
// changes, returning the accepted message.
func (e *Engine) RunCommit(ctx context.Context, opts CommitOptions) (string, error) {
	diffText, simplified, err := e.collectCommitDiff(ctx, opts.Simplified)
	if err != nil {
		return "", err
	}

	base := prompt.Commit(diffText, e.cfg.Commit.Types, e.cfg.Commit.MaxHeaderLength, e.cfg.Commit.MaxBodyLength, prompt.Options{
		Scope:      opts.Scope,
		Brief:      opts.Brief,
		Emoji:      opts.Emoji,
		Simplified: simplified,
	})

	message, err := e.generateLoop(ctx, base, opts.Force, func(m string) validate.Result {
		return validate.Commit(m, e.cfg.Commit)
	})
	if err != nil {
		return "", err
	}

	if opts.Apply {
		if err := e.git.Commit(ctx, message); err != nil {
			return "", err
		}
		e.log.Info("commit recorded")
	}
	fmt.Fprintln(e.out, message)
	return message, nil
}

// RunPR generates, validates and accepts a pull request description for the
// base...head range.
func (e *Engine) RunPR(ctx context.Context, opts PROptions) (PRSummary, error) {
	p, err := e.buildPRPrompt(ctx, opts)
	if err != nil {
		return PRSummary{}, err
	}

	completion, err := e.generateLoop(ctx, p, opts.Force, func(c string) validate.Result {
		summary := ParsePRSummary(c, e.cfg.PR.Sections)
		return validate.PRTitle(summary.Title, e.cfg.PR.TitleFormat, e.cfg.Commit.Types)
	})
	if err != nil {
		return PRSummary{}, err
	}

	summary := ParsePRSummary(completion, e.cfg.PR.Sections)
	fmt.Fprint(e.out, summary.Render())
	return summary, nil
}

// DraftCommit is the single-shot variant: one generation, no decision loop,
// no side effects. Violations are returned as data.
func (e *Engine) DraftCommit(ctx context.Context, opts CommitOptions) (Draft, error) {
	diffText, simplified, err := e.collectCommitDiff(ctx, opts.Simplified)
	if err != nil {
		return Draft{}, err
	}
	p := prompt.Commit(diffText, e.cfg.Commit.Types, e.cfg.Commit.MaxHeaderLength, e.cfg.Commit.MaxBodyLength, prompt.Options{
		Scope:      opts.Scope,
		Brief:      opts.Brief,
		Emoji:      opts.Emoji,
		Simplified: simplified,
	})
	message, err := e.gen.Generate(ctx, p)
	if err != nil {
		return Draft{}, err
	}
	res := validate.Commit(message, e.cfg.Commit)
	return Draft{Message: message, Violations: res.Messages()}, nil
}

// DraftPR is the single-shot pull request variant.
func (e *Engine) DraftPR(ctx context.Context, opts PROptions) (Draft, error) {
	p, err := e.buildPRPrompt(ctx, opts)
	if err != nil {
		return Draft{}, err
	}
	completion, err := e.gen.Generate(ctx, p)
	if err != nil {
		return Draft{}, err
	}
	summary := ParsePRSummary(completion, e.cfg.PR.Sections)
	res := validate.PRTitle(summary.Title, e.cfg.PR.TitleFormat, e.cfg.Commit.Types)
	return Draft{Message: summary.Render(), Violations: res.Messages()}, nil
}

// generateLoop runs Generate -> Validate up to MaxAttempts times, threading
// the decision function through validation failures and augmenting the
// prompt with the violations on retry.
func (e *Engine) generateLoop(ctx context.Context, basePrompt string, force bool, check func(string) validate.Result) (string, error) {
	p := basePrompt
	for attempt := 1; ; attempt++ {
		e.log.Debug("generating", "attempt", attempt)
		message, err := e.gen.Generate(ctx, p)
		if err != nil {
			return "", fmt.Errorf("generation failed: %w", err)
		}

		res := check(message)
		if res.OK() {
			return message, nil
		}
		if force {
			e.log.Info("validation failed, accepting anyway (--force)", "violations", len(res.Violations))
			return message, nil
		}

		decision, err := e.decide(message, res.Violations)
		if err != nil {
			return "", err
		}
		switch decision {
		case Accept:
			return message, nil
		case Abort:
			return "", ErrAborted
		case Retry:
			if attempt >= e.cfg.MaxAttempts {
				return "", fmt.Errorf("message still violates conventions after %d attempts: %v", attempt, res.Messages())
			}
			p = prompt.WithViolations(basePrompt, message, res.Messages())
		}
	}
}

func (e *Engine) collectCommitDiff(ctx context.Context, forceSimplified bool) (string, bool, error) {
	raw, err := e.collector.Staged(ctx)
	if err != nil {
		return "", false, err
	}
	if forceSimplified || e.tooLarge(raw) {
		summary, err := e.collector.StagedSummary(ctx)
		if err != nil {
			return "", false, err
		}
		return summary, true, nil
	}
	return diff.Fit(raw, e.cfg.ContextMax), false, nil
}

func (e *Engine) buildPRPrompt(ctx context.Context, opts PROptions) (string, error) {
	raw, err := e.collector.Between(ctx, opts.Base, opts.Head)
	if err != nil {
		return "", err
	}
	diffText := raw
	simplified := false
	if opts.Simplified || e.tooLarge(raw) {
		if diffText, err = e.collector.BetweenSummary(ctx, opts.Base, opts.Head); err != nil {
			return "", err
		}
		simplified = true
	} else {
		diffText = diff.Fit(raw, e.cfg.ContextMax)
	}
	return prompt.PR(diffText, e.cfg.Commit.Types, e.cfg.PR.TitleFormat, e.cfg.PR.Sections, opts.TitleHint, opts.Context, simplified), nil
}

func (e *Engine) tooLarge(raw string) bool {
	if e.cfg.SimplifyAt <= 0 {
		return false
	}
	if diff.EstimateTokens(raw) > e.cfg.SimplifyAt {
		e.log.Info("diff exceeds simplification threshold, using summary", "threshold", e.cfg.SimplifyAt)
		return true
	}
	return false
}
