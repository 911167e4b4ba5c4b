// Package diff obtains unified diffs from the repository and reduces them to
// a size the model context can hold.
package diff

import (
	"context"
	"errors"
	"strings"

	"github.com/roivaz/commit-assistant/internal/logging"
)

// ErrNoChanges signals that there is nothing to summarize: no staged or
// unstaged changes in commit mode, no divergence between refs in PR mode.
var ErrNoChanges = errors.New("no changes detected")

// Git is the subset of repository operations the collector needs.
type Git interface {
	StagedDiff(ctx context.Context) (string, error)
	WorktreeDiff(ctx context.Context) (string, error)
	DiffBetween(ctx context.Context, base, head string) (string, error)
	StagedNumstat(ctx context.Context) (string, error)
	WorktreeNumstat(ctx context.Context) (string, error)
	NumstatBetween(ctx context.Context, base, head string) (string, error)
}

type Collector struct {
	git Git
	log logging.Logger
}

func NewCollector(git Git, log logging.Logger) *Collector {
	return &Collector{git: git, log: log}
}

// Staged returns the staged diff, falling back to the unstaged worktree diff
// when nothing is staged. Returns ErrNoChanges when both are empty.
func (c *Collector) Staged(ctx context.Context) (string, error) {
	out, err := c.git.StagedDiff(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) != "" {
		return out, nil
	}
	c.log.Debug("no staged changes, checking worktree")
	out, err = c.git.WorktreeDiff(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrNoChanges
	}
	return out, nil
}

// Between returns the diff a pull request from head into base would carry.
func (c *Collector) Between(ctx context.Context, base, head string) (string, error) {
	out, err := c.git.DiffBetween(ctx, base, head)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrNoChanges
	}
	return out, nil
}

// StagedSummary returns the simplified form of the staged (or worktree) diff.
func (c *Collector) StagedSummary(ctx context.Context) (string, error) {
	out, err := c.git.StagedNumstat(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		if out, err = c.git.WorktreeNumstat(ctx); err != nil {
			return "", err
		}
	}
	stats := ParseNumstat(out)
	if len(stats) == 0 {
		return "", ErrNoChanges
	}
	return Summarize(stats), nil
}

// BetweenSummary returns the simplified form of the base...head diff.
func (c *Collector) BetweenSummary(ctx context.Context, base, head string) (string, error) {
	out, err := c.git.NumstatBetween(ctx, base, head)
	if err != nil {
		return "", err
	}
	stats := ParseNumstat(out)
	if len(stats) == 0 {
		return "", ErrNoChanges
	}
	return Summarize(stats), nil
}
