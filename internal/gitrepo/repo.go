// Package gitrepo shells out to the git binary for the handful of plumbing
// operations the assistant needs: diffs, numstats, commit and remote lookup.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

type RepoConfig struct {
	Path   string
	Remote string // default: origin
}

type Repo struct {
	cfg    RepoConfig
	runner Runner
}

func New(cfg RepoConfig) *Repo {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Path == "" {
		cfg.Path = "."
	}
	return &Repo{cfg: cfg, runner: Runner{Timeout: 2 * time.Minute}}
}

type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitTimeoutError(args, r.Timeout, stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		return "", formatGitContextError(args, ctx.Err(), stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

func formatGitTimeoutError(args []string, timeout time.Duration, stderr string) error {
	return formatGitError(args, fmt.Errorf("command timed out after %s", timeout), stderr)
}

func formatGitContextError(args []string, cause error, stderr string) error {
	if cause == nil {
		cause = errors.New("context canceled")
	}
	return formatGitError(args, cause, stderr)
}

// Run is a helper to execute arbitrary git subcommands in the repo path.
func (r *Repo) Run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Git(ctx, r.cfg.Path, args...)
}

// diffBaseArgs keeps diff output stable regardless of user git config.
var diffBaseArgs = []string{"diff", "--no-color", "--no-ext-diff"}

func (r *Repo) diff(ctx context.Context, extra ...string) (string, error) {
	return r.Run(ctx, append(append([]string{}, diffBaseArgs...), extra...)...)
}

// StagedDiff returns the unified diff of the index against HEAD.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	return r.diff(ctx, "--staged")
}

// WorktreeDiff returns the unified diff of unstaged changes.
func (r *Repo) WorktreeDiff(ctx context.Context) (string, error) {
	return r.diff(ctx)
}

// DiffBetween returns the diff of head against the merge base with base,
// matching what a pull request between the two refs would contain.
func (r *Repo) DiffBetween(ctx context.Context, base, head string) (string, error) {
	return r.diff(ctx, fmt.Sprintf("%s...%s", base, head))
}

// StagedNumstat returns `git diff --staged --numstat` output.
func (r *Repo) StagedNumstat(ctx context.Context) (string, error) {
	return r.diff(ctx, "--staged", "--numstat")
}

// WorktreeNumstat returns `git diff --numstat` output for unstaged changes.
func (r *Repo) WorktreeNumstat(ctx context.Context) (string, error) {
	return r.diff(ctx, "--numstat")
}

// NumstatBetween returns numstat output for the base...head range.
func (r *Repo) NumstatBetween(ctx context.Context, base, head string) (string, error) {
	return r.diff(ctx, "--numstat", fmt.Sprintf("%s...%s", base, head))
}

// Commit records the staged changes with the given message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.Run(ctx, "commit", "-m", message)
	return err
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the fetch URL of the configured remote.
func (r *Repo) RemoteURL(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "remote", "get-url", r.cfg.Remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
