package prompt

import (
	"strings"
	"testing"
)

func TestCommitIsPure(t *testing.T) {
	types := []string{"feat", "fix"}
	opts := Options{Scope: "cli", Brief: true, Emoji: true}
	first := Commit("diff body", types, 50, 72, opts)
	for i := 0; i < 5; i++ {
		if got := Commit("diff body", types, 50, 72, opts); got != first {
			t.Fatalf("identical inputs must produce byte-identical prompts")
		}
	}
}

func TestCommitDiffWithPlaceholderTokens(t *testing.T) {
	diff := "update templates: {{.Types}} and {{.Scope}} markers"
	types := []string{"feat", "fix"}
	first := Commit(diff, types, 50, 72, Options{})
	if !strings.Contains(first, diff) {
		t.Fatalf("diff must pass through verbatim, got:\n%s", first)
	}
	for i := 0; i < 200; i++ {
		if got := Commit(diff, types, 50, 72, Options{}); got != first {
			t.Fatalf("identical inputs must produce byte-identical prompts")
		}
	}
}

func TestWithViolationsPreviousWithPlaceholderTokens(t *testing.T) {
	base := Commit("d", []string{"feat"}, 50, 72, Options{})
	previous := "docs: mention {{.Prompt}} and {{.Violations}} syntax"
	got := WithViolations(base, previous, []string{"header too long"})
	if !strings.Contains(got, previous) {
		t.Fatalf("previous message must pass through verbatim, got:\n%s", got)
	}
}

func TestCommitContents(t *testing.T) {
	got := Commit("my diff", []string{"feat", "fix"}, 50, 72, Options{})
	for _, want := range []string{
		"Allowed types: feat, fix",
		"at most 50 characters",
		"Hard wrap body lines at 72 characters",
		"Scope: not specified",
		"my diff",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "{{.") {
		t.Fatalf("unresolved placeholder in prompt:\n%s", got)
	}
}

func TestCommitOptions(t *testing.T) {
	got := Commit("d", []string{"feat"}, 50, 72, Options{Scope: "api", Brief: true, Emoji: true})
	for _, want := range []string{
		`Use the scope "api" unless clearly inapplicable.`,
		"header line only",
		"exactly one emoji",
		"Scope: api",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestCommitSimplifiedNote(t *testing.T) {
	summary := "Changed files:\na.go +2/-0"
	got := Commit(summary, []string{"feat"}, 50, 72, Options{Simplified: true})
	if !strings.Contains(got, "summary: changed file paths") {
		t.Fatalf("simplified prompt must flag the summary form:\n%s", got)
	}
	if !strings.Contains(got, summary) {
		t.Fatalf("simplified prompt must carry the summary")
	}
}

func TestPRContents(t *testing.T) {
	got := PR("pr diff", []string{"feat", "fix"}, "{type}({scope}): {description}", []string{"Summary", "Testing"}, "", "extra notes", false)
	for _, want := range []string{
		"{type}({scope}): {description}",
		"Summary, Testing",
		"Title override: none",
		"Body context: extra notes",
		"pr diff",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("pr prompt missing %q:\n%s", want, got)
		}
	}
}

func TestWithViolations(t *testing.T) {
	base := Commit("d", []string{"feat"}, 50, 72, Options{})
	got := WithViolations(base, "bad: message", []string{"type \"bad\" is not allowed", "header too long"})
	if !strings.HasPrefix(got, base) {
		t.Fatalf("augmented prompt must start with the base prompt")
	}
	for _, want := range []string{"bad: message", "- type \"bad\" is not allowed", "- header too long"} {
		if !strings.Contains(got, want) {
			t.Fatalf("augmented prompt missing %q", want)
		}
	}
}
