// Package prompt builds the instruction strings sent to the model. Builders
// are pure functions of their inputs; identical inputs yield byte-identical
// prompts, which keeps them testable without a network call.
package prompt

import (
	"strconv"
	"strings"
)

// Options are the per-invocation knobs that shape the commit prompt.
type Options struct {
	Scope      string
	Brief      bool
	Emoji      bool
	Simplified bool
}

// Commit builds the commit message prompt for the given diff (full or
// simplified) and configured conventions.
func Commit(diff string, types []string, maxHeader, maxBody int, opts Options) string {
	scope := "not specified"
	var extras []string
	if opts.Scope != "" {
		scope = opts.Scope
		extras = append(extras, interpolate(extraScope, "ScopeName", opts.Scope))
	}
	if opts.Brief {
		extras = append(extras, extraBrief)
	}
	if opts.Emoji {
		extras = append(extras, extraEmoji)
	}
	extrasBlock := ""
	if len(extras) > 0 {
		extrasBlock = strings.Join(extras, "\n") + "\n"
	}

	return interpolate(commitTemplate,
		"MaxHeader", strconv.Itoa(maxHeader),
		"MaxBody", strconv.Itoa(maxBody),
		"Extras", extrasBlock,
		"Types", strings.Join(types, ", "),
		"Scope", scope,
		"DiffNote", diffNote(opts.Simplified),
		"Diff", diff,
	)
}

// PR builds the pull request prompt. titleHint and context are optional
// user-supplied overrides passed through verbatim.
func PR(diff string, types []string, titleFormat string, sections []string, titleHint, context string, simplified bool) string {
	return interpolate(prTemplate,
		"TitleFormat", titleFormat,
		"Types", strings.Join(types, ", "),
		"Sections", strings.Join(sections, ", "),
		"TitleHint", orNone(titleHint),
		"Context", orNone(context),
		"DiffNote", diffNote(simplified),
		"Diff", diff,
	)
}

// WithViolations augments a prompt with the rejected previous message and the
// rules it violated, for the retry pass.
func WithViolations(basePrompt, previous string, violations []string) string {
	var list strings.Builder
	for _, v := range violations {
		list.WriteString("- ")
		list.WriteString(v)
		list.WriteString("\n")
	}
	return interpolate(retryTemplate,
		"Prompt", basePrompt,
		"Previous", previous,
		"Violations", strings.TrimRight(list.String(), "\n"),
	)
}

func diffNote(simplified bool) string {
	if simplified {
		return simplifiedDiffNote
	}
	return ""
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

// interpolate fills {{.Key}} placeholders in a single left-to-right pass.
// Replacement values are never rescanned, so placeholder-looking text inside
// a diff or a previous completion passes through verbatim.
func interpolate(tmpl string, pairs ...string) string {
	repl := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		repl = append(repl, "{{."+pairs[i]+"}}", pairs[i+1])
	}
	return strings.NewReplacer(repl...).Replace(tmpl)
}
