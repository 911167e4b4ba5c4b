// Package validate checks generated messages against the configured commit
// and pull request conventions. Rules are applied in order and every
// violation is collected, so the caller sees the full list at once.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule identifies which convention a violation belongs to.
type Rule string

const (
	RuleType         Rule = "type"
	RuleHeaderLength Rule = "header_length"
	RuleBodyLength   Rule = "body_length"
	RuleTitleFormat  Rule = "title_format"
)

type Violation struct {
	Rule    Rule
	Message string
}

// Result is the outcome of a validation pass. An empty violation list means
// the message passed.
type Result struct {
	Violations []Violation
}

func (r Result) OK() bool { return len(r.Violations) == 0 }

// Messages returns the violation texts, for prompts and user output.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Rules are the configured commit conventions. MaxBodyLength of 0 disables
// the body line check.
type Rules struct {
	Types           []string
	MaxHeaderLength int
	MaxBodyLength   int
}

// headerRegexp matches "type: description" and "type(scope): description".
var headerRegexp = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^)]+)\))?(!)?: (.+)$`)

// Commit validates a commit message against the rules.
func Commit(message string, rules Rules) Result {
	var res Result
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	header := lines[0]

	checked := stripLeadingEmoji(header)
	m := headerRegexp.FindStringSubmatch(checked)
	switch {
	case m == nil:
		res.add(RuleType, fmt.Sprintf("header %q is not in type(scope): description form", header))
	case !typeAllowed(m[1], rules.Types):
		res.add(RuleType, fmt.Sprintf("type %q is not one of the allowed types (%s)", m[1], strings.Join(rules.Types, ", ")))
	}

	if rules.MaxHeaderLength > 0 && utf8.RuneCountInString(header) > rules.MaxHeaderLength {
		res.add(RuleHeaderLength, fmt.Sprintf("header is %d characters, limit is %d",
			utf8.RuneCountInString(header), rules.MaxHeaderLength))
	}

	if rules.MaxBodyLength > 0 {
		for i, line := range lines[1:] {
			if utf8.RuneCountInString(line) > rules.MaxBodyLength {
				res.add(RuleBodyLength, fmt.Sprintf("body line %d is %d characters, limit is %d",
					i+2, utf8.RuneCountInString(line), rules.MaxBodyLength))
			}
		}
	}

	return res
}

// PRTitle validates a pull request title against the configured title format
// with {type}, {scope} and {description} placeholders. Every placeholder
// present in the format must resolve to a non-empty value and the type must
// be an allowed one.
func PRTitle(title, titleFormat string, types []string) Result {
	var res Result
	pattern, err := TitlePattern(titleFormat)
	if err != nil {
		res.add(RuleTitleFormat, fmt.Sprintf("title format %q is not usable: %v", titleFormat, err))
		return res
	}
	m := pattern.FindStringSubmatch(stripLeadingEmoji(title))
	if m == nil {
		res.add(RuleTitleFormat, fmt.Sprintf("title %q does not match format %q", title, titleFormat))
		return res
	}
	for i, name := range pattern.SubexpNames() {
		if name == "" {
			continue
		}
		if strings.TrimSpace(m[i]) == "" {
			res.add(RuleTitleFormat, fmt.Sprintf("title placeholder {%s} resolved to an empty value", name))
		}
		if name == "type" && !typeAllowed(m[i], types) {
			res.add(RuleTitleFormat, fmt.Sprintf("title type %q is not one of the allowed types (%s)",
				m[i], strings.Join(types, ", ")))
		}
	}
	return res
}

// TitlePattern compiles a title format string such as
// "{type}({scope}): {description}" into an anchored regexp with one named
// group per placeholder.
func TitlePattern(titleFormat string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(titleFormat)
	escaped = strings.ReplaceAll(escaped, `\{type\}`, `(?P<type>[A-Za-z]+)`)
	escaped = strings.ReplaceAll(escaped, `\{scope\}`, `(?P<scope>[^()]*)`)
	escaped = strings.ReplaceAll(escaped, `\{description\}`, `(?P<description>.*)`)
	return regexp.Compile("^" + escaped + "$")
}

func (r *Result) add(rule Rule, msg string) {
	r.Violations = append(r.Violations, Violation{Rule: rule, Message: msg})
}

func typeAllowed(t string, types []string) bool {
	for _, allowed := range types {
		if strings.EqualFold(t, allowed) {
			return true
		}
	}
	return false
}

// stripLeadingEmoji drops a single leading emoji (plus following spaces) so
// headers produced under the emoji option still validate against the type
// rules. ASCII headers pass through untouched.
func stripLeadingEmoji(header string) string {
	r, size := utf8.DecodeRuneInString(header)
	if r == utf8.RuneError || r <= unicode.MaxASCII || unicode.IsLetter(r) {
		return header
	}
	rest := header[size:]
	// Emoji are often followed by a variation selector or joiner.
	for {
		r, size = utf8.DecodeRuneInString(rest)
		if r > unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			rest = rest[size:]
			continue
		}
		break
	}
	return strings.TrimLeft(rest, " ")
}
