package assistant

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// PRSummary is a generated pull request description: a title plus the body
// sections in template order.
type PRSummary struct {
	Title    string
	Sections []PRSection
}

type PRSection struct {
	Name string
	Body string
}

// ParsePRSummary extracts a PRSummary from the model completion. The prompt
// asks for a JSON object but models wrap it in fences or prose often enough
// that extraction is tolerant: the first JSON object found wins, and when
// none is present the first line becomes the title and the rest the first
// section.
func ParsePRSummary(completion string, sections []string) PRSummary {
	doc := extractJSON(completion)
	if doc != "" && gjson.Valid(doc) {
		title := strings.TrimSpace(gjson.Get(doc, "title").String())
		if title != "" {
			summary := PRSummary{Title: title}
			for _, name := range sections {
				body := strings.TrimSpace(gjson.Get(doc, "sections."+escapeGJSONPath(name)).String())
				summary.Sections = append(summary.Sections, PRSection{Name: name, Body: body})
			}
			return summary
		}
	}

	lines := strings.SplitN(strings.TrimSpace(completion), "\n", 2)
	summary := PRSummary{Title: strings.TrimSpace(lines[0])}
	rest := ""
	if len(lines) == 2 {
		rest = strings.TrimSpace(lines[1])
	}
	for i, name := range sections {
		body := ""
		if i == 0 {
			body = rest
		}
		summary.Sections = append(summary.Sections, PRSection{Name: name, Body: body})
	}
	return summary
}

// Render prints the title followed by the sections in template order.
func (s PRSummary) Render() string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n")
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "\n## %s\n", sec.Name)
		if sec.Body != "" {
			b.WriteString(sec.Body)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Body renders the sections only, for use as a pull request body.
func (s PRSummary) Body() string {
	var b strings.Builder
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "## %s\n", sec.Name)
		if sec.Body != "" {
			b.WriteString(sec.Body)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// extractJSON returns the first balanced top-level JSON object in text,
// skipping markdown fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func escapeGJSONPath(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(key)
}
