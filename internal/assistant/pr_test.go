package assistant

import (
	"strings"
	"testing"
)

var prSections = []string{"Summary", "Changes", "Testing"}

func TestParsePRSummaryJSON(t *testing.T) {
	completion := `{"title": "feat(auth): add login", "sections": {"Summary": "Adds login.", "Changes": "- new handler", "Testing": "unit tests"}}`
	s := ParsePRSummary(completion, prSections)
	if s.Title != "feat(auth): add login" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if len(s.Sections) != 3 || s.Sections[0].Body != "Adds login." {
		t.Fatalf("unexpected sections: %+v", s.Sections)
	}
}

func TestParsePRSummaryFencedJSON(t *testing.T) {
	completion := "Here you go:\n```json\n{\"title\": \"fix(core): patch race\", \"sections\": {\"Summary\": \"Fixes a race.\"}}\n```\n"
	s := ParsePRSummary(completion, prSections)
	if s.Title != "fix(core): patch race" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if s.Sections[0].Body != "Fixes a race." {
		t.Fatalf("unexpected summary section %q", s.Sections[0].Body)
	}
	if s.Sections[1].Body != "" {
		t.Fatalf("missing sections must be empty, got %q", s.Sections[1].Body)
	}
}

func TestParsePRSummaryPlainTextFallback(t *testing.T) {
	completion := "feat(cli): add pr command\n\nThis change adds the pr command."
	s := ParsePRSummary(completion, prSections)
	if s.Title != "feat(cli): add pr command" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if !strings.Contains(s.Sections[0].Body, "adds the pr command") {
		t.Fatalf("remaining text must land in the first section, got %q", s.Sections[0].Body)
	}
}

func TestRenderSectionOrder(t *testing.T) {
	s := PRSummary{
		Title: "feat(x): y",
		Sections: []PRSection{
			{Name: "Summary", Body: "one"},
			{Name: "Changes", Body: "two"},
		},
	}
	out := s.Render()
	if !strings.HasPrefix(out, "feat(x): y\n") {
		t.Fatalf("render must start with the title:\n%s", out)
	}
	iSummary := strings.Index(out, "## Summary")
	iChanges := strings.Index(out, "## Changes")
	if iSummary < 0 || iChanges < 0 || iSummary > iChanges {
		t.Fatalf("sections out of order:\n%s", out)
	}
}

func TestBodyOmitsTitle(t *testing.T) {
	s := PRSummary{Title: "feat: t", Sections: []PRSection{{Name: "Summary", Body: "b"}}}
	if strings.Contains(s.Body(), "feat: t") {
		t.Fatalf("body must not repeat the title")
	}
}
