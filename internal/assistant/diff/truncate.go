package diff

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const truncationMarker = "\n\n[diff truncated to fit model context]"

// Fit returns the diff unchanged when it fits within maxTokens; otherwise it
// cuts at a natural boundary (file, hunk, line) and appends a marker. A
// maxTokens of 0 disables truncation.
func Fit(diff string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(diff) <= maxTokens {
		return diff
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\ndiff --git", "\n@@", "\n", ""}),
		textsplitter.WithChunkSize(maxTokens*approxCharsPerToken),
		textsplitter.WithChunkOverlap(0),
		// Keep the separator text, so cut points stay readable diff markers.
		textsplitter.WithKeepSeparator(true),
	)
	parts, err := splitter.SplitText(diff)
	if err != nil || len(parts) == 0 {
		// Last resort: hard character cut.
		cut := maxTokens * approxCharsPerToken
		if cut > len(diff) {
			cut = len(diff)
		}
		return diff[:cut] + truncationMarker
	}

	var b strings.Builder
	for _, part := range parts {
		// The splitter trims surrounding whitespace from each chunk, so the
		// newline ahead of a kept separator has to come back on rejoin.
		if b.Len() > 0 {
			part = "\n" + part
		}
		if EstimateTokens(b.String()+part) > maxTokens {
			break
		}
		b.WriteString(part)
	}
	if b.Len() == 0 {
		b.WriteString(parts[0])
	}
	return strings.TrimRight(b.String(), "\n") + truncationMarker
}
