package entities

import (
	"regexp"
	"strings"
)

var (
	// reSeparatorRun matches runs of whitespace and punctuation.
	reSeparatorRun = regexp.MustCompile(`[\s\p{P}]+`)
	// reLeadingArticle matches a leading English article followed by a separator.
	reLeadingArticle = regexp.MustCompile(`^(?:the|a|an) `)
)

// NormalizeText canonicalizes free text for comparison: lowercase, leading
// articles stripped, runs of punctuation and whitespace collapsed to a single
// space, leading/trailing separators trimmed. It is total and idempotent and
// is the only string-comparison primitive used by the matching pipeline.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reSeparatorRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Articles are stripped until stable so normalizing an already
	// normalized string is a no-op.
	for {
		stripped := reLeadingArticle.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}
