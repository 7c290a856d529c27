package services

import (
	"regexp"
	"strings"
)

var (
	fenceOpeners = []*regexp.Regexp{
		regexp.MustCompile("(?i)^```html\\n?"),
		regexp.MustCompile("(?i)^```json\\n?"),
		regexp.MustCompile("(?i)^```markdown\\n?"),
		regexp.MustCompile("^```\\n?"),
	}
	fenceCloser = regexp.MustCompile("\\n?```$")
)

// SanitizeAIResponse strips the code fence a model may wrap its output in
// and trims surrounding whitespace. It runs to a fixpoint, so applying it
// to already clean text is a no-op.
func SanitizeAIResponse(text string) string {
	for {
		next := stripFence(text)
		if next == text {
			return next
		}
		text = next
	}
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	for _, opener := range fenceOpeners {
		text = opener.ReplaceAllString(text, "")
	}
	text = fenceCloser.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
