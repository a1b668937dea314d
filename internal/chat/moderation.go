package chat

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// ContentModeration sanitizes message bodies before they are stored. Small
// initial sanitizer; extend with profanity filters, URL stripping, etc.
type ContentModeration struct{}

func NewContentModeration() *ContentModeration {
	return &ContentModeration{}
}

// Sanitize trims, collapses whitespace, and strips HTML tags so stored
// bodies are plain text.
func (m *ContentModeration) Sanitize(body string) string {
	clean := strings.TrimSpace(body)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	clean = htmlTagRe.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}
