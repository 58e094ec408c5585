package markdown

import (
	"regexp"
	"strings"
)

// DefaultExcerptLength is used when a non-positive length is requested
const DefaultExcerptLength = 200

const ellipsis = "..."

var (
	fencedCodePattern    = regexp.MustCompile("(?s)```.*?```")
	imagePattern         = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern          = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	inlineCodePattern    = regexp.MustCompile("`([^`]+)`")
	headingPattern       = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	blockquotePattern    = regexp.MustCompile(`(?m)^[ \t]*(?:>[ \t]?)+`)
	unorderedListPattern = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	orderedListPattern   = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	emphasisPattern      = regexp.MustCompile(`\*\*|__|~~|\*|\b_|_\b`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Excerpt strips Markdown syntax from source, collapses whitespace and
// truncates the result to maxLength characters, appending "..." when cut.
func Excerpt(source string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	text := fencedCodePattern.ReplaceAllString(source, " ")
	text = imagePattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	text = blockquotePattern.ReplaceAllString(text, "")
	text = unorderedListPattern.ReplaceAllString(text, "")
	text = orderedListPattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + ellipsis
	}
	return text
}
