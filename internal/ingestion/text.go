// Package ingestion handles turning raw document content into normalized
// text for the extractors: whitespace/character normalization and job
// posting retrieval from URLs.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	// disallowedRe matches every character outside word chars, whitespace,
	// '@', '.' and '-'. Anything else becomes a space.
	disallowedRe = regexp.MustCompile(`[^\w\s@.\-]`)

	// whitespaceRe matches runs of whitespace, including newlines and tabs.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText strips raw extracted document text into the canonical form
// the extractors match against: disallowed characters replaced with spaces,
// whitespace runs collapsed to single spaces, and the result trimmed.
// It is a pure total function; any input produces a string, possibly empty.
func NormalizeText(text string) string {
	text = disallowedRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
