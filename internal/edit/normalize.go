// Package edit implements the text-mutation core: cross-run search and
// replace, anchor- and header-bounded block location, paragraph range
// mutation, inline markup parsing, and run formatting transfer. Everything
// operates on the docx model in memory; loading and saving are the caller's
// concern.
package edit

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes text for matching: NFKC compatibility
// normalization (full-width forms, NBSP and friends become their plain
// equivalents), whitespace runs collapsed to a single ASCII space, ends
// trimmed. Word documents accumulate NBSP and multi-space artifacts from
// editing history; exact matching against raw text silently fails.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
