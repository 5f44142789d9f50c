package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

var spaceBeforePunct = regexp.MustCompile(`\s+([?.!,;:])`)

// Clean canonicalizes free text: Unicode NFKC folding, newline/tab and
// whitespace runs collapsed to single spaces, spaces dropped before common
// punctuation, surrounding whitespace trimmed. Total over any input.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(spaceBeforePunct.ReplaceAllString(s, "$1"))
}

// Strict applies Clean, lowercases, and strips every rune that is not
// alphanumeric or whitespace. Matching built on top of it is therefore case
// and punctuation insensitive.
func Strict(s string) string {
	lowered := strings.ToLower(Clean(s))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanValue normalizes a cell; absent cells normalize to the empty string.
func CleanValue(v table.Value) string {
	if v.IsAbsent() {
		return ""
	}
	return Clean(v.Text())
}

// StrictValue is the strict variant of CleanValue.
func StrictValue(v table.Value) string {
	if v.IsAbsent() {
		return ""
	}
	return Strict(v.Text())
}
