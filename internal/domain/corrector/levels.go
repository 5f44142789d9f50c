package corrector

import (
	"strings"
	"unicode"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

// levelCount is the fixed depth of a parsed FAQ hierarchy.
const levelCount = 5

// Hierarchy is the ordered 5-level breakdown of one FAQ string. Levels are
// populated left to right; once a level is absent every deeper level is too.
type Hierarchy [levelCount]table.Value

// ParseLevels splits a raw FAQ cell into its 5-level hierarchy. The function
// is total: malformed, absent, or placeholder input yields five absent levels
// rather than an error.
func ParseLevels(v table.Value) Hierarchy {
	var h Hierarchy
	for i := range h {
		h[i] = table.None()
	}
	if v.IsAbsent() {
		return h
	}
	text := v.Text()
	if text == "" || text == "null" || text == "undefined" {
		return h
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, `"`, ""))
	text = strings.ReplaceAll(text, "\n", "|")
	text = splitCamelBoundaries(text)
	text = strings.Join(strings.Fields(text), " ")

	filled := 0
	for _, part := range strings.Split(text, "|") {
		if filled == levelCount {
			break
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h[filled] = table.Str(part)
		filled++
	}
	return h
}

// splitCamelBoundaries inserts a pipe separator wherever a lowercase letter
// is immediately followed by an uppercase one. Source data occasionally loses
// the delimiter between levels ("Data Plans4G PlansUnlimited"); this recovers
// those boundaries. It is a heuristic and will also split legitimately
// mixed-case names such as "iPhone".
func splitCamelBoundaries(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	prev := rune(0)
	for _, r := range s {
		if unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteString(" | ")
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
