package mapper

import "github.com/yanqian/faq-pipeline/internal/domain/table"

// Status records how an evaluation row was reconciled.
type Status string

const (
	// StatusFuzzy means the similarity stage found a candidate at or above
	// the threshold.
	StatusFuzzy Status = "fuzzy"
	// StatusKeyword means the keyword fallback resolved the row.
	StatusKeyword Status = "keyword"
	// StatusUnmapped means neither stage produced a confident match.
	StatusUnmapped Status = "unmapped"
)

// dictionaryLevels is the canonical hierarchy depth. The dictionary is one
// level deeper than the parsed 5-level hierarchy.
const dictionaryLevels = 6

// Entry is one deduplicated canonical dictionary row.
type Entry struct {
	Levels  [dictionaryLevels]table.Value
	FullFAQ string
	// Clean is the strict-normalized FullFAQ, the identity used for
	// deduplication and keyword target lookup.
	Clean string
}

// KeywordMapping maps a trigger substring to a canonical FAQ text. Mappings
// are evaluated in order with first-match-wins semantics.
type KeywordMapping struct {
	Keyword string
	Target  string
}

// Stats counts reconciliation outcomes for one run.
type Stats struct {
	Total    int `json:"total"`
	Fuzzy    int `json:"fuzzy"`
	Keyword  int `json:"keyword"`
	Unmapped int `json:"unmapped"`
}

// Result is the output of one mapping run.
type Result struct {
	// Mapped carries every evaluation row plus the reconciliation columns.
	Mapped *table.Table
	// Unmapped is the subset of Mapped still awaiting manual review.
	Unmapped *table.Table
	Stats    Stats
}

// Matcher finds the best candidate for a query. Implementations must be
// deterministic and must break exact score ties in favour of the earliest
// candidate. Scores are in [0, 100]. An empty candidate set returns (-1, 0).
type Matcher interface {
	BestMatch(query string, candidates []string) (index int, score int)
}
