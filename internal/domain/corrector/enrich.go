package corrector

import (
	"strings"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	"github.com/yanqian/faq-pipeline/pkg/textnorm"
)

// Column names appended to every processed row.
const (
	ColCategory    = "faq_category"
	ColDescription = "faq_description"
	ColQuestion    = "question"
	ColKey         = "key"
)

// LevelColumns lists the five hierarchy columns in order.
var LevelColumns = []string{"level_1", "level_2", "level_3", "level_4", "level_5"}

// EnrichedColumns is the full set of derived columns in output order.
var EnrichedColumns = append(append([]string{}, LevelColumns...), ColCategory, ColDescription, ColQuestion, ColKey)

// Enrich derives the category, description, question, and composite key for
// one row from its parsed hierarchy. The input row is not mutated.
func Enrich(row table.Row, h Hierarchy) table.Row {
	out := row.Clone()
	for i, col := range LevelColumns {
		out[col] = h[i]
	}

	out[ColCategory] = h[2]

	// Description joins the two leaf levels; both absent still yields an
	// empty string, not an absent cell.
	var descParts []string
	for _, v := range []table.Value{h[3], h[4]} {
		if !v.IsAbsent() {
			descParts = append(descParts, v.Text())
		}
	}
	out[ColDescription] = table.Str(strings.Join(descParts, " - "))

	switch {
	case !h[4].IsAbsent():
		out[ColQuestion] = h[4]
	case !h[3].IsAbsent():
		out[ColQuestion] = h[3]
	default:
		out[ColQuestion] = table.Str("")
	}

	out[ColKey] = table.Str(buildKey(h))
	return out
}

// buildKey space-joins the normalized level texts, skipping levels that trim
// to nothing or to the literal "None". Rows whose levels differ only in
// whitespace or quoting collapse to the same key.
func buildKey(h Hierarchy) string {
	var parts []string
	for _, v := range h {
		s := textnorm.CleanValue(v)
		if strings.TrimSpace(s) == "" || s == "None" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
