package corrector

import (
	"strings"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

// Group aggregates an enriched table by (key, level_1..level_5), summing
// every all-numeric measure column. Grouping distinguishes absent cells from
// empty strings, so two rows only share a group when every tuple component
// matches in both kind and content. A table without numeric columns is
// returned as an unchanged copy.
func Group(t *table.Table) *table.Table {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return t.Clone()
	}

	groupCols := make([]string, 0, len(LevelColumns)+1)
	for _, col := range append([]string{ColKey}, LevelColumns...) {
		if t.HasColumn(col) {
			groupCols = append(groupCols, col)
		}
	}

	type bucket struct {
		first table.Row
		sums  map[string]float64
	}

	order := make([]string, 0, len(t.Rows))
	buckets := make(map[string]*bucket)

	for _, r := range t.Rows {
		tokens := make([]string, 0, len(groupCols))
		for _, col := range groupCols {
			tokens = append(tokens, r.Get(col).GroupToken())
		}
		key := strings.Join(tokens, "\x1f")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{first: r, sums: make(map[string]float64, len(numeric))}
			buckets[key] = b
			order = append(order, key)
		}
		for _, col := range numeric {
			if f, ok := r.Get(col).Float(); ok {
				b.sums[col] += f
			}
		}
	}

	out := table.New(append(append([]string{}, groupCols...), numeric...)...)
	out.Rows = make([]table.Row, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		row := make(table.Row, len(groupCols)+len(numeric))
		for _, col := range groupCols {
			row[col] = b.first.Get(col)
		}
		for _, col := range numeric {
			row[col] = table.Num(b.sums[col])
		}
		out.Append(row)
	}
	return out
}
