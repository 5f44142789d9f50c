package corrector

import (
	"strings"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

// unnamedPrefix is the placeholder spreadsheet readers assign to headerless
// columns ("Unnamed: 3").
const unnamedPrefix = "Unnamed"

func isUnnamed(name string) bool {
	return strings.HasPrefix(strings.TrimSpace(name), unnamedPrefix)
}

// ReshapeColumns relabels paired fail/pass measures. Whenever a named column
// is immediately followed by an unnamed placeholder, the pair is rewritten as
// <name>_fail and <name>_pass. A trailing placeholder with nothing to pair
// against passes through unchanged.
func ReshapeColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for i := 0; i < len(columns); {
		if i+1 < len(columns) && isUnnamed(columns[i+1]) {
			base := strings.ToLower(strings.TrimSpace(columns[i]))
			out = append(out, base+"_fail", base+"_pass")
			i += 2
			continue
		}
		out = append(out, columns[i])
		i++
	}
	return out
}

// Reshape applies ReshapeColumns to a table, producing a new table with the
// renamed header and untouched cell data.
func Reshape(t *table.Table) *table.Table {
	renamed := ReshapeColumns(t.Columns)
	out := table.New(renamed...)
	out.Rows = make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, oldName := range t.Columns {
			if v, ok := r[oldName]; ok {
				row[renamed[i]] = v
			}
		}
		out.Append(row)
	}
	return out
}
