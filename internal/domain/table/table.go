package table

import "strings"

// Row maps column name to cell value. Columns missing from the map are
// treated as absent.
type Row map[string]Value

// Get returns the cell for a column, absent when the column is not set.
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return None()
}

// Clone copies the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of columns plus rows. The column slice carries the
// presentation order; rows may hold any subset of the columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the column is declared.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone deep-copies the table so pipeline stages never mutate their input.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

// NumericColumns returns, in declaration order, every column whose present
// values are all numeric and which has at least one present value.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, col := range t.Columns {
		present := 0
		numeric := true
		for _, r := range t.Rows {
			v := r.Get(col)
			if v.IsAbsent() {
				continue
			}
			present++
			if _, ok := v.Float(); !ok {
				numeric = false
				break
			}
		}
		if numeric && present > 0 {
			out = append(out, col)
		}
	}
	return out
}

// Named pairs a table with the sheet name it is exported under.
type Named struct {
	Name  string
	Table *Table
}

// DetectColumn picks a column by exact name first, then by case-insensitive
// substring. It returns the empty string when nothing qualifies.
func DetectColumn(columns []string, exact []string, substring string) string {
	for _, want := range exact {
		for _, c := range columns {
			if c == want {
				return c
			}
		}
	}
	if substring != "" {
		needle := strings.ToLower(substring)
		for _, c := range columns {
			if strings.Contains(strings.ToLower(c), needle) {
				return c
			}
		}
	}
	return ""
}
