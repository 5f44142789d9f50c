package mapper

import (
	"strings"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
	"github.com/yanqian/faq-pipeline/pkg/textnorm"
)

// ColFullFAQ is the canonical text column of the dictionary.
const ColFullFAQ = "full_faq"

// DictionaryLevelColumns lists the six hierarchy columns of the dictionary.
var DictionaryLevelColumns = []string{"level_1", "level_2", "level_3", "level_4", "level_5", "level_6"}

// LoadDictionary validates a dictionary table and converts it into the
// deduplicated canonical entry list. Column names are matched after
// lowercasing and trimming. Missing required columns are a fatal precondition
// failure naming every absent column; no row is processed in that case.
// Duplicate entries (by strict-normalized text) keep the first occurrence.
func LoadDictionary(t *table.Table) ([]Entry, error) {
	if t == nil {
		return nil, apperrors.Wrap("invalid_input", "dictionary table is required", nil)
	}

	resolved := make(map[string]string, len(DictionaryLevelColumns)+1)
	for _, col := range t.Columns {
		resolved[strings.ToLower(strings.TrimSpace(col))] = col
	}

	var missing []string
	for _, col := range append(append([]string{}, DictionaryLevelColumns...), ColFullFAQ) {
		if _, ok := resolved[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.Wrap("invalid_input", "dictionary missing required columns: "+strings.Join(missing, ", "), nil)
	}

	entries := make([]Entry, 0, len(t.Rows))
	seen := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		full := r.Get(resolved[ColFullFAQ])
		clean := textnorm.StrictValue(full)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}

		e := Entry{FullFAQ: full.Text(), Clean: clean}
		for i, col := range DictionaryLevelColumns {
			e.Levels[i] = r.Get(resolved[col])
		}
		entries = append(entries, e)
	}
	return entries, nil
}
