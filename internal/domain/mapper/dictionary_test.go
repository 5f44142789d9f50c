package mapper

import (
	"strings"
	"testing"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
)

func dictTable(faqs ...string) *table.Table {
	cols := append(append([]string{}, DictionaryLevelColumns...), ColFullFAQ)
	tbl := table.New(cols...)
	for _, f := range faqs {
		row := table.Row{ColFullFAQ: table.Str(f)}
		for i, col := range DictionaryLevelColumns {
			row[col] = table.Str(strings.Repeat("l", i+1))
		}
		tbl.Append(row)
	}
	return tbl
}

func TestLoadDictionaryReportsAllMissingColumns(t *testing.T) {
	tbl := table.New("level_1", "level_2", "something")
	_, err := LoadDictionary(tbl)
	if err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if !apperrors.IsCode(err, "invalid_input") {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	for _, col := range []string{"level_3", "level_4", "level_5", "level_6", "full_faq"} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("error should name %q: %v", col, err)
		}
	}
}

func TestLoadDictionaryNormalizesColumnNames(t *testing.T) {
	tbl := table.New(" Level_1 ", "LEVEL_2", "level_3", "level_4", "level_5", "level_6", "Full_FAQ")
	tbl.Append(table.Row{"Full_FAQ": table.Str("How do I pay?"), " Level_1 ": table.Str("Billing")})

	entries, err := LoadDictionary(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry got %d", len(entries))
	}
	if entries[0].Levels[0].Text() != "Billing" {
		t.Fatalf("level_1 not resolved, got %q", entries[0].Levels[0].Text())
	}
}

func TestLoadDictionaryDeduplicatesKeepFirst(t *testing.T) {
	tbl := dictTable("Food is cold", "FOOD IS COLD!", "Other question")
	entries, err := LoadDictionary(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 deduplicated entries got %d", len(entries))
	}
	if entries[0].FullFAQ != "Food is cold" {
		t.Fatalf("dedupe must keep the first occurrence, got %q", entries[0].FullFAQ)
	}
}

func TestLoadDictionarySkipsBlankEntries(t *testing.T) {
	tbl := dictTable("", "Real question")
	entries, err := LoadDictionary(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].FullFAQ != "Real question" {
		t.Fatalf("blank canonical texts should be skipped, got %v", entries)
	}
}
