package textnorm

import (
	"testing"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "trims whitespace", in: "  Hello World  ", out: "Hello World"},
		{name: "collapses newlines and tabs", in: "a\r\n\tb", out: "a b"},
		{name: "collapses space runs", in: "a    b", out: "a b"},
		{name: "drops space before punctuation", in: "How do I pay ?", out: "How do I pay?"},
		{name: "folds fullwidth forms", in: "ＦＡＱ", out: "FAQ"},
		{name: "empty stays empty", in: "", out: ""},
	}

	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestStrict(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "lowercases", in: "Wrong Item", out: "wrong item"},
		{name: "strips punctuation", in: "What's the refund policy?", out: "whats the refund policy"},
		{name: "recollapses after stripping", in: "a - b", out: "a b"},
		{name: "keeps digits", in: "4G Plans", out: "4g plans"},
	}

	for _, tc := range cases {
		if got := Strict(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestValueVariantsNormalizeAbsentToEmpty(t *testing.T) {
	if got := CleanValue(table.None()); got != "" {
		t.Fatalf("expected empty string for absent value, got %q", got)
	}
	if got := StrictValue(table.None()); got != "" {
		t.Fatalf("expected empty string for absent value, got %q", got)
	}
	if got := StrictValue(table.Str("  Food  Prep ")); got != "food prep" {
		t.Fatalf("unexpected strict value %q", got)
	}
}
