package mapper

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
	"github.com/yanqian/faq-pipeline/pkg/textnorm"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubMatcher scores an exact candidate hit at 100 and everything else at a
// fixed floor, counting invocations so tests can assert the short-circuit on
// empty input.
type stubMatcher struct {
	floor int
	calls int
}

func (m *stubMatcher) BestMatch(query string, candidates []string) (int, int) {
	m.calls++
	if len(candidates) == 0 {
		return -1, 0
	}
	for i, c := range candidates {
		if c == query {
			return i, 100
		}
	}
	return 0, m.floor
}

func evalTable(faqs ...string) *table.Table {
	tbl := table.New("FAQ")
	for _, f := range faqs {
		if f == "" {
			tbl.Append(table.Row{})
			continue
		}
		tbl.Append(table.Row{"FAQ": table.Str(f)})
	}
	return tbl
}

func testConfig() Config {
	return Config{
		Threshold:          80,
		UseKeywordFallback: true,
		Keywords: []KeywordMapping{
			{Keyword: "wrong item", Target: "Received the wrong item"},
		},
	}
}

func newTestService(m Matcher, cfg Config) Service {
	return NewService(cfg, m, newTestLogger())
}

func TestMapFuzzyExactMatch(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, testConfig())

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("Food preparation is too slow."),
		Dictionary: dictTable("food preparation is too slow"),
	})
	require.NoError(t, err)

	row := res.Mapped.Rows[0]
	require.Equal(t, string(StatusFuzzy), row.Get(ColMatchStatus).Text())
	score, _ := row.Get(ColMatchScore).Float()
	require.Equal(t, 100.0, score)
	require.Equal(t, "food preparation is too slow", row.Get(ColMatchedFAQ).Text())
	require.Equal(t, "l", row.Get("level_1").Text())
	require.Equal(t, 1, res.Stats.Fuzzy)
	require.Equal(t, 0, res.Mapped.Len()-res.Stats.Fuzzy)
}

func TestMapKeepsBestSubThresholdScore(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 42}, Config{Threshold: 80})

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("totally unrelated text"),
		Dictionary: dictTable("food preparation is too slow"),
	})
	require.NoError(t, err)

	row := res.Mapped.Rows[0]
	require.Equal(t, string(StatusUnmapped), row.Get(ColMatchStatus).Text())
	score, _ := row.Get(ColMatchScore).Float()
	require.Equal(t, 42.0, score)
	require.True(t, row.Get("level_1").IsAbsent())
	require.Equal(t, 1, res.Unmapped.Len())
}

func TestMapKeywordFallback(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, Config{
		Threshold:          80,
		UseKeywordFallback: true,
		Keywords: []KeywordMapping{
			{Keyword: "missing target", Target: "Not in the dictionary"},
			{Keyword: "wrong item", Target: "Received the wrong item"},
		},
	})

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("I think they sent me the WRONG ITEM yesterday"),
		Dictionary: dictTable("Received the wrong item", "Other entry"),
	})
	require.NoError(t, err)

	row := res.Mapped.Rows[0]
	require.Equal(t, string(StatusKeyword), row.Get(ColMatchStatus).Text())
	score, _ := row.Get(ColMatchScore).Float()
	require.Equal(t, 100.0, score)
	require.Equal(t, "Received the wrong item", row.Get(ColMatchedFAQ).Text())
	require.Equal(t, 1, res.Stats.Keyword)
	require.Equal(t, 0, res.Unmapped.Len())
}

func TestMapDanglingKeywordIsSkipped(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, Config{
		Threshold:          80,
		UseKeywordFallback: true,
		Keywords: []KeywordMapping{
			{Keyword: "wrong item", Target: "No such canonical text"},
		},
	})

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("wrong item received"),
		Dictionary: dictTable("Some entry"),
	})
	require.NoError(t, err)
	require.Equal(t, string(StatusUnmapped), res.Mapped.Rows[0].Get(ColMatchStatus).Text())
	require.Equal(t, 1, res.Stats.Unmapped)
}

func TestMapEmptyTextSkipsMatcher(t *testing.T) {
	stub := &stubMatcher{floor: 10}
	svc := newTestService(stub, Config{Threshold: 80})

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable(""),
		Dictionary: dictTable("Some entry"),
	})
	require.NoError(t, err)
	require.Zero(t, stub.calls)

	row := res.Mapped.Rows[0]
	require.Equal(t, string(StatusUnmapped), row.Get(ColMatchStatus).Text())
	score, _ := row.Get(ColMatchScore).Float()
	require.Equal(t, 0.0, score)
}

func TestMapDisableKeywordFallbackPerRequest(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, testConfig())

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation:             evalTable("wrong item received"),
		Dictionary:             dictTable("Received the wrong item"),
		DisableKeywordFallback: true,
	})
	require.NoError(t, err)
	require.Equal(t, string(StatusUnmapped), res.Mapped.Rows[0].Get(ColMatchStatus).Text())
}

func TestMapThresholdOverrideValidated(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, testConfig())

	bad := 140
	_, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("x"),
		Dictionary: dictTable("y"),
		Threshold:  &bad,
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestMapFirstKeywordWins(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, Config{
		Threshold:          80,
		UseKeywordFallback: true,
		Keywords: []KeywordMapping{
			{Keyword: "item", Target: "First target entry"},
			{Keyword: "wrong item", Target: "Second target entry"},
		},
	})

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("wrong item received"),
		Dictionary: dictTable("First target entry", "Second target entry"),
	})
	require.NoError(t, err)
	require.Equal(t, "First target entry", res.Mapped.Rows[0].Get(ColMatchedFAQ).Text())
}

func TestMapCleanTextColumn(t *testing.T) {
	svc := newTestService(&stubMatcher{floor: 10}, testConfig())

	res, err := svc.Map(context.Background(), MapRequest{
		Evaluation: evalTable("  Why is DELIVERY so late?! "),
		Dictionary: dictTable("Some entry"),
	})
	require.NoError(t, err)
	require.Equal(t, textnorm.Strict("Why is DELIVERY so late?!"), res.Mapped.Rows[0].Get(ColCleanText).Text())
}
