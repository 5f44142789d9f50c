package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
	"github.com/yanqian/faq-pipeline/pkg/textnorm"
)

// Columns appended to every mapped row.
const (
	ColCleanText   = "clean_text"
	ColMatchedFAQ  = "matched_faq"
	ColMatchScore  = "match_score"
	ColMatchStatus = "match_status"
)

// Config holds runtime knobs for the mapper pipeline.
type Config struct {
	// Threshold is the fuzzy acceptance cutoff in [0, 100].
	Threshold int
	// UseKeywordFallback enables the keyword stage for unmapped rows.
	UseKeywordFallback bool
	// Keywords is evaluated in order, first match wins.
	Keywords []KeywordMapping
	// FAQColumn forces the evaluation text column. Empty means auto-detect.
	FAQColumn string
}

// MapRequest carries one mapping run's inputs. Zero-valued options fall back
// to the service configuration.
type MapRequest struct {
	Evaluation *table.Table
	Dictionary *table.Table
	FAQColumn  string
	// Threshold overrides the configured cutoff when non-nil.
	Threshold *int
	// DisableKeywordFallback skips the keyword stage for this run.
	DisableKeywordFallback bool
}

// Service exposes the mapper pipeline.
type Service interface {
	Map(ctx context.Context, req MapRequest) (Result, error)
}

type service struct {
	cfg     Config
	matcher Matcher
	logger  *slog.Logger
}

// NewService wires up the mapper domain.
func NewService(cfg Config, matcher Matcher, logger *slog.Logger) Service {
	return &service{cfg: cfg, matcher: matcher, logger: logger.With("component", "mapper.service")}
}

func (s *service) Map(ctx context.Context, req MapRequest) (Result, error) {
	if req.Evaluation == nil {
		return Result{}, apperrors.Wrap("invalid_input", "evaluation table is required", nil)
	}

	threshold := s.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 100 {
		return Result{}, apperrors.Wrap("invalid_input", fmt.Sprintf("threshold %d outside [0, 100]", threshold), nil)
	}

	entries, err := LoadDictionary(req.Dictionary)
	if err != nil {
		return Result{}, err
	}

	faqCol := req.FAQColumn
	if faqCol == "" {
		faqCol = s.cfg.FAQColumn
	}
	if faqCol == "" {
		faqCol = table.DetectColumn(req.Evaluation.Columns, []string{"Count of FAQ", "FAQ"}, "faq")
	}
	if faqCol == "" || !req.Evaluation.HasColumn(faqCol) {
		return Result{}, apperrors.Wrap("invalid_input", "no FAQ text column found in evaluation table", nil)
	}

	candidates := make([]string, len(entries))
	for i, e := range entries {
		candidates[i] = e.Clean
	}

	columns := append(append([]string{}, req.Evaluation.Columns...),
		ColCleanText, ColMatchedFAQ, ColMatchScore, ColMatchStatus)
	columns = append(columns, DictionaryLevelColumns...)

	mapped := table.New(columns...)
	mapped.Rows = make([]table.Row, 0, len(req.Evaluation.Rows))

	// Stage 1: fuzzy. Every row is scored exactly once; rows at or above the
	// threshold become terminal, the rest keep their best score for review.
	for _, r := range req.Evaluation.Rows {
		row := r.Clone()
		clean := textnorm.StrictValue(r.Get(faqCol))
		row[ColCleanText] = table.Str(clean)
		row[ColMatchedFAQ] = table.None()
		row[ColMatchStatus] = table.Str(string(StatusUnmapped))
		for _, col := range DictionaryLevelColumns {
			row[col] = table.None()
		}

		if clean == "" {
			row[ColMatchScore] = table.Num(0)
			mapped.Append(row)
			continue
		}

		idx, score := s.matcher.BestMatch(clean, candidates)
		row[ColMatchScore] = table.Num(float64(score))
		if idx >= 0 && score >= threshold {
			applyEntry(row, entries[idx], StatusFuzzy, score)
		}
		mapped.Append(row)
	}

	// Stage 2: keyword fallback, only over rows still unmapped.
	if s.cfg.UseKeywordFallback && !req.DisableKeywordFallback {
		byClean := make(map[string]Entry, len(entries))
		for _, e := range entries {
			byClean[e.Clean] = e
		}
		for _, row := range mapped.Rows {
			if Status(row.Get(ColMatchStatus).Text()) != StatusUnmapped {
				continue
			}
			clean := row.Get(ColCleanText).Text()
			for _, kw := range s.cfg.Keywords {
				if kw.Keyword == "" || !strings.Contains(clean, kw.Keyword) {
					continue
				}
				entry, ok := byClean[textnorm.Strict(kw.Target)]
				if !ok {
					// Dangling target: skip this keyword, keep scanning.
					continue
				}
				applyEntry(row, entry, StatusKeyword, 100)
				break
			}
		}
	}

	result := Result{Mapped: mapped, Unmapped: unmappedSubset(mapped)}
	result.Stats = countStatuses(mapped)

	s.logger.Info("mapper run complete",
		"rows", result.Stats.Total,
		"fuzzy", result.Stats.Fuzzy,
		"keyword", result.Stats.Keyword,
		"unmapped", result.Stats.Unmapped,
		"threshold", threshold,
	)
	return result, nil
}

func applyEntry(row table.Row, e Entry, status Status, score int) {
	row[ColMatchedFAQ] = table.Str(e.FullFAQ)
	row[ColMatchScore] = table.Num(float64(score))
	row[ColMatchStatus] = table.Str(string(status))
	for i, col := range DictionaryLevelColumns {
		row[col] = e.Levels[i]
	}
}

func unmappedSubset(mapped *table.Table) *table.Table {
	out := table.New(mapped.Columns...)
	for _, r := range mapped.Rows {
		if Status(r.Get(ColMatchStatus).Text()) == StatusUnmapped {
			out.Append(r.Clone())
		}
	}
	return out
}

func countStatuses(mapped *table.Table) Stats {
	stats := Stats{Total: mapped.Len()}
	for _, r := range mapped.Rows {
		switch Status(r.Get(ColMatchStatus).Text()) {
		case StatusFuzzy:
			stats.Fuzzy++
		case StatusKeyword:
			stats.Keyword++
		default:
			stats.Unmapped++
		}
	}
	return stats
}

// DefaultKeywords is the built-in example mapping set used when the
// configuration does not provide one.
func DefaultKeywords() []KeywordMapping {
	return []KeywordMapping{
		{Keyword: "wrong item", Target: "Received the wrong item"},
		{Keyword: "cold food", Target: "Food arrived cold"},
		{Keyword: "too slow", Target: "Food preparation is too slow"},
		{Keyword: "refund", Target: "How do I request a refund"},
	}
}
