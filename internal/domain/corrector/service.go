package corrector

import (
	"context"
	"log/slog"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
)

// Config holds runtime knobs for the corrector pipeline.
type Config struct {
	// FAQColumn forces the FAQ text column. Empty means auto-detect.
	FAQColumn string
}

// Service exposes the corrector pipeline.
type Service interface {
	// Process reshapes, parses, and enriches one table.
	Process(ctx context.Context, t *table.Table, faqColumn string) (*table.Table, error)
	// Run processes both input files and returns the four output tables.
	Run(ctx context.Context, req RunRequest) (RunResult, error)
}

// RunRequest carries the two corrector inputs.
type RunRequest struct {
	FileC *table.Table
	FileD *table.Table
	// FAQColumn overrides auto-detection for both files when set.
	FAQColumn string
}

// RunResult holds the named output tables in export order.
type RunResult struct {
	Tables []table.Named
}

type service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService wires up the corrector domain.
func NewService(cfg Config, logger *slog.Logger) Service {
	return &service{cfg: cfg, logger: logger.With("component", "corrector.service")}
}

func (s *service) Process(ctx context.Context, t *table.Table, faqColumn string) (*table.Table, error) {
	if t == nil {
		return nil, apperrors.Wrap("invalid_input", "input table is required", nil)
	}
	reshaped := Reshape(t)

	col := faqColumn
	if col == "" {
		col = s.cfg.FAQColumn
	}
	if col == "" {
		col = DetectFAQColumn(reshaped.Columns)
	}
	if col == "" || !reshaped.HasColumn(col) {
		return nil, apperrors.Wrap("invalid_input", "no FAQ text column found; pass one explicitly", nil)
	}

	out := table.New(append(append([]string{}, reshaped.Columns...), EnrichedColumns...)...)
	out.Rows = make([]table.Row, 0, len(reshaped.Rows))
	for _, r := range reshaped.Rows {
		h := ParseLevels(r.Get(col))
		out.Append(Enrich(r, h))
	}

	s.logger.Debug("table processed", "rows", out.Len(), "faq_column", col)
	return out, nil
}

func (s *service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	processedC, err := s.Process(ctx, req.FileC, req.FAQColumn)
	if err != nil {
		return RunResult{}, apperrors.Wrap("corrector_error", "file C processing failed", err)
	}
	processedD, err := s.Process(ctx, req.FileD, req.FAQColumn)
	if err != nil {
		return RunResult{}, apperrors.Wrap("corrector_error", "file D processing failed", err)
	}

	result := RunResult{Tables: []table.Named{
		{Name: "processed_c", Table: processedC},
		{Name: "processed_d", Table: processedD},
		{Name: "grouped_c", Table: Group(processedC)},
		{Name: "grouped_d", Table: Group(processedD)},
	}}

	s.logger.Info("corrector run complete",
		"rows_c", processedC.Len(),
		"rows_d", processedD.Len(),
	)
	return result, nil
}

// DetectFAQColumn picks the FAQ text column: the exact headers the source
// files use first, then any header mentioning FAQ.
func DetectFAQColumn(columns []string) string {
	return table.DetectColumn(columns, []string{"Count of FAQ", "FAQ"}, "faq")
}
