package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/faq-pipeline/internal/domain/corrector"
	"github.com/yanqian/faq-pipeline/internal/domain/mapper"
	"github.com/yanqian/faq-pipeline/internal/domain/table"
	"github.com/yanqian/faq-pipeline/internal/infra/config"
	"github.com/yanqian/faq-pipeline/internal/infra/workbook"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
	"github.com/yanqian/faq-pipeline/pkg/metrics"
	"github.com/yanqian/faq-pipeline/pkg/util"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PipelineHandler wires the HTTP transport to the pipeline services.
type PipelineHandler struct {
	correctorSvc corrector.Service
	mapperSvc    mapper.Service
	cfg          *config.Config
	logger       *slog.Logger
}

// NewPipelineHandler constructs the root HTTP handler.
func NewPipelineHandler(correctorSvc corrector.Service, mapperSvc mapper.Service, cfg *config.Config, logger *slog.Logger) *PipelineHandler {
	return &PipelineHandler{
		correctorSvc: correctorSvc,
		mapperSvc:    mapperSvc,
		cfg:          cfg,
		logger:       logger.With("component", "http.handler"),
	}
}

// Correct runs the corrector pipeline over two uploaded workbooks and
// responds with the four-sheet result workbook.
func (h *PipelineHandler) Correct(c *gin.Context) {
	runID := uuid.NewString()
	start := util.NowUTC()

	fileC, httpErr := h.readUpload(c, "file_c")
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	fileD, httpErr := h.readUpload(c, "file_d")
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	res, err := h.correctorSvc.Run(c.Request.Context(), corrector.RunRequest{
		FileC:     fileC,
		FileD:     fileD,
		FAQColumn: c.PostForm("faq_column"),
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "corrector_failed"))
		return
	}

	summary := metrics.RunSummary{
		RunID:      runID,
		Rows:       res.Tables[0].Table.Len() + res.Tables[1].Table.Len(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	h.logger.Info("corrector request served", "run_id", summary.RunID, "rows", summary.Rows, "duration_ms", summary.DurationMs)

	c.Header("X-Run-ID", runID)
	h.respondWorkbook(c, "faq_corrected.xlsx", res.Tables)
}

// Map runs the mapper pipeline over an evaluation workbook and a canonical
// dictionary workbook, responding with mapped and unmapped sheets.
func (h *PipelineHandler) Map(c *gin.Context) {
	runID := uuid.NewString()
	start := util.NowUTC()

	evaluation, httpErr := h.readUpload(c, "evaluation")
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	dictionary, httpErr := h.readUpload(c, "dictionary")
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	req := mapper.MapRequest{
		Evaluation: evaluation,
		Dictionary: dictionary,
		FAQColumn:  c.PostForm("faq_column"),
	}
	if raw := c.PostForm("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "threshold must be an integer", err))
			return
		}
		req.Threshold = &threshold
	}
	if raw := c.PostForm("keyword_fallback"); raw != "" {
		enabled := raw == "1" || strings.EqualFold(raw, "true")
		req.DisableKeywordFallback = !enabled
	}

	res, err := h.mapperSvc.Map(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, toHTTPError(err, "mapper_failed"))
		return
	}

	summary := metrics.RunSummary{
		RunID:      runID,
		Rows:       res.Stats.Total,
		Fuzzy:      res.Stats.Fuzzy,
		Keyword:    res.Stats.Keyword,
		Unmapped:   res.Stats.Unmapped,
		DurationMs: time.Since(start).Milliseconds(),
	}
	h.logger.Info("mapper request served",
		"run_id", summary.RunID,
		"rows", summary.Rows,
		"fuzzy", summary.Fuzzy,
		"keyword", summary.Keyword,
		"unmapped", summary.Unmapped,
		"duration_ms", summary.DurationMs,
	)

	c.Header("X-Run-ID", runID)
	c.Header("X-Match-Fuzzy", strconv.Itoa(res.Stats.Fuzzy))
	c.Header("X-Match-Keyword", strconv.Itoa(res.Stats.Keyword))
	c.Header("X-Match-Unmapped", strconv.Itoa(res.Stats.Unmapped))
	h.respondWorkbook(c, "faq_mapped.xlsx", []table.Named{
		{Name: "mapped", Table: res.Mapped},
		{Name: "unmapped", Table: res.Unmapped},
	})
}

// Health reports liveness.
func (h *PipelineHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PipelineHandler) readUpload(c *gin.Context, field string) (*table.Table, *HTTPError) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid_request", fmt.Sprintf("missing upload %q", field), err)
	}
	if fh.Size > h.cfg.HTTP.MaxUploadBytes {
		return nil, NewHTTPError(http.StatusRequestEntityTooLarge, "upload_too_large", fmt.Sprintf("upload %q exceeds limit", field), nil)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid_request", fmt.Sprintf("could not open upload %q", field), err)
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	t, err := workbook.Read(f)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid_workbook", fmt.Sprintf("upload %q is not a readable workbook", field), err)
	}
	return t, nil
}

func (h *PipelineHandler) respondWorkbook(c *gin.Context, filename string, tables []table.Named) {
	var buf bytes.Buffer
	if err := workbook.Write(&buf, tables); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "export_failed", "could not build result workbook", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, workbookContentType, buf.Bytes())
}

func toHTTPError(err error, code string) *HTTPError {
	status := http.StatusInternalServerError
	if apperrors.IsCode(err, "invalid_input") {
		status = http.StatusBadRequest
	}
	return NewHTTPError(status, code, err.Error(), err)
}
