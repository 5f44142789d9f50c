package metrics

// RunSummary captures row counts and timing for one pipeline invocation. It
// is surfaced in response headers and logs rather than persisted.
type RunSummary struct {
	RunID      string `json:"runId"`
	Rows       int    `json:"rows"`
	Fuzzy      int    `json:"fuzzy,omitempty"`
	Keyword    int    `json:"keyword,omitempty"`
	Unmapped   int    `json:"unmapped,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// IsZero reports whether the summary carries no data.
func (s RunSummary) IsZero() bool {
	return s.RunID == "" && s.Rows == 0 && s.DurationMs == 0
}
