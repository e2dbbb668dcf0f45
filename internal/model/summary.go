package model

// ScanSummary is the single-line machine-readable result printed in CI mode.
type ScanSummary struct {
	RunID        string          `json:"runId"`
	TimestampUtc string          `json:"timestampUtc"`
	Overall      float64         `json:"overall"`
	Posture      string          `json:"posture"`
	Status       string          `json:"status"` // PASSED/FAILED
	MinScore     float64         `json:"minScore"`
	WCAGLevel    WCAGLevel       `json:"wcagLevel"`
	Issues       int             `json:"issues"`
	Categories   []CategoryScore `json:"categories"`
	Trend        string          `json:"trend"`
	Delta        float64         `json:"delta"`
}
