// Package history keeps the caller-side record of past audit runs and
// derives the score trend between consecutive runs.
package history

import (
	"math"
	"sync"
	"time"

	"wcag-audit/internal/analyze"
	"wcag-audit/internal/model"
)

// DefaultLimit is how many entries a History keeps unless told otherwise.
const DefaultLimit = 200

// Trend labels.
const (
	FirstRun  = "FIRST_RUN"
	Improving = "IMPROVING"
	Declining = "DECLINING"
	Same      = "SAME"
)

// Entry is the summary of one run kept in the history.
type Entry struct {
	RunID      string                `json:"runId"`
	TestedAt   time.Time             `json:"testedAt"`
	WCAGLevel  model.WCAGLevel       `json:"wcagLevel"`
	Overall    float64               `json:"overall"`
	Issues     int                   `json:"issues"`
	Passed     bool                  `json:"passed"`
	Categories []model.CategoryScore `json:"categories,omitempty"`
}

// Trend compares a run with the one before it.
type Trend struct {
	Previous     float64 `json:"previous"`
	Current      float64 `json:"current"`
	Delta        float64 `json:"delta"`
	DeltaPercent float64 `json:"deltaPercent"`
	Label        string  `json:"label"`
}

// History is append-only and capped; the oldest entries fall off first.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record appends r and returns its trend against the previous entry.
func (h *History) Record(r model.AuditReport) Trend {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := Entry{
		RunID:      r.ID,
		TestedAt:   r.TestedAt,
		WCAGLevel:  r.WCAGLevel,
		Overall:    r.OverallScore,
		Issues:     len(r.Issues),
		Passed:     r.Passed,
		Categories: analyze.BuildCategories(r),
	}

	tr := Trend{Previous: -1, Current: entry.Overall, Label: FirstRun}
	if n := len(h.entries); n > 0 {
		tr = Compute(h.entries[n-1].Overall, entry.Overall)
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = append([]Entry(nil), h.entries[len(h.entries)-h.limit:]...)
	}
	return tr
}

// Last returns up to n most recent entries, oldest first. n <= 0 returns
// every entry.
func (h *History) Last(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	start := len(h.entries) - n
	if start < 0 || n <= 0 {
		start = 0
	}
	return append([]Entry(nil), h.entries[start:]...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Compute derives the trend from prev to curr.
func Compute(prev, curr float64) Trend {
	d := curr - prev

	label := Same
	if d > 0.00001 {
		label = Improving
	} else if d < -0.00001 {
		label = Declining
	}

	dp := 0.0
	if math.Abs(prev) > 0.00001 {
		dp = (d / prev) * 100.0
	}

	return Trend{
		Previous:     round(prev, 2),
		Current:      round(curr, 2),
		Delta:        round(d, 2),
		DeltaPercent: round(dp, 2),
		Label:        label,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
