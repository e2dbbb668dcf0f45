package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"wcag-audit/internal/analyze"
	"wcag-audit/internal/model"
)

// Postures, from least to most exposed.
const (
	PostureLow      = "LOW"
	PostureModerate = "MODERATE"
	PostureHigh     = "HIGH"
	PostureCritical = "CRITICAL"
)

// Posture buckets an overall score into the exposure a page carries.
func Posture(score float64) string {
	switch {
	case score >= 90:
		return PostureLow
	case score >= 70:
		return PostureModerate
	case score >= 50:
		return PostureHigh
	default:
		return PostureCritical
	}
}

// BuildSummary assembles the CI result line for r.
func BuildSummary(r model.AuditReport, minScore float64, trendLabel string, trendDelta float64, now time.Time) model.ScanSummary {
	s := model.ScanSummary{
		RunID:        r.ID,
		TimestampUtc: now.UTC().Format(time.RFC3339),
		Overall:      r.OverallScore,
		Posture:      Posture(r.OverallScore),
		Status:       "PASSED",
		MinScore:     minScore,
		WCAGLevel:    r.WCAGLevel,
		Issues:       len(r.Issues),
		Categories:   analyze.BuildCategories(r),
		Trend:        trendLabel,
		Delta:        trendDelta,
	}
	if r.OverallScore < minScore {
		s.Status = "FAILED"
	}
	return s
}

// PrintSummary writes s as a single JSON line preceded by a blank line.
func PrintSummary(w io.Writer, s model.ScanSummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s\n", raw)
	return err
}
