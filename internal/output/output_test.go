package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcag-audit/internal/model"
)

func sampleReport() model.AuditReport {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.AuditReport{
		ID:           "run-1",
		WCAGLevel:    model.LevelAA,
		OverallScore: 87.5,
		TestedAt:     ts,
		Checks: []model.Check{
			{ID: "color-contrast", Title: "Color contrast", Category: model.CategoryVisual, Status: model.CheckFail, Issues: 1},
		},
		Issues: []model.Issue{
			{ID: "i1", Type: "heading-hierarchy", Category: model.CategoryStructure, Severity: model.SeverityLow,
				Message: "Heading level skipped", AffectedElements: []string{"H4"}, Timestamp: ts},
			{ID: "i2", Type: "color-contrast", Category: model.CategoryVisual, Severity: model.SeverityHigh,
				Message: "Low contrast on P#intro", Remediation: "Darken P#intro", AffectedElements: []string{"P#intro"}, Timestamp: ts},
			{ID: "i3", Type: "focus-description", Category: model.CategoryInteraction, Severity: model.SeverityMedium,
				Message: "Missing label", AffectedElements: []string{"BUTTON#intro", "BUTTON#go"}, Timestamp: ts},
		},
	}
}

func TestPosture(t *testing.T) {
	cases := map[float64]string{
		100:   PostureLow,
		90:    PostureLow,
		89.99: PostureModerate,
		70:    PostureModerate,
		50:    PostureHigh,
		49.5:  PostureCritical,
		0:     PostureCritical,
	}
	for score, want := range cases {
		assert.Equal(t, want, Posture(score), "score %v", score)
	}
}

func TestBuildSummary(t *testing.T) {
	r := sampleReport()
	now := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

	s := BuildSummary(r, 90, "IMPROVING", 2.5, now)
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, "2026-03-01T13:00:00Z", s.TimestampUtc)
	assert.Equal(t, "FAILED", s.Status)
	assert.Equal(t, PostureModerate, s.Posture)
	assert.Equal(t, 3, s.Issues)
	assert.Len(t, s.Categories, 3)
	assert.Equal(t, 2.5, s.Delta)

	s = BuildSummary(r, 87.5, "SAME", 0, now)
	assert.Equal(t, "PASSED", s.Status)

	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, s))
	var decoded model.ScanSummary
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded))
	assert.Equal(t, s.RunID, decoded.RunID)
}

func TestRenderMarkdownOrdersBySeverityWithoutMutating(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, r, Extras{
		Steps:      []model.RemediationStep{{Priority: 1, Title: "Fix contrast", Count: 1}},
		Comparison: &model.Comparison{PreviousID: "run-0", PreviousScore: 80, ScoreDelta: 7.5},
	}))
	md := buf.String()

	high := strings.Index(md, "[HIGH] color-contrast")
	medium := strings.Index(md, "[MEDIUM] focus-description")
	low := strings.Index(md, "[LOW] heading-hierarchy")
	require.True(t, high >= 0 && medium >= 0 && low >= 0, md)
	assert.Less(t, high, medium)
	assert.Less(t, medium, low)
	assert.Contains(t, md, "Compared to run-0")
	assert.Contains(t, md, "(+7.50)")
	assert.Contains(t, md, "P1 Fix contrast")

	assert.Equal(t, "i1", r.Issues[0].ID)
	assert.Equal(t, "i2", r.Issues[1].ID)
}

func TestRenderMarkdownNoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, model.AuditReport{OverallScore: 100, Passed: true}, Extras{}))
	assert.Contains(t, buf.String(), "No accessibility issues detected.")
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()
	require.NoError(t, WriteCSV(dir, r, Extras{
		Categories: []model.CategoryScore{{Name: model.CategoryVisual, Issues: 1, Weight: 0.75, Penalty: 7.5, High: 1}},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "csv", "issues.csv"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "BUTTON#intro;BUTTON#go", rows[3][6])
	assert.Equal(t, "2026-03-01T12:00:00Z", rows[3][7])

	for _, name := range []string{"checks.csv", "categories.csv", "remediation.csv"} {
		assert.FileExists(t, filepath.Join(dir, "csv", name))
	}
}

func TestWriteJSONAndHTML(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()
	r.Issues[0].Message = "<script>alert(1)</script>"

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, WriteJSON(jsonPath, r))
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var back model.AuditReport
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, r.ID, back.ID)
	assert.Len(t, back.Issues, 3)

	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, WriteHTML(htmlPath, r, Extras{}))
	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "87.50 / 100")
	assert.NotContains(t, string(page), "<script>alert(1)</script>")
}

func TestRedact(t *testing.T) {
	r := sampleReport()
	red := Redact(r)

	assert.Equal(t, []string{"H4"}, red.Issues[0].AffectedElements)
	assert.Equal(t, []string{"P#element-1"}, red.Issues[1].AffectedElements)
	assert.Equal(t, "Low contrast on P#element-1", red.Issues[1].Message)
	assert.Equal(t, "Darken P#element-1", red.Issues[1].Remediation)
	// same id, different tag: same token
	assert.Equal(t, []string{"BUTTON#element-1", "BUTTON#element-2"}, red.Issues[2].AffectedElements)

	assert.Equal(t, "P#intro", r.Issues[1].AffectedElements[0])

	path := filepath.Join(t.TempDir(), "redacted.json")
	require.NoError(t, WriteRedactedJSON(path, r))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "#intro")
}
