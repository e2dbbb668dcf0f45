package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcag-audit/internal/model"
)

func report(id string, score float64, issues ...model.Issue) model.AuditReport {
	return model.AuditReport{ID: id, OverallScore: score, Issues: issues, Passed: len(issues) == 0}
}

func TestRecordTrend(t *testing.T) {
	h := New(0)

	tr := h.Record(report("a", 80, model.Issue{Category: "c", Severity: model.SeverityCritical}))
	assert.Equal(t, FirstRun, tr.Label)
	assert.Equal(t, -1.0, tr.Previous)

	tr = h.Record(report("b", 90))
	assert.Equal(t, Improving, tr.Label)
	assert.Equal(t, 10.0, tr.Delta)
	assert.Equal(t, 12.5, tr.DeltaPercent)

	tr = h.Record(report("c", 90))
	assert.Equal(t, Same, tr.Label)

	tr = h.Record(report("d", 45.5))
	assert.Equal(t, Declining, tr.Label)
	assert.Equal(t, -44.5, tr.Delta)

	last := h.Last(10)
	require.Len(t, last, 4)
	assert.Equal(t, "a", last[0].RunID)
	assert.Equal(t, 1, last[0].Issues)
	require.Len(t, last[0].Categories, 1)
	assert.True(t, last[1].Passed)
}

func TestHistoryLimit(t *testing.T) {
	h := New(3)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		h.Record(report(id, 100))
	}
	assert.Equal(t, 3, h.Len())
	last := h.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "4", last[0].RunID)
	assert.Equal(t, "5", last[1].RunID)
	assert.Len(t, h.Last(0), 3)
}

func TestComputeFromZero(t *testing.T) {
	tr := Compute(0, 50)
	assert.Equal(t, Improving, tr.Label)
	assert.Equal(t, 0.0, tr.DeltaPercent)
}
