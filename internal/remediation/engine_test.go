package remediation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcag-audit/internal/model"
)

func issue(typ string, sev model.Severity, refs ...string) model.Issue {
	return model.Issue{Type: typ, Category: "c", Severity: sev, AffectedElements: refs}
}

func TestGenerateGroupsAndOrders(t *testing.T) {
	issues := []model.Issue{
		issue("focus-description", model.SeverityLow, "A"),
		issue("keyboard-navigation", model.SeverityMedium, "A"),
		issue("focus-description", model.SeverityLow, "BUTTON"),
		{Type: "color-contrast", Category: model.CategoryVisual, Severity: model.SeverityHigh,
			AffectedElements: []string{"P#x"},
			Remediation:      "Adjust colors; try text color rgb(120,120,120)"},
		issue("keyboard-navigation", model.SeverityMedium, "INPUT"),
	}

	steps := Generate(issues)
	require.Len(t, steps, 3)

	assert.Equal(t, "color-contrast", steps[0].IssueType)
	assert.Equal(t, 2, steps[0].Priority)
	assert.Equal(t, []string{"P#x: try text color rgb(120,120,120)"}, steps[0].Hints)

	assert.Equal(t, "keyboard-navigation", steps[1].IssueType)
	assert.Equal(t, 3, steps[1].Priority)
	assert.Equal(t, 2, steps[1].Count)
	assert.Equal(t, []string{"A", "INPUT"}, steps[1].Elements)

	assert.Equal(t, "focus-description", steps[2].IssueType)
	assert.Equal(t, 4, steps[2].Priority)
}

func TestGenerateWorstSeverityWins(t *testing.T) {
	steps := Generate([]model.Issue{
		issue("custom", model.SeverityLow),
		issue("custom", model.SeverityCritical),
	})
	require.Len(t, steps, 1)
	assert.Equal(t, 1, steps[0].Priority)
	assert.Equal(t, "Resolve custom (2)", steps[0].Title)
}

func TestGenerateCapsElements(t *testing.T) {
	var issues []model.Issue
	for _, ref := range []string{"A", "B", "C", "D", "E", "F", "G", "A"} {
		issues = append(issues, issue("focus-description", model.SeverityLow, ref))
	}
	steps := Generate(issues)
	require.Len(t, steps, 1)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "+2 more"}, steps[0].Elements)
	assert.Equal(t, 8, steps[0].Count)
}

func TestGenerateAriaHints(t *testing.T) {
	steps := Generate([]model.Issue{
		{Type: "missing-aria-attribute", Severity: model.SeverityMedium, Message: "Missing important ARIA attribute: role"},
		{Type: "missing-aria-attribute", Severity: model.SeverityMedium, Message: "Missing important ARIA attribute: aria-label"},
		{Type: "missing-aria-attribute", Severity: model.SeverityMedium, Message: "Missing important ARIA attribute: role"},
	})
	require.Len(t, steps, 1)
	assert.Equal(t, []string{
		"aria-label missing on 1 element(s)",
		"role missing on 2 element(s)",
	}, steps[0].Hints)
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, Generate(nil))
}

func TestHeal(t *testing.T) {
	assert.Empty(t, Heal(model.ErrorRecord{Type: "global", Message: "nil map"}))

	hints := Heal(model.ErrorRecord{
		Type:    "promise-rejection",
		Context: map[string]any{"renderTime": 350, "browser": "Internet Explorer"},
	})
	require.Len(t, hints, 3)
	assert.Contains(t, hints[0], "async-error-handling")
	assert.Contains(t, hints[1], "browser-compatibility")
	assert.Contains(t, hints[2], "performance-optimization")
	assert.Contains(t, hints[2], "350ms")

	fast := Heal(model.ErrorRecord{Context: map[string]any{"renderTime": 150 * time.Millisecond}})
	assert.Empty(t, fast)

	slow := Heal(model.ErrorRecord{Context: map[string]any{"renderTime": 250.0}})
	require.Len(t, slow, 1)
}
