package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"wcag-audit/internal/model"
)

// Extras carries the optional sections a written report may include.
type Extras struct {
	Steps      []model.RemediationStep
	Categories []model.CategoryScore
	Comparison *model.Comparison
}

func WriteMarkdown(path string, r model.AuditReport, x Extras) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderMarkdown(f, r, x)
}

// RenderMarkdown writes the report with issues ordered most severe first.
// r is not modified.
func RenderMarkdown(w io.Writer, r model.AuditReport, x Extras) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Accessibility Audit Report\n\n")
	fmt.Fprintf(&b, "## Overall Score: %.2f / 100\n\n", r.OverallScore)
	fmt.Fprintf(&b, "**WCAG level: %s** | **Posture: %s** | **Passed: %t**\n\n", r.WCAGLevel, Posture(r.OverallScore), r.Passed)

	if len(r.Checks) > 0 {
		fmt.Fprintf(&b, "### Checks\n")
		for _, c := range r.Checks {
			fmt.Fprintf(&b, "- %s: %s (%d issues)\n", c.Title, c.Status, c.Issues)
		}
		b.WriteString("\n")
	}

	if len(x.Categories) > 0 {
		fmt.Fprintf(&b, "### Category Breakdown\n")
		for _, c := range x.Categories {
			fmt.Fprintf(&b, "- %s: %d issues, -%.2f points\n", c.Name, c.Issues, c.Penalty)
		}
		b.WriteString("\n")
	}

	if x.Comparison != nil {
		c := x.Comparison
		fmt.Fprintf(&b, "### Compared to %s\n", c.PreviousID)
		fmt.Fprintf(&b, "- Score: %.2f -> %.2f (%+.2f)\n", c.PreviousScore, r.OverallScore, c.ScoreDelta)
		fmt.Fprintf(&b, "- New issues: %d\n", len(c.IssuesNew))
		fmt.Fprintf(&b, "- Resolved issues: %d\n\n", len(c.IssuesResolved))
	}

	fmt.Fprintf(&b, "## Issues\n\n")
	if len(r.Issues) == 0 {
		fmt.Fprintf(&b, "No accessibility issues detected.\n")
	} else {
		for _, is := range sortedIssues(r.Issues) {
			fmt.Fprintf(&b, "### [%s] %s\n", strings.ToUpper(string(is.Severity)), is.Type)
			fmt.Fprintf(&b, "- Issue: %s\n", is.Message)
			if len(is.AffectedElements) > 0 {
				fmt.Fprintf(&b, "- Elements: %s\n", strings.Join(is.AffectedElements, ", "))
			}
			fmt.Fprintf(&b, "- Remediation: %s\n\n", is.Remediation)
		}
	}

	if len(x.Steps) > 0 {
		fmt.Fprintf(&b, "## Remediation Plan\n\n")
		for i, s := range x.Steps {
			fmt.Fprintf(&b, "%d. **P%d %s** (%d) %s\n", i+1, s.Priority, s.Title, s.Count, s.Detail)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedIssues returns a copy ordered by severity, highest first, keeping
// check order within a tier.
func sortedIssues(in []model.Issue) []model.Issue {
	out := append([]model.Issue(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}
