// Package compare diffs an audit report against an earlier one.
package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wcag-audit/internal/model"
)

// Diff compares prev against curr. Issue ids are random per run, so issues
// are matched on type, affected elements and message. Repeated identical
// issues are matched by count.
func Diff(prev, curr model.AuditReport) model.Comparison {
	return model.Comparison{
		PreviousID:       prev.ID,
		PreviousTestedAt: prev.TestedAt,
		PreviousScore:    prev.OverallScore,
		ScoreDelta:       curr.OverallScore - prev.OverallScore,
		IssuesNew:        subtract(curr.Issues, prev.Issues),
		IssuesResolved:   subtract(prev.Issues, curr.Issues),
	}
}

// LoadReport reads a report previously written as JSON.
func LoadReport(path string) (model.AuditReport, error) {
	var r model.AuditReport
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read report %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}

// subtract returns the issues of a not matched by an issue of b, in a's order.
func subtract(a, b []model.Issue) []model.Issue {
	counts := make(map[string]int, len(b))
	for _, is := range b {
		counts[key(is)]++
	}
	var out []model.Issue
	for _, is := range a {
		k := key(is)
		if counts[k] > 0 {
			counts[k]--
			continue
		}
		out = append(out, is)
	}
	return out
}

func key(is model.Issue) string {
	return is.Type + "|" + strings.Join(is.AffectedElements, ",") + "|" + is.Message
}
