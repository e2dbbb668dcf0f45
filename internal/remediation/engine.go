// Package remediation turns audit issues into prioritized fix steps and
// suggests healing hints for recurring runtime errors.
package remediation

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"wcag-audit/internal/model"
)

// maxElements caps how many element refs a step lists.
const maxElements = 5

// Generate produces one step per issue type, ordered by priority and then by
// first appearance in issues.
func Generate(issues []model.Issue) []model.RemediationStep {
	order := []string{}
	groups := map[string][]model.Issue{}
	for _, is := range issues {
		if _, ok := groups[is.Type]; !ok {
			order = append(order, is.Type)
		}
		groups[is.Type] = append(groups[is.Type], is)
	}

	steps := make([]model.RemediationStep, 0, len(order))
	for _, typ := range order {
		steps = append(steps, stepForIssues(typ, groups[typ]))
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})
	return steps
}

func stepForIssues(typ string, issues []model.Issue) model.RemediationStep {
	worst := issues[0].Severity
	for _, is := range issues[1:] {
		if is.Severity.Rank() > worst.Rank() {
			worst = is.Severity
		}
	}
	elements := elementRefs(issues)

	s := model.RemediationStep{
		Priority:  priority(worst),
		Category:  issues[0].Category,
		IssueType: typ,
		Count:     len(issues),
		Elements:  elements,
	}

	switch typ {
	case "color-contrast":
		s.Title = fmt.Sprintf("Raise text contrast on %d element(s)", len(issues))
		s.Detail = "Body text needs 4.5:1 against its background for AA and 7:1 for AAA."
		for _, is := range issues {
			if i := strings.Index(is.Remediation, "; try "); i >= 0 {
				s.Hints = append(s.Hints, fmt.Sprintf("%s: %s", strings.Join(is.AffectedElements, ","), is.Remediation[i+2:]))
			}
		}
	case "keyboard-navigation":
		s.Title = fmt.Sprintf("Make %d interactive element(s) keyboard reachable", len(issues))
		s.Detail = "Every control must be reachable with Tab in a logical order."
		s.Hints = []string{`<button tabindex="0">…</button>`}
	case "heading-hierarchy":
		s.Title = "Fix skipped heading levels"
		s.Detail = "Headings must not jump more than one level, e.g. h2 directly to h4."
	case "missing-aria-attribute":
		s.Title = fmt.Sprintf("Add missing ARIA attributes (%d)", len(issues))
		s.Detail = "Screen readers rely on role, aria-label and aria-describedby to announce elements."
		s.Hints = missingAttrs(issues)
	case "focus-description":
		s.Title = fmt.Sprintf("Describe %d focusable element(s)", len(issues))
		s.Detail = "Link each control to descriptive text with aria-describedby."
		s.Hints = []string{`<input aria-describedby="email-hint"> <p id="email-hint">…</p>`}
	case "performance-bottleneck":
		s.Title = fmt.Sprintf("Speed up %d slow measurement(s)", len(issues))
		s.Detail = "Long tasks delay assistive technology as much as they delay rendering."
		for _, is := range issues {
			s.Hints = append(s.Hints, is.Message)
		}
	default:
		s.Title = fmt.Sprintf("Resolve %s (%d)", typ, len(issues))
		s.Detail = issues[0].Remediation
	}
	return s
}

// priority maps severity onto 1 (fix first) .. 4.
func priority(s model.Severity) int {
	if r := s.Rank(); r >= 0 {
		return 4 - r
	}
	return 4
}

func elementRefs(issues []model.Issue) []string {
	seen := sets.New[string]()
	var out []string
	for _, is := range issues {
		for _, ref := range is.AffectedElements {
			if seen.Has(ref) {
				continue
			}
			seen.Insert(ref)
			out = append(out, ref)
		}
	}
	if len(out) > maxElements {
		out = append(out[:maxElements:maxElements], fmt.Sprintf("+%d more", len(out)-maxElements))
	}
	return out
}

func missingAttrs(issues []model.Issue) []string {
	counts := map[string]int{}
	for _, is := range issues {
		if _, attr, ok := strings.Cut(is.Message, ": "); ok {
			counts[attr]++
		}
	}
	attrs := sets.List(sets.KeySet(counts))
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, fmt.Sprintf("%s missing on %d element(s)", a, counts[a]))
	}
	return out
}
