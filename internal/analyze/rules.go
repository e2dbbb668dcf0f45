package analyze

import (
	"fmt"

	"wcag-audit/internal/contrast"
	"wcag-audit/internal/document"
	"wcag-audit/internal/model"
)

// Issue types emitted by the checks.
const (
	TypeColorContrast  = "color-contrast"
	TypeKeyboardNav    = "keyboard-navigation"
	TypeHeadingOrder   = "heading-hierarchy"
	TypeMissingAria    = "missing-aria-attribute"
	TypeFocusDesc      = "focus-description"
	TypePerfBottleneck = "performance-bottleneck"
)

const (
	attrTabIndex        = "tabindex"
	attrRole            = "role"
	attrAriaLabel       = "aria-label"
	attrAriaDescribedBy = "aria-describedby"
)

// requiredAria is checked on every element regardless of its role.
var requiredAria = []string{attrRole, attrAriaLabel, attrAriaDescribedBy}

// checkColorContrast flags visible elements whose text/background pair is
// below the level's minimum ratio.
func checkColorContrast(doc document.Document, cfg model.Config) []model.Issue {
	var issues []model.Issue
	want := cfg.WCAGLevel.MinContrast()

	for _, el := range doc.Elements(document.Visible) {
		ratio := contrast.Ratio(el.Color, el.Background)
		if ratio >= want {
			continue
		}
		fix := "Adjust background and text colors to meet WCAG contrast requirements"
		if s := contrast.Suggest(el.Color, el.Background); s.Foreground != "" {
			fix += fmt.Sprintf("; try text color %s", s.Foreground)
		} else if s.Background != "" {
			fix += fmt.Sprintf("; try background color %s", s.Background)
		}
		issues = append(issues, newIssue("contrast", TypeColorContrast, model.CategoryVisual, model.SeverityHigh,
			fmt.Sprintf("Insufficient color contrast detected (%.2f:1, %s requires %.1f:1)", ratio, cfg.WCAGLevel, want),
			fix, el.Ref()))
	}
	return issues
}

// checkKeyboardNavigation flags focusable elements without an explicit
// tab order.
func checkKeyboardNavigation(doc document.Document, _ model.Config) []model.Issue {
	var issues []model.Issue
	for _, el := range doc.Elements(document.Interactive) {
		if el.HasAttr(attrTabIndex) {
			continue
		}
		issues = append(issues, newIssue("keyboard-nav", TypeKeyboardNav, model.CategoryInteraction, model.SeverityMedium,
			"Element lacks proper keyboard navigation support",
			"Add appropriate tabindex and ensure keyboard focusability", el.Ref()))
	}
	return issues
}

// checkSemanticStructure flags headings that skip a level relative to the
// previous heading. The document starts at level 0, so a leading h2 is a skip.
func checkSemanticStructure(doc document.Document, _ model.Config) []model.Issue {
	var issues []model.Issue
	last := 0
	for _, el := range doc.Elements(document.Headings) {
		level := el.HeadingLevel()
		if level > last+1 {
			issues = append(issues, newIssue("semantic-structure", TypeHeadingOrder, model.CategoryStructure, model.SeverityMedium,
				fmt.Sprintf("Improper heading hierarchy detected: h%d follows h%d", level, last),
				"Ensure headings follow a logical, sequential order", el.Ref()))
		}
		last = level
	}
	return issues
}

// checkAriaAttributes flags every element missing any of requiredAria.
func checkAriaAttributes(doc document.Document, _ model.Config) []model.Issue {
	var issues []model.Issue
	for _, el := range doc.Elements(document.All) {
		for _, attr := range requiredAria {
			if el.HasAttr(attr) {
				continue
			}
			issues = append(issues, newIssue("aria", TypeMissingAria, model.CategorySemantic, model.SeverityMedium,
				"Missing important ARIA attribute: "+attr,
				fmt.Sprintf("Add %s attribute to improve screen reader compatibility", attr), el.Ref()))
		}
	}
	return issues
}

// checkFocusManagement flags focusable elements without a description.
func checkFocusManagement(doc document.Document, _ model.Config) []model.Issue {
	var issues []model.Issue
	for _, el := range doc.Elements(document.Interactive) {
		if el.HasAttr(attrAriaDescribedBy) {
			continue
		}
		issues = append(issues, newIssue("focus-management", TypeFocusDesc, model.CategoryInteraction, model.SeverityLow,
			"Element lacks focus description",
			"Add aria-describedby to provide context for screen readers", el.Ref()))
	}
	return issues
}

// checkPerformanceMetrics flags measurements slower than the threshold.
func checkPerformanceMetrics(doc document.Document, cfg model.Config) []model.Issue {
	var issues []model.Issue
	for _, m := range doc.Measurements() {
		if m.Duration <= cfg.PerformanceThreshold {
			continue
		}
		issues = append(issues, newIssue("performance", TypePerfBottleneck, model.CategoryPerformance, model.SeverityMedium,
			fmt.Sprintf("Performance bottleneck detected: %s (%s)", m.Name, m.Duration),
			"Optimize rendering and reduce complex DOM manipulations"))
	}
	return issues
}

func newIssue(prefix, typ, category string, sev model.Severity, message, remediation string, refs ...string) model.Issue {
	return model.Issue{
		ID:               model.NewID(prefix),
		Type:             typ,
		Category:         category,
		Severity:         sev,
		Message:          message,
		Remediation:      remediation,
		AffectedElements: refs,
	}
}
