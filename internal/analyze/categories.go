package analyze

import "wcag-audit/internal/model"

// BuildCategories groups a report's issues by category, in order of first
// appearance.
func BuildCategories(r model.AuditReport) []model.CategoryScore {
	idx := map[string]int{}
	cats := []model.CategoryScore{}
	for _, is := range r.Issues {
		i, ok := idx[is.Category]
		if !ok {
			i = len(cats)
			idx[is.Category] = i
			cats = append(cats, model.CategoryScore{Name: is.Category})
		}
		c := &cats[i]
		c.Issues++
		c.Weight += is.Severity.Weight()
		c.Penalty = c.Weight * penaltyPerWeight
		switch is.Severity {
		case model.SeverityCritical:
			c.Critical++
		case model.SeverityHigh:
			c.High++
		case model.SeverityMedium:
			c.Medium++
		default:
			c.Low++
		}
	}
	return cats
}
