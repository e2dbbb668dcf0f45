package analyze

import "wcag-audit/internal/model"

// penaltyPerWeight is the score lost per unit of severity weight; one
// critical issue costs 10 points.
const penaltyPerWeight = 10

// Score is max(0, 100 - 10*Σ severity weight). It is not normalized by
// issue count.
func Score(issues []model.Issue) float64 {
	total := 0.0
	for _, is := range issues {
		total += is.Severity.Weight()
	}
	return clamp(100 - penaltyPerWeight*total)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
