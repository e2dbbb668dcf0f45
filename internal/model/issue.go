package model

import "time"

// Issue categories produced by the built-in checks.
const (
	CategoryVisual      = "visual-accessibility"
	CategoryInteraction = "interaction-accessibility"
	CategoryStructure   = "semantic-structure"
	CategorySemantic    = "semantic-accessibility"
	CategoryPerformance = "performance-accessibility"
)

// Issue is a single accessibility deficiency found by an audit run.
type Issue struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	Severity         Severity  `json:"severity"`
	Message          string    `json:"message"`
	Remediation      string    `json:"remediation,omitempty"`
	AffectedElements []string  `json:"affectedElements,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// ErrorRecord folds category, remediation and affected elements into the
// record context. A zero Timestamp stays zero so the sink stamps it.
func (i Issue) ErrorRecord() ErrorRecord {
	ctx := map[string]any{"category": i.Category}
	if i.Remediation != "" {
		ctx["remediation"] = i.Remediation
	}
	if len(i.AffectedElements) > 0 {
		ctx["affectedElements"] = append([]string(nil), i.AffectedElements...)
	}
	return ErrorRecord{
		ID:        i.ID,
		Type:      i.Type,
		Severity:  i.Severity,
		Message:   i.Message,
		Timestamp: i.Timestamp,
		Context:   ctx,
	}
}
