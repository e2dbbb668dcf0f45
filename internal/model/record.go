package model

import "time"

// ErrorRecord is one entry in the analytics history. Records are never
// mutated after they have been logged.
type ErrorRecord struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Stack     string         `json:"stack,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// Recordable is anything that can be logged into analytics.
// Both ErrorRecord and Issue implement it.
type Recordable interface {
	ErrorRecord() ErrorRecord
}

func (r ErrorRecord) ErrorRecord() ErrorRecord {
	return r
}

// Clone returns a copy of r whose Context map is not shared with r.
func (r ErrorRecord) Clone() ErrorRecord {
	if r.Context != nil {
		ctx := make(map[string]any, len(r.Context))
		for k, v := range r.Context {
			ctx[k] = v
		}
		r.Context = ctx
	}
	return r
}

// EventKind distinguishes the two environment-reported failure classes.
type EventKind string

const (
	// EventUncaught is a failure nobody handled (a recovered panic in Go).
	EventUncaught EventKind = "uncaught"
	// EventRejection is an asynchronous failure nobody waited on.
	EventRejection EventKind = "rejection"
)

// Event is an environment-reported failure before normalization.
type Event struct {
	Kind    EventKind
	Message string
	Stack   string
	Context map[string]any
}

// Alert is raised when a trend counter reaches the alert threshold.
type Alert struct {
	Trend string `json:"trend"`
	Count int    `json:"count"`
}

// TrendCounters maps "{type}-{severity}" to an occurrence count.
type TrendCounters map[string]int

// TrendKey builds the counter key for a record type and severity.
func TrendKey(typ string, sev Severity) string {
	return typ + "-" + string(sev)
}

// ErrorReport is a point-in-time view of analytics state.
type ErrorReport struct {
	TotalErrors   int           `json:"totalErrors"`
	TrendCounters TrendCounters `json:"trendCounters"`
	Recent        []ErrorRecord `json:"recentErrors"`
}
