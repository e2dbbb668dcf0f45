package remediation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"wcag-audit/internal/model"
)

// slowRender is the render time above which the performance strategy applies.
const slowRender = 200 * time.Millisecond

// Strategy inspects a logged record and returns a hint, or "" when it does
// not apply.
type Strategy func(model.ErrorRecord) string

// Strategies are applied by Heal in name order.
var Strategies = map[string]Strategy{
	"performance-optimization": performanceOptimization,
	"async-error-handling":     asyncErrorHandling,
	"browser-compatibility":    browserCompatibility,
}

// Heal runs every strategy against rec and collects the hints that apply.
func Heal(rec model.ErrorRecord) []string {
	names := make([]string, 0, len(Strategies))
	for n := range Strategies {
		names = append(names, n)
	}
	sort.Strings(names)

	var hints []string
	for _, n := range names {
		if h := Strategies[n](rec); h != "" {
			hints = append(hints, n+": "+h)
		}
	}
	return hints
}

func performanceOptimization(rec model.ErrorRecord) string {
	d, ok := renderTime(rec.Context["renderTime"])
	if !ok || d <= slowRender {
		return ""
	}
	return fmt.Sprintf("render took %s; memoize expensive components and split rarely used code", d)
}

func asyncErrorHandling(rec model.ErrorRecord) string {
	if rec.Type != "promise-rejection" && !strings.Contains(strings.ToLower(rec.Message), "promise") {
		return ""
	}
	return "handle the failure where the asynchronous work is started and surface a user-facing message"
}

func browserCompatibility(rec model.ErrorRecord) string {
	if b, _ := rec.Context["browser"].(string); b != "Internet Explorer" {
		return ""
	}
	return "load polyfills for Promise and fetch or transpile for the legacy target"
}

// renderTime accepts a duration or a number of milliseconds.
func renderTime(v any) (time.Duration, bool) {
	switch t := v.(type) {
	case time.Duration:
		return t, true
	case int:
		return time.Duration(t) * time.Millisecond, true
	case int64:
		return time.Duration(t) * time.Millisecond, true
	case float64:
		return time.Duration(t * float64(time.Millisecond)), true
	default:
		return 0, false
	}
}
