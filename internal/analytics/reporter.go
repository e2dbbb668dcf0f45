package analytics

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"wcag-audit/internal/model"
)

// RunReporter calls fn with a fresh Report every period until ctx is done.
// The first report is produced immediately.
func RunReporter(ctx context.Context, a *Analytics, period time.Duration, fn func(model.ErrorReport)) {
	wait.UntilWithContext(ctx, func(context.Context) {
		fn(a.Report())
	}, period)
}
