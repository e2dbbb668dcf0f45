// Package analytics is the shared sink for audit findings and
// environment-reported failures. It keeps a bounded history, counts
// occurrences per {type, severity} trend and raises alerts when a trend
// recurs.
package analytics

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"wcag-audit/internal/model"
)

const (
	// DefaultCapacity is how many records History retains.
	DefaultCapacity = 100
	// DefaultThreshold is the trend count at which alerts start.
	DefaultThreshold = 5
	// recentCount is how many records Report includes.
	recentCount = 10

	TypeGlobal    = "global"
	TypeRejection = "promise-rejection"
	TypeReporting = "reporting"
	TypeUnknown   = "unknown"
)

// Notifier delivers trend alerts. Implementations should not block.
type Notifier interface {
	Notify(alert model.Alert) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(model.Alert) error

func (f NotifierFunc) Notify(alert model.Alert) error {
	return f(alert)
}

// Option configures an Analytics.
type Option func(*Analytics)

func WithCapacity(n int) Option {
	return func(a *Analytics) {
		if n > 0 {
			a.capacity = n
		}
	}
}

func WithThreshold(n int) Option {
	return func(a *Analytics) {
		if n > 0 {
			a.threshold = n
		}
	}
}

func WithClock(c clock.PassiveClock) Option {
	return func(a *Analytics) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(a *Analytics) {
		a.notifier = n
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *Analytics) {
		a.metrics = m
	}
}

// Analytics is safe for concurrent use. Each append, counter update and
// trend evaluation happens under one lock; alerts are delivered after the
// lock is released.
type Analytics struct {
	logger    *zap.Logger
	clock     clock.PassiveClock
	notifier  Notifier
	metrics   *Metrics
	capacity  int
	threshold int
	seq       atomic.Uint64

	mu      sync.Mutex
	history []model.ErrorRecord
	trends  model.TrendCounters
}

func New(logger *zap.Logger, opts ...Option) *Analytics {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analytics{
		logger:    logger,
		clock:     clock.RealClock{},
		capacity:  DefaultCapacity,
		threshold: DefaultThreshold,
		trends:    model.TrendCounters{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Capture normalizes an environment-reported failure and logs it.
// Uncaught failures are critical, rejections high.
func (a *Analytics) Capture(ev model.Event) model.ErrorRecord {
	now := a.clock.Now()
	rec := model.ErrorRecord{
		Message:   ev.Message,
		Stack:     ev.Stack,
		Timestamp: now,
		Context:   ev.Context,
	}
	switch ev.Kind {
	case model.EventRejection:
		rec.Type = TypeRejection
		rec.Severity = model.SeverityHigh
		rec.ID = model.TimeID("promise-rejection", now, a.seq.Add(1))
		if rec.Message == "" {
			rec.Message = "unhandled rejection"
		}
	default:
		rec.Type = TypeGlobal
		rec.Severity = model.SeverityCritical
		rec.ID = model.TimeID("global-error", now, a.seq.Add(1))
		if rec.Message == "" {
			rec.Message = "uncaught error"
		}
	}
	return a.LogError(rec)
}

// LogError normalizes in, appends it to the history, bumps its trend
// counter and re-evaluates trends. It returns the stored record.
func (a *Analytics) LogError(in model.Recordable) (rec model.ErrorRecord) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("log error failed",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	if in == nil {
		in = model.ErrorRecord{}
	}
	rec = a.normalize(in.ErrorRecord())

	alerts := a.append(rec, true)
	a.emit(rec)
	a.deliver(alerts)
	return rec
}

// AnalyzeTrends raises one alert for every trend at or over the threshold.
func (a *Analytics) AnalyzeTrends() []model.Alert {
	a.mu.Lock()
	alerts := a.trendsLocked()
	a.mu.Unlock()

	a.deliver(alerts)
	return alerts
}

// History returns a copy of the retained records, oldest first.
func (a *Analytics) History() []model.ErrorRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneRecords(a.history)
}

// Report summarizes the current state without changing it.
func (a *Analytics) Report() model.ErrorReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	counters := make(model.TrendCounters, len(a.trends))
	for k, v := range a.trends {
		counters[k] = v
	}
	start := len(a.history) - recentCount
	if start < 0 {
		start = 0
	}
	return model.ErrorReport{
		TotalErrors:   len(a.history),
		TrendCounters: counters,
		Recent:        cloneRecords(a.history[start:]),
	}
}

// Reset drops the history and every trend counter.
func (a *Analytics) Reset() {
	a.mu.Lock()
	a.history = nil
	a.trends = model.TrendCounters{}
	a.mu.Unlock()

	a.metrics.observeHistory(0)
	a.logger.Debug("analytics reset")
}

func (a *Analytics) normalize(r model.ErrorRecord) model.ErrorRecord {
	r = r.Clone()
	if r.Timestamp.IsZero() {
		r.Timestamp = a.clock.Now()
	}
	if r.ID == "" {
		r.ID = model.TimeID("error", r.Timestamp, a.seq.Add(1))
	}
	if r.Type == "" {
		r.Type = TypeUnknown
	}
	if !r.Severity.Valid() {
		r.Severity = model.SeverityMedium
	}
	if r.Context == nil {
		r.Context = map[string]any{}
	}
	return r
}

// append stores rec, evicting the oldest record at capacity. When analyze
// is set the trends are evaluated inside the same critical section.
func (a *Analytics) append(rec model.ErrorRecord, analyze bool) []model.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.history) >= a.capacity {
		drop := len(a.history) - a.capacity + 1
		a.history = append(a.history[:0:0], a.history[drop:]...)
	}
	a.history = append(a.history, rec)
	a.trends[model.TrendKey(rec.Type, rec.Severity)]++

	a.metrics.observeRecord(rec)
	a.metrics.observeHistory(len(a.history))

	if !analyze {
		return nil
	}
	return a.trendsLocked()
}

func (a *Analytics) trendsLocked() []model.Alert {
	keys := make([]string, 0, len(a.trends))
	for k, n := range a.trends {
		if n >= a.threshold {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	alerts := make([]model.Alert, 0, len(keys))
	for _, k := range keys {
		alerts = append(alerts, model.Alert{Trend: k, Count: a.trends[k]})
	}
	return alerts
}

// deliver hands alerts to the notifier. A failed delivery is recorded as a
// critical "reporting" record; that record does not re-run trend analysis.
func (a *Analytics) deliver(alerts []model.Alert) {
	for _, al := range alerts {
		a.logger.Warn("error trend alert",
			zap.String("trend", al.Trend),
			zap.Int("count", al.Count))
		a.metrics.observeAlert(al)

		if a.notifier == nil {
			continue
		}
		if err := notify(a.notifier, al); err != nil {
			rec := a.normalize(model.ErrorRecord{
				Type:     TypeReporting,
				Severity: model.SeverityCritical,
				Message:  fmt.Sprintf("error reporting failed: %v", err),
				Context:  map[string]any{"trend": al.Trend, "count": al.Count},
			})
			a.append(rec, false)
			a.emit(rec)
		}
	}
}

func notify(n Notifier, al model.Alert) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return n.Notify(al)
}

// emit writes one log line at the level matching rec's severity tier.
func (a *Analytics) emit(rec model.ErrorRecord) {
	fields := []zap.Field{
		zap.String("id", rec.ID),
		zap.String("type", rec.Type),
		zap.String("severity", string(rec.Severity)),
	}
	if rec.Stack != "" {
		fields = append(fields, zap.String("stack", rec.Stack))
	}
	switch rec.Severity {
	case model.SeverityCritical:
		a.logger.Error(rec.Message, fields...)
	case model.SeverityHigh:
		a.logger.Warn(rec.Message, fields...)
	case model.SeverityMedium:
		a.logger.Info(rec.Message, fields...)
	default:
		a.logger.Debug(rec.Message, fields...)
	}
}

func cloneRecords(in []model.ErrorRecord) []model.ErrorRecord {
	out := make([]model.ErrorRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
