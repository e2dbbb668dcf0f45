// Package analyze runs the accessibility checks over a document snapshot,
// scores the findings and forwards every finding to error analytics.
package analyze

import (
	"sync"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/clock"

	"wcag-audit/internal/capture"
	"wcag-audit/internal/document"
	"wcag-audit/internal/model"
)

// Sink receives every finding of a run and any panic raised by a check.
// *analytics.Analytics implements it.
type Sink interface {
	capture.Sink
	LogError(in model.Recordable) model.ErrorRecord
}

type check struct {
	id       string
	title    string
	category string
	enabled  func(model.Categories) bool
	run      func(document.Document, model.Config) []model.Issue
}

// checks run in this order; report issues keep it.
var checks = []check{
	{"color-contrast", "Color contrast", model.CategoryVisual,
		func(c model.Categories) bool { return c.ColorContrast }, checkColorContrast},
	{"keyboard-navigation", "Keyboard navigation", model.CategoryInteraction,
		func(c model.Categories) bool { return c.KeyboardNavigation }, checkKeyboardNavigation},
	{"semantic-structure", "Heading hierarchy", model.CategoryStructure,
		func(c model.Categories) bool { return c.SemanticStructure }, checkSemanticStructure},
	{"aria-attributes", "ARIA attributes", model.CategorySemantic,
		func(c model.Categories) bool { return c.AriaAttributes }, checkAriaAttributes},
	{"focus-management", "Focus management", model.CategoryInteraction,
		func(c model.Categories) bool { return c.FocusManagement }, checkFocusManagement},
	{"performance-metrics", "Performance metrics", model.CategoryPerformance,
		func(c model.Categories) bool { return c.PerformanceMetrics }, checkPerformanceMetrics},
}

// Auditor is safe to reconfigure while idle. A run reads the configuration
// once at its start.
type Auditor struct {
	sink   Sink
	logger *zap.Logger
	clock  clock.PassiveClock

	mu  sync.RWMutex
	cfg model.Config
}

// NewAuditor validates cfg and returns an Auditor reporting into sink.
// clk may be nil.
func NewAuditor(cfg model.Config, sink Sink, logger *zap.Logger, clk clock.PassiveClock) (*Auditor, error) {
	errs := cfg.Validate(field.NewPath("config"))
	if sink == nil {
		errs = append(errs, field.Required(field.NewPath("sink"), "findings must be forwarded to analytics"))
	}
	if len(errs) > 0 {
		return nil, errs.ToAggregate()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Auditor{
		sink:   sink,
		logger: logger,
		clock:  clk,
		cfg:    cfg.Normalize(),
	}, nil
}

// SetConfiguration merges cfg into the configuration used by subsequent
// runs. Fields absent from cfg keep their current value; invalid values
// fall back to defaults.
func (a *Auditor) SetConfiguration(cfg model.Config) {
	if errs := cfg.Validate(field.NewPath("config")); len(errs) > 0 {
		a.logger.Warn("configuration normalized", zap.Error(errs.ToAggregate()))
	}
	a.mu.Lock()
	a.cfg = a.cfg.Merge(cfg).Normalize()
	a.mu.Unlock()
}

// Configuration returns a copy of the current configuration.
func (a *Auditor) Configuration() model.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.Normalize()
}

// Run executes every enabled check against doc, scores the findings and
// logs each one into the sink. A check that panics is captured as an
// uncaught error and marked ERROR; the run continues.
func (a *Auditor) Run(doc document.Document) model.AuditReport {
	cfg := a.Configuration()
	started := a.clock.Now()
	if doc == nil {
		doc = document.NewSnapshot(nil, nil)
	}

	var issues []model.Issue
	var results []model.Check
	for _, c := range checks {
		if !c.enabled(cfg.Enabled()) {
			continue
		}
		var found []model.Issue
		ok := capture.Guard(a.sink, func() {
			found = c.run(doc, cfg)
		})

		status := model.CheckPass
		switch {
		case !ok:
			status = model.CheckError
			a.logger.Error("check failed", zap.String("check", c.id))
		case len(found) > 0:
			status = model.CheckFail
		}
		results = append(results, model.Check{
			ID:       c.id,
			Title:    c.title,
			Category: c.category,
			Status:   status,
			Issues:   len(found),
		})
		for i := range found {
			found[i].Timestamp = started
		}
		issues = append(issues, found...)
	}

	report := model.AuditReport{
		ID:           model.NewRunID(),
		WCAGLevel:    cfg.WCAGLevel,
		Passed:       len(issues) == 0,
		Issues:       issues,
		Checks:       results,
		OverallScore: Score(issues),
		TestedAt:     started,
	}
	if report.Issues == nil {
		report.Issues = []model.Issue{}
	}

	for _, is := range issues {
		a.sink.LogError(is)
	}

	a.logger.Info("audit complete",
		zap.String("run", report.ID),
		zap.String("level", string(cfg.WCAGLevel)),
		zap.Int("issues", len(issues)),
		zap.Float64("score", report.OverallScore),
		zap.Duration("took", a.clock.Since(started)))
	return report
}
