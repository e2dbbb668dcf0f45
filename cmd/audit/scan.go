package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"wcag-audit/internal/analyze"
	"wcag-audit/internal/compare"
	"wcag-audit/internal/document"
	"wcag-audit/internal/history"
	"wcag-audit/internal/model"
	"wcag-audit/internal/output"
	"wcag-audit/internal/remediation"
)

type scanOptions struct {
	measurements string
	outDir       string
	compareTo    string
	ci           bool
	csv          bool
	redact       bool
}

func newScanCmd(a *app) *cobra.Command {
	o := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan FILE.html",
		Short: "Audit one HTML page and write reports",
		Example: `  wcag-audit scan index.html
  wcag-audit scan index.html --measurements timings.yaml --wcag-level AAA
  wcag-audit scan index.html --ci --min-score 80 --compare out/audit-report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd.OutOrStdout(), args[0], o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.measurements, "measurements", "", "YAML/JSON file of timing measurements")
	f.StringVar(&o.outDir, "out", "./out", "output directory")
	f.StringVar(&o.compareTo, "compare", "", "previous audit-report.json to diff against")
	f.BoolVar(&o.ci, "ci", false, "CI mode (machine-readable output)")
	f.BoolVar(&o.csv, "csv", false, "also write CSV exports")
	f.BoolVar(&o.redact, "redact", false, "also write a report with element ids masked")
	return cmd
}

func (a *app) runScan(out io.Writer, path string, o *scanOptions) error {
	an := a.newAnalytics(out, nil)

	report, err := a.audit(path, o.measurements, an)
	if err != nil {
		return err
	}

	x := output.Extras{
		Steps:      remediation.Generate(report.Issues),
		Categories: analyze.BuildCategories(report),
	}

	h := history.New(a.settings.HistorySize)
	if o.compareTo != "" {
		prev, err := compare.LoadReport(o.compareTo)
		if err != nil {
			a.logger.Warn("comparison skipped", zap.String("path", o.compareTo), zap.Error(err))
		} else {
			d := compare.Diff(prev, report)
			x.Comparison = &d
			h.Record(prev)
		}
	}
	tr := h.Record(report)

	for _, rec := range an.History() {
		for _, hint := range remediation.Heal(rec) {
			a.logger.Debug("healing hint", zap.String("id", rec.ID), zap.String("hint", hint))
		}
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", o.outDir, err)
	}
	jsonPath := filepath.Join(o.outDir, "audit-report.json")
	mdPath := filepath.Join(o.outDir, "audit-report.md")
	htmlPath := filepath.Join(o.outDir, "audit-report.html")

	if err := output.WriteJSON(jsonPath, report); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if err := output.WriteMarkdown(mdPath, report, x); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	if err := output.WriteHTML(htmlPath, report, x); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	if o.csv {
		if err := output.WriteCSV(o.outDir, report, x); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.redact {
		if err := output.WriteRedactedJSON(filepath.Join(o.outDir, "audit-report-redacted.json"), report); err != nil {
			return fmt.Errorf("write redacted json: %w", err)
		}
	}

	minScore := a.settings.MinScore
	if o.ci {
		if err := output.PrintSummary(out, output.BuildSummary(report, minScore, tr.Label, tr.Delta, time.Now())); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, "Scan complete.")
		fmt.Fprintln(out, "JSON:", jsonPath)
		fmt.Fprintln(out, "Markdown:", mdPath)
		fmt.Fprintln(out, "HTML Report:", htmlPath)
		if tr.Label == history.FirstRun {
			fmt.Fprintln(out, "Trend: FIRST RUN (no previous report)")
		} else {
			fmt.Fprintf(out, "Trend: %s (%+.2f) Previous: %.2f, Current: %.2f\n", tr.Label, tr.Delta, tr.Previous, tr.Current)
		}
		fmt.Fprintf(out, "Final Score: %.2f\n", report.OverallScore)
		fmt.Fprintf(out, "Posture: %s\n", output.Posture(report.OverallScore))
		fmt.Fprintf(out, "Issues: %d\n", len(report.Issues))
	}

	if report.OverallScore < minScore {
		if !o.ci {
			fmt.Fprintf(out, "Status: FAILED (score below %.2f)\n", minScore)
		}
		return &exitError{code: 2, msg: fmt.Sprintf("score %.2f below %.2f", report.OverallScore, minScore)}
	}
	if !o.ci {
		fmt.Fprintln(out, "Status: PASSED")
	}
	return nil
}

// audit parses the page at path and runs one audit that reports into sink.
func (a *app) audit(path, measurements string, sink analyze.Sink) (model.AuditReport, error) {
	doc, err := loadDocument(path, measurements)
	if err != nil {
		return model.AuditReport{}, err
	}
	auditor, err := analyze.NewAuditor(a.settings.Audit, sink, a.logger.Named("audit"), clock.RealClock{})
	if err != nil {
		return model.AuditReport{}, err
	}
	return auditor.Run(doc), nil
}

func loadDocument(path, measurements string) (*document.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	snap, err := document.ParseHTML(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if measurements != "" {
		m, err := document.LoadMeasurements(measurements)
		if err != nil {
			return nil, err
		}
		snap = snap.WithMeasurements(m)
	}
	return snap, nil
}
