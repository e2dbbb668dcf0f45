package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/wait"

	"wcag-audit/internal/analytics"
	"wcag-audit/internal/capture"
	"wcag-audit/internal/history"
	"wcag-audit/internal/model"
	"wcag-audit/internal/output"
)

type watchOptions struct {
	measurements   string
	interval       time.Duration
	reportInterval time.Duration
	metricsAddr    string
	runs           int
}

func newWatchCmd(a *app) *cobra.Command {
	o := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch FILE.html",
		Short: "Re-audit a page periodically and keep error analytics",
		Example: `  wcag-audit watch index.html --interval 30s --metrics-addr :9090`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd.OutOrStdout(), args[0], o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.measurements, "measurements", "", "YAML/JSON file of timing measurements, re-read every run")
	f.DurationVar(&o.interval, "interval", 30*time.Second, "time between audits")
	f.DurationVar(&o.reportInterval, "report-interval", time.Minute, "time between analytics reports")
	f.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	f.IntVar(&o.runs, "runs", 0, "stop after this many audits (0 = until interrupted)")
	return cmd
}

func (a *app) runWatch(ctx context.Context, out io.Writer, path string, o *watchOptions) error {
	if o.interval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", o.interval)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := analytics.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	out = &syncWriter{w: out}
	an := a.newAnalytics(out, metrics)
	h := history.New(a.settings.HistorySize)

	if o.metricsAddr != "" {
		srv := metricsServer(o.metricsAddr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
		a.logger.Info("serving metrics", zap.String("addr", o.metricsAddr))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		if o.reportInterval <= 0 {
			return
		}
		analytics.RunReporter(ctx, an, o.reportInterval, func(r model.ErrorReport) {
			fmt.Fprintln(out, formatErrorReport(r))
		})
	}()

	runs := 0
	wait.UntilWithContext(ctx, func(context.Context) {
		// A page that fails to load is captured as a rejection; the loop
		// keeps going so a transient edit does not end the watch.
		<-capture.Go(an, func() error {
			report, err := a.audit(path, o.measurements, an)
			if err != nil {
				return err
			}
			tr := h.Record(report)
			fmt.Fprintf(out, "%s score=%.2f posture=%s issues=%d trend=%s recent=[%s]\n",
				report.TestedAt.UTC().Format(time.RFC3339), report.OverallScore,
				output.Posture(report.OverallScore), len(report.Issues), tr.Label,
				formatScores(h.Last(sparklineRuns)))
			return nil
		})
		runs++
		if o.runs > 0 && runs >= o.runs {
			cancel()
		}
	}, o.interval)

	cancel()
	<-reporterDone
	fmt.Fprintln(out, formatErrorReport(an.Report()))
	return nil
}

// sparklineRuns is how many past scores each watch line shows.
const sparklineRuns = 10

func formatScores(entries []history.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%.1f", e.Overall))
	}
	return strings.Join(parts, " ")
}

// syncWriter serializes writes from the audit loop, the reporter and the
// alert notifier.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// formatErrorReport renders counters in key order so consecutive reports diff
// cleanly.
func formatErrorReport(r model.ErrorReport) string {
	keys := make([]string, 0, len(r.TrendCounters))
	for k := range r.TrendCounters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, r.TrendCounters[k]))
	}
	return fmt.Sprintf("errors=%d recent=%d trends=[%s]", r.TotalErrors, len(r.Recent), strings.Join(parts, " "))
}
