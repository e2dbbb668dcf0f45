package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wcag-audit/internal/analytics"
	"wcag-audit/internal/config"
	"wcag-audit/internal/history"
	"wcag-audit/internal/model"
)

// Set by build scripts.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// exitError ends the process with code without printing anything further.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every subcommand shares once flags are parsed.
type app struct {
	cfgFile  string
	verbose  bool
	settings config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "wcag-audit",
		Short: "WCAG accessibility auditor for HTML pages",
		Long: `wcag-audit checks a rendered page against WCAG contrast, keyboard,
structure, ARIA, focus and performance rules, scores it out of 100, and keeps
error analytics across runs.

Configuration sources (in priority order):
  1. Command line flags
  2. Environment variables (WCAG_AUDIT_*)
  3. Configuration file (--config)
  4. Built-in defaults`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = s
			a.logger, err = newLogger(s.LogLevel, a.verbose)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (development logger at debug level)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("wcag-level", string(model.LevelAA), "WCAG conformance level: A, AA or AAA")
	pf.Duration("performance-threshold", model.DefaultPerformanceThreshold, "longest acceptable timing measurement")
	pf.Float64("min-score", config.DefaultMinScore, "minimum acceptable score; scan exits 2 below it")
	pf.Int("trend-threshold", analytics.DefaultThreshold, "occurrences of one type/severity that raise a trend alert")
	pf.Int("history-size", history.DefaultLimit, "audit runs kept for trend computation")

	root.AddCommand(
		newScanCmd(a),
		newContrastCmd(a),
		newWatchCmd(a),
		newPredictCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// newAnalytics wires the shared error analytics. Trend alerts are echoed to
// w so an operator watching the terminal sees them without parsing logs.
func (a *app) newAnalytics(w io.Writer, m *analytics.Metrics) *analytics.Analytics {
	return analytics.New(a.logger.Named("analytics"),
		analytics.WithThreshold(a.settings.TrendThreshold),
		analytics.WithMetrics(m),
		analytics.WithNotifier(analytics.NotifierFunc(func(al model.Alert) error {
			_, err := fmt.Fprintf(w, "ALERT: %s seen %d times\n", al.Trend, al.Count)
			return err
		})),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wcag-audit %s\n", version)
			fmt.Fprintf(out, "Git Commit: %s\n", gitCommit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	}
}
