package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// effective mirrors the keys a config file accepts.
type effective struct {
	WCAGLevel            string          `yaml:"wcag_level"`
	PerformanceThreshold string          `yaml:"performance_threshold"`
	MinScore             float64         `yaml:"min_score"`
	TrendThreshold       int             `yaml:"trend_threshold"`
	HistorySize          int             `yaml:"history_size"`
	LogLevel             string          `yaml:"log_level"`
	Categories           map[string]bool `yaml:"categories"`
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			c := s.Audit.Enabled()
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(effective{
				WCAGLevel:            string(s.Audit.WCAGLevel),
				PerformanceThreshold: s.Audit.PerformanceThreshold.String(),
				MinScore:             s.MinScore,
				TrendThreshold:       s.TrendThreshold,
				HistorySize:          s.HistorySize,
				LogLevel:             s.LogLevel,
				Categories: map[string]bool{
					"color_contrast":      c.ColorContrast,
					"keyboard_navigation": c.KeyboardNavigation,
					"semantic_structure":  c.SemanticStructure,
					"aria_attributes":     c.AriaAttributes,
					"focus_management":    c.FocusManagement,
					"performance_metrics": c.PerformanceMetrics,
				},
			})
		},
	})
	return cmd
}
