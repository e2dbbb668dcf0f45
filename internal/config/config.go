// Package config resolves audit settings from defaults, an optional YAML
// file, WCAG_AUDIT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"wcag-audit/internal/analytics"
	"wcag-audit/internal/history"
	"wcag-audit/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// WCAG_AUDIT_WCAG_LEVEL or WCAG_AUDIT_CATEGORIES_COLOR_CONTRAST.
const EnvPrefix = "WCAG_AUDIT"

// Keys.
const (
	KeyLevel          = "wcag_level"
	KeyPerfThreshold  = "performance_threshold"
	KeyMinScore       = "min_score"
	KeyTrendThreshold = "trend_threshold"
	KeyHistorySize    = "history_size"
	KeyLogLevel       = "log_level"
)

const DefaultMinScore = 90.0

var categoryKeys = []string{
	"categories.color_contrast",
	"categories.keyboard_navigation",
	"categories.semantic_structure",
	"categories.aria_attributes",
	"categories.focus_management",
	"categories.performance_metrics",
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"wcag-level":            KeyLevel,
	"performance-threshold": KeyPerfThreshold,
	"min-score":             KeyMinScore,
	"trend-threshold":       KeyTrendThreshold,
	"history-size":          KeyHistorySize,
	"log-level":             KeyLogLevel,
}

// Settings is the resolved configuration of one CLI invocation.
type Settings struct {
	Audit          model.Config `json:"audit"`
	MinScore       float64      `json:"minScore"`
	TrendThreshold int          `json:"trendThreshold"`
	HistorySize    int          `json:"historySize"`
	LogLevel       string       `json:"logLevel"`
}

// Load resolves settings. path may be empty; flags may be nil. Only flags
// the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	s := decode(v)
	errs := checkDuration(v, KeyPerfThreshold, field.NewPath("config", "audit", "performanceThreshold"))
	if err := append(errs, validate(s)...).ToAggregate(); err != nil {
		return Settings{}, err
	}
	s.Audit = s.Audit.Normalize()
	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultConfig()
	v.SetDefault(KeyLevel, string(d.WCAGLevel))
	v.SetDefault(KeyPerfThreshold, d.PerformanceThreshold)
	v.SetDefault(KeyMinScore, DefaultMinScore)
	v.SetDefault(KeyTrendThreshold, analytics.DefaultThreshold)
	v.SetDefault(KeyHistorySize, history.DefaultLimit)
	v.SetDefault(KeyLogLevel, "info")
	for _, k := range categoryKeys {
		v.SetDefault(k, true)
	}
}

func decode(v *viper.Viper) Settings {
	return Settings{
		Audit: model.Config{
			WCAGLevel: model.WCAGLevel(strings.ToUpper(strings.TrimSpace(v.GetString(KeyLevel)))),
			Categories: &model.Categories{
				ColorContrast:      v.GetBool(categoryKeys[0]),
				KeyboardNavigation: v.GetBool(categoryKeys[1]),
				SemanticStructure:  v.GetBool(categoryKeys[2]),
				AriaAttributes:     v.GetBool(categoryKeys[3]),
				FocusManagement:    v.GetBool(categoryKeys[4]),
				PerformanceMetrics: v.GetBool(categoryKeys[5]),
			},
			PerformanceThreshold: v.GetDuration(KeyPerfThreshold),
		},
		MinScore:       v.GetFloat64(KeyMinScore),
		TrendThreshold: v.GetInt(KeyTrendThreshold),
		HistorySize:    v.GetInt(KeyHistorySize),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}
}

// checkDuration rejects a bare number for a duration key. Viper would read
// 100 as 100ns; durations must carry a unit, e.g. "100ms".
func checkDuration(v *viper.Viper, key string, fld *field.Path) field.ErrorList {
	switch raw := v.Get(key).(type) {
	case time.Duration:
		return nil
	case string:
		if _, err := time.ParseDuration(strings.TrimSpace(raw)); err != nil {
			return field.ErrorList{field.Invalid(fld, raw, "must be a duration with a unit, e.g. 100ms")}
		}
		return nil
	default:
		return field.ErrorList{field.Invalid(fld, raw, "must be a duration with a unit, e.g. 100ms")}
	}
}

// Validate reports every problem with s as one aggregate error.
func Validate(s Settings) error {
	return validate(s).ToAggregate()
}

func validate(s Settings) field.ErrorList {
	root := field.NewPath("config")
	errs := s.Audit.Validate(root.Child("audit"))
	if s.MinScore < 0 || s.MinScore > 100 {
		errs = append(errs, field.Invalid(root.Child("minScore"), s.MinScore, "must be between 0 and 100"))
	}
	if s.TrendThreshold < 1 {
		errs = append(errs, field.Invalid(root.Child("trendThreshold"), s.TrendThreshold, "must be at least 1"))
	}
	if s.HistorySize < 1 {
		errs = append(errs, field.Invalid(root.Child("historySize"), s.HistorySize, "must be at least 1"))
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, field.NotSupported(root.Child("logLevel"), s.LogLevel,
			[]string{"debug", "info", "warn", "error"}))
	}
	return errs
}
