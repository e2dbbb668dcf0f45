package model

import (
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// WCAGLevel is the conformance level an audit is run against.
type WCAGLevel string

const (
	LevelA   WCAGLevel = "A"
	LevelAA  WCAGLevel = "AA"
	LevelAAA WCAGLevel = "AAA"
)

// DefaultPerformanceThreshold is the longest acceptable timing measurement.
const DefaultPerformanceThreshold = 100 * time.Millisecond

// ParseLevel normalizes user input. ok is false for unknown levels.
func ParseLevel(v string) (WCAGLevel, bool) {
	switch WCAGLevel(strings.ToUpper(strings.TrimSpace(v))) {
	case LevelA:
		return LevelA, true
	case LevelAA:
		return LevelAA, true
	case LevelAAA:
		return LevelAAA, true
	default:
		return "", false
	}
}

// MinContrast is the contrast ratio a level requires for body text.
// Level A carries no contrast criterion of its own; the large-text floor
// of 3:1 is used so the color check still flags illegible text.
func (l WCAGLevel) MinContrast() float64 {
	switch l {
	case LevelAAA:
		return 7.0
	case LevelA:
		return 3.0
	default:
		return 4.5
	}
}

// Categories toggles the individual checks of an audit run.
type Categories struct {
	ColorContrast      bool `json:"colorContrast" yaml:"color_contrast" mapstructure:"color_contrast"`
	KeyboardNavigation bool `json:"keyboardNavigation" yaml:"keyboard_navigation" mapstructure:"keyboard_navigation"`
	SemanticStructure  bool `json:"semanticStructure" yaml:"semantic_structure" mapstructure:"semantic_structure"`
	AriaAttributes     bool `json:"ariaAttributes" yaml:"aria_attributes" mapstructure:"aria_attributes"`
	FocusManagement    bool `json:"focusManagement" yaml:"focus_management" mapstructure:"focus_management"`
	PerformanceMetrics bool `json:"performanceMetrics" yaml:"performance_metrics" mapstructure:"performance_metrics"`
}

// AllCategories enables every check.
func AllCategories() Categories {
	return Categories{
		ColorContrast:      true,
		KeyboardNavigation: true,
		SemanticStructure:  true,
		AriaAttributes:     true,
		FocusManagement:    true,
		PerformanceMetrics: true,
	}
}

// Config selects what an audit run checks. A nil Categories means the
// categories were not given: Normalize enables all of them and Merge keeps
// the current set.
type Config struct {
	WCAGLevel            WCAGLevel     `json:"wcagLevel" yaml:"wcag_level" mapstructure:"wcag_level"`
	Categories           *Categories   `json:"testCategories,omitempty" yaml:"categories,omitempty" mapstructure:"categories"`
	PerformanceThreshold time.Duration `json:"performanceThreshold" yaml:"performance_threshold" mapstructure:"performance_threshold"`
}

func DefaultConfig() Config {
	all := AllCategories()
	return Config{
		WCAGLevel:            LevelAA,
		Categories:           &all,
		PerformanceThreshold: DefaultPerformanceThreshold,
	}
}

// Normalize fills absent fields with defaults. An unknown level becomes AA.
func (c Config) Normalize() Config {
	if l, ok := ParseLevel(string(c.WCAGLevel)); ok {
		c.WCAGLevel = l
	} else {
		c.WCAGLevel = LevelAA
	}
	if c.PerformanceThreshold <= 0 {
		c.PerformanceThreshold = DefaultPerformanceThreshold
	}
	cats := c.Enabled()
	c.Categories = &cats
	return c
}

// Enabled returns the category toggles, all enabled when none were given.
func (c Config) Enabled() Categories {
	if c.Categories == nil {
		return AllCategories()
	}
	return *c.Categories
}

// Merge overlays the fields set in patch onto c. An empty level, a zero
// threshold and nil categories keep the value of c.
func (c Config) Merge(patch Config) Config {
	if patch.WCAGLevel != "" {
		c.WCAGLevel = patch.WCAGLevel
	}
	if patch.PerformanceThreshold != 0 {
		c.PerformanceThreshold = patch.PerformanceThreshold
	}
	if patch.Categories != nil {
		cats := *patch.Categories
		c.Categories = &cats
	}
	return c
}

// Validate reports every problem with c. An empty level or zero threshold
// is not an error since Normalize supplies a default for both.
func (c Config) Validate(fldPath *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.WCAGLevel != "" {
		if _, ok := ParseLevel(string(c.WCAGLevel)); !ok {
			errs = append(errs, field.NotSupported(fldPath.Child("wcagLevel"), c.WCAGLevel,
				[]string{string(LevelA), string(LevelAA), string(LevelAAA)}))
		}
	}
	if c.PerformanceThreshold < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("performanceThreshold"),
			c.PerformanceThreshold.String(), "must not be negative"))
	}
	return errs
}
