package contrast

import "math"

// Compliance is the WCAG body-text conformance of a contrast ratio.
type Compliance string

const (
	AAA  Compliance = "AAA"
	AA   Compliance = "AA"
	Fail Compliance = "Fail"
)

const (
	// MinRatio is the contrast of a color against itself.
	MinRatio = 1.0
	// MaxRatio is black against white.
	MaxRatio = 21.0

	thresholdAA  = 4.5
	thresholdAAA = 7.0

	// step is how far Suggest moves each channel.
	step = 20
)

// RelativeLuminance converts c to linear light and weights the channels
// per WCAG 2.x.
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

func linear(v int) float64 {
	s := float64(v) / 255
	if s <= 0.03928 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Ratio returns (L1+0.05)/(L2+0.05) for the lighter and darker of fg and bg.
// It never panics; a failure anywhere on the path yields MinRatio.
func Ratio(fg, bg string) (ratio float64) {
	defer func() {
		if recover() != nil {
			ratio = MinRatio
		}
	}()
	r := RatioRGB(ParseColor(fg), ParseColor(bg))
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return MinRatio
	}
	return r
}

// RatioRGB is Ratio for already parsed colors.
func RatioRGB(fg, bg RGB) float64 {
	l1 := RelativeLuminance(fg)
	l2 := RelativeLuminance(bg)
	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05)
}

// Level classifies ratio. Large or bold text is not special-cased.
func Level(ratio float64) Compliance {
	switch {
	case ratio >= thresholdAAA:
		return AAA
	case ratio >= thresholdAA:
		return AA
	default:
		return Fail
	}
}

// Suggestion holds at most one replacement color. Both empty means no
// single-step adjustment was found, or none was needed.
type Suggestion struct {
	Foreground string `json:"suggestedForeground,omitempty"`
	Background string `json:"suggestedBackground,omitempty"`
}

func (s Suggestion) Empty() bool {
	return s.Foreground == "" && s.Background == ""
}

// Suggest tries lightening fg by one step, then darkening bg by one step,
// and returns the first candidate that reaches AA. There is no further
// search: if neither single step is enough the suggestion is empty.
func Suggest(fg, bg string) Suggestion {
	if Ratio(fg, bg) >= thresholdAA {
		return Suggestion{}
	}

	lighter := shift(ParseColor(fg), step).String()
	darker := shift(ParseColor(bg), -step).String()

	if Ratio(lighter, bg) >= thresholdAA {
		return Suggestion{Foreground: lighter}
	}
	if Ratio(fg, darker) >= thresholdAA {
		return Suggestion{Background: darker}
	}
	return Suggestion{}
}

func shift(c RGB, d int) RGB {
	return RGB{R: clamp(c.R + d), G: clamp(c.G + d), B: clamp(c.B + d)}
}
