// Package contrast implements the WCAG relative-luminance and contrast-ratio
// calculations used by the color-contrast check.
package contrast

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex renders c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	black = RGB{0, 0, 0}

	named = map[string]RGB{
		"white": {255, 255, 255},
		"black": {0, 0, 0},
		"red":   {255, 0, 0},
		"green": {0, 255, 0},
		"blue":  {0, 0, 255},
	}

	rgbFunc = regexp.MustCompile(`^rgba?\((\d+),(\d+),(\d+)(?:,(\d+(?:\.\d+)?|\.\d+))?\)$`)
)

// ParseColor understands #rrggbb, #rgb, rgb()/rgba() and a handful of named
// colors. Anything else is black.
func ParseColor(raw string) RGB {
	s := strings.ToLower(strings.Join(strings.Fields(raw), ""))

	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
		return black
	}

	if m := rgbFunc.FindStringSubmatch(s); m != nil {
		return RGB{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}
	}

	if c, ok := named[s]; ok {
		return c
	}
	return black
}

func parseHex(h string) (RGB, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return black, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return black, false
	}
	return RGB{R: int(v>>16) & 0xff, G: int(v>>8) & 0xff, B: int(v) & 0xff}, true
}

// channel parses one decimal component, clamped to 0..255.
func channel(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 255
	}
	return clamp(v)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
