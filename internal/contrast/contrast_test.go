package contrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ffffff", RGB{255, 255, 255}},
		{"#FF8000", RGB{255, 128, 0}},
		{"#0f0", RGB{0, 255, 0}},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}},
		{"rgba(10,20,30,0.5)", RGB{10, 20, 30}},
		{"RGB( 1 , 2 , 3 )", RGB{1, 2, 3}},
		{"rgb(300,0,0)", RGB{255, 0, 0}},
		{"white", RGB{255, 255, 255}},
		{" Blue ", RGB{0, 0, 255}},
		{"rebeccapurple", RGB{0, 0, 0}},
		{"#12345", RGB{0, 0, 0}},
		{"#zzzzzz", RGB{0, 0, 0}},
		{"", RGB{0, 0, 0}},
		{"rgb(1,2)", RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColor(tt.in))
		})
	}
}

func TestRelativeLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, RelativeLuminance(RGB{0, 0, 0}), 1e-9)
	assert.InDelta(t, 1.0, RelativeLuminance(RGB{255, 255, 255}), 1e-9)
	assert.InDelta(t, 0.2126, RelativeLuminance(RGB{255, 0, 0}), 1e-9)
	assert.InDelta(t, 0.7152, RelativeLuminance(RGB{0, 255, 0}), 1e-9)
	// 10/255 is below the linear-segment knee.
	assert.InDelta(t, (10.0/255)/12.92, RelativeLuminance(RGB{10, 10, 10}), 1e-9)
}

func TestRatioBlackWhite(t *testing.T) {
	r := Ratio("#000000", "#ffffff")
	assert.InDelta(t, 21.0, r, 1e-9)
	assert.Equal(t, AAA, Level(r))
	assert.InDelta(t, r, Ratio("#ffffff", "#000000"), 1e-12)
}

func TestRatioBounds(t *testing.T) {
	colors := []string{"#000000", "#ffffff", "#767676", "red", "green", "blue", "rgb(12,200,99)", "#abcdef"}
	for _, a := range colors {
		for _, b := range colors {
			r := Ratio(a, b)
			assert.GreaterOrEqual(t, r, MinRatio, "%s/%s", a, b)
			assert.LessOrEqual(t, r, MaxRatio+1e-9, "%s/%s", a, b)
			assert.InDelta(t, r, Ratio(b, a), 1e-12, "ratio must not depend on argument order")
		}
	}
	assert.InDelta(t, 1.0, Ratio("#abcdef", "#abcdef"), 1e-12)
}

func TestRatioMalformed(t *testing.T) {
	for _, in := range []string{"not-a-color", "#zz", "rgb(a,b,c)", "", "hsl(0, 0%, 0%)"} {
		assert.NotPanics(t, func() {
			assert.Equal(t, 1.0, Ratio(in, "garbage"))
		})
	}
}

func TestLevelBoundaries(t *testing.T) {
	assert.Equal(t, AA, Level(4.5))
	assert.Equal(t, Fail, Level(4.49999))
	assert.Equal(t, AAA, Level(7))
	assert.Equal(t, AA, Level(6.99))
	assert.Equal(t, Fail, Level(1))
}

func TestSuggestCompliant(t *testing.T) {
	assert.True(t, Suggest("#000000", "#ffffff").Empty())
	assert.Equal(t, Suggestion{}, Suggest("#767676", "#ffffff"))
}

func TestSuggestForeground(t *testing.T) {
	fg, bg := "rgb(100,100,100)", "#000000"
	assert.Less(t, Ratio(fg, bg), 4.5)

	s := Suggest(fg, bg)
	assert.Equal(t, "rgb(120,120,120)", s.Foreground)
	assert.Empty(t, s.Background)
	assert.GreaterOrEqual(t, Ratio(s.Foreground, bg), 4.5)
}

func TestSuggestBackground(t *testing.T) {
	fg, bg := "#ffffff", "rgb(130,130,130)"
	assert.Less(t, Ratio(fg, bg), 4.5)

	s := Suggest(fg, bg)
	assert.Empty(t, s.Foreground)
	assert.Equal(t, "rgb(110,110,110)", s.Background)
	assert.GreaterOrEqual(t, Ratio(fg, s.Background), 4.5)
}

func TestSuggestNoSingleStep(t *testing.T) {
	// Black on black needs far more than one step in either direction.
	assert.True(t, Suggest("#000000", "#000000").Empty())
	assert.True(t, Suggest("#777777", "#888888").Empty())
}

func TestRGBFormatting(t *testing.T) {
	c := RGB{1, 171, 255}
	assert.Equal(t, "rgb(1,171,255)", c.String())
	assert.Equal(t, "#01abff", c.Hex())
	assert.Equal(t, c, ParseColor(c.Hex()))
	assert.Equal(t, c, ParseColor(c.String()))
}
