package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>t</title><style>p{}</style></head>
<body style="background-color: #222222; color: #eeeeee">
  <h1 id="top">Title</h1>
  <div style="background: white">
    <p style="color: rgb(200, 200, 200)">faint</p>
    <a href="/x">link</a>
  </div>
  <button tabindex="0" aria-describedby="hint">Go</button>
  <span tabindex="">odd</span>
  <div hidden><p>gone</p></div>
  <p style="display:none">also gone</p>
</body>
</html>`

func parse(t *testing.T) *Snapshot {
	t.Helper()
	s, err := ParseHTML(strings.NewReader(page))
	require.NoError(t, err)
	return s
}

func find(t *testing.T, s *Snapshot, pred Predicate) Element {
	t.Helper()
	els := s.Elements(pred)
	require.Len(t, els, 1)
	return els[0]
}

func TestParseHTMLDocumentOrder(t *testing.T) {
	s := parse(t)
	var tags []string
	for _, e := range s.Elements(All) {
		tags = append(tags, e.Tag)
	}
	assert.Equal(t, []string{
		"html", "head", "title", "style", "body", "h1", "div", "p", "a",
		"button", "span", "div", "p", "p",
	}, tags)
}

func TestParseHTMLResolvesColors(t *testing.T) {
	s := parse(t)

	h1 := find(t, s, func(e Element) bool { return e.ID == "top" })
	assert.Equal(t, "#eeeeee", h1.Color)
	assert.Equal(t, "#222222", h1.Background)
	assert.Equal(t, "H1#top", h1.Ref())

	faint := find(t, s, func(e Element) bool { return e.Tag == "p" && e.Visible })
	assert.Equal(t, "rgb(200, 200, 200)", faint.Color)
	assert.Equal(t, "white", faint.Background)

	link := find(t, s, func(e Element) bool { return e.Tag == "a" })
	assert.Equal(t, "#eeeeee", link.Color, "text color inherits")
	assert.Equal(t, "white", link.Background)
}

func TestParseHTMLBackgroundShorthand(t *testing.T) {
	s, err := ParseHTML(strings.NewReader(`<body style="background:#222222">
<p id="img" style="color:#000; background: rgb(255, 255, 255) url(x.png)">a</p>
<p id="last" style="background: url(bg.png) no-repeat #336699">b</p>
<p id="none" style="background: url(#frag) repeat-x">c</p>
<p id="clear" style="background: transparent">d</p>
</body>`))
	require.NoError(t, err)

	bg := func(id string) string {
		return find(t, s, func(e Element) bool { return e.ID == id }).Background
	}
	assert.Equal(t, "rgb(255, 255, 255)", bg("img"))
	assert.Equal(t, "#336699", bg("last"))
	assert.Equal(t, "#222222", bg("none"), "no color layer inherits")
	assert.Equal(t, "#222222", bg("clear"))
}

func TestParseHTMLVisibility(t *testing.T) {
	s := parse(t)
	for _, e := range s.Elements(All) {
		switch e.Tag {
		case "head", "title", "style":
			assert.False(t, e.Visible, e.Tag)
		}
	}
	hidden := 0
	for _, e := range s.Elements(func(e Element) bool { return e.Tag == "p" || e.Tag == "div" }) {
		if !e.Visible {
			hidden++
		}
	}
	assert.Equal(t, 3, hidden, "hidden div, its child p and the display:none p")
}

func TestElementPredicates(t *testing.T) {
	s := parse(t)

	var interactive []string
	for _, e := range s.Elements(Interactive) {
		interactive = append(interactive, e.Tag)
	}
	assert.Equal(t, []string{"a", "button", "span"}, interactive)

	span := find(t, s, func(e Element) bool { return e.Tag == "span" })
	assert.True(t, span.Declared("tabindex"))
	assert.False(t, span.HasAttr("tabindex"))

	assert.Len(t, s.Elements(Headings), 1)
	assert.Equal(t, 1, Element{Tag: "H1"}.HeadingLevel())
	assert.Equal(t, 6, Element{Tag: "h6"}.HeadingLevel())
	assert.Equal(t, 0, Element{Tag: "h7"}.HeadingLevel())
	assert.Equal(t, 0, Element{Tag: "hr"}.HeadingLevel())
	assert.Equal(t, "DIV", Element{Tag: "div"}.Ref())
}

func TestSnapshotCopies(t *testing.T) {
	m := []Measurement{{Name: "render", Duration: 150 * time.Millisecond}}
	s := NewSnapshot([]Element{{Tag: "p"}}, m)

	got := s.Measurements()
	got[0].Name = "mutated"
	assert.Equal(t, "render", s.Measurements()[0].Name)
	assert.Len(t, s.Elements(nil), 1)

	s2 := s.WithMeasurements(nil)
	assert.Empty(t, s2.Measurements())
	assert.Len(t, s.Measurements(), 1)
}

func TestParseMeasurements(t *testing.T) {
	yamlDoc := []byte("- name: hydrate\n  duration_ms: 250.5\n- name: paint\n  duration_ms: 12\n")
	got, err := ParseMeasurements(yamlDoc)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hydrate", got[0].Name)
	assert.Equal(t, 250500*time.Microsecond, got[0].Duration)

	jsonDoc := []byte(`[{"name":"tti","duration_ms":101}]`)
	got, err = ParseMeasurements(jsonDoc)
	require.NoError(t, err)
	assert.Equal(t, 101*time.Millisecond, got[0].Duration)

	_, err = ParseMeasurements([]byte("name: [unclosed"))
	assert.Error(t, err)
}
