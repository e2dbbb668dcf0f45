package document

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	defaultColor      = "#000000"
	defaultBackground = "#ffffff"
)

var (
	urlFunc    = regexp.MustCompile(`url\([^)]*\)`)
	colorToken = regexp.MustCompile(`#[0-9a-f]{3,8}\b|rgba?\([^)]*\)|\b(?:white|black|red|green|blue|transparent)\b`)
)

// neverRendered subtrees hold no visible content.
var neverRendered = sets.New("head", "script", "style", "noscript", "template", "meta", "link", "title")

// ParseHTML builds a Snapshot from markup. Colors come from inline style
// attributes: text color inherits, background resolves to the nearest
// ancestor that declares one.
func ParseHTML(r io.Reader) (*Snapshot, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	w := &walker{}
	w.walk(root, inherited{color: defaultColor, background: defaultBackground, visible: true})
	return NewSnapshot(w.elements, nil), nil
}

type inherited struct {
	color      string
	background string
	visible    bool
}

type walker struct {
	elements []Element
}

func (w *walker) walk(n *html.Node, in inherited) {
	if n.Type == html.ElementNode {
		e := Element{Tag: strings.ToLower(n.Data), Attrs: map[string]string{}}
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			e.Attrs[key] = a.Val
			if key == "id" {
				e.ID = a.Val
			}
		}

		style := parseStyle(e.Attrs["style"])
		if c, ok := style["color"]; ok && c != "inherit" {
			in.color = c
		}
		if bg, ok := background(style); ok {
			in.background = bg
		}
		if neverRendered.Has(e.Tag) || hidden(e, style) {
			in.visible = false
		}

		e.Color = in.color
		e.Background = in.background
		e.Visible = in.visible
		w.elements = append(w.elements, e)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, in)
	}
}

func hidden(e Element, style map[string]string) bool {
	if e.Declared("hidden") || strings.EqualFold(e.Attr("aria-hidden"), "true") {
		return true
	}
	return style["display"] == "none" || style["visibility"] == "hidden"
}

func background(style map[string]string) (string, bool) {
	v, ok := style["background-color"]
	if !ok {
		v, ok = shorthandColor(style["background"])
		if !ok {
			return "", false
		}
	}
	if v == "" || v == "transparent" || v == "inherit" || v == "none" {
		return "", false
	}
	return v, true
}

// shorthandColor picks the color layer out of a background shorthand such
// as "url(x.png) no-repeat #336699".
func shorthandColor(v string) (string, bool) {
	c := colorToken.FindString(urlFunc.ReplaceAllString(v, " "))
	return c, c != ""
}

// parseStyle splits a style attribute into lower-cased properties.
func parseStyle(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		if k != "" {
			out[k] = strings.ToLower(strings.TrimSpace(v))
		}
	}
	return out
}
