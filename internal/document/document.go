// Package document is the read-only inspection boundary between the audit
// checks and whatever produced the page being audited.
package document

import (
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// interactiveTags are focusable without an explicit tabindex.
var interactiveTags = sets.New("a", "button", "input", "select", "textarea")

// Element is one node of a document snapshot with its styles resolved.
type Element struct {
	Tag        string            `json:"tag"`
	ID         string            `json:"id,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Color      string            `json:"color,omitempty"`
	Background string            `json:"background,omitempty"`
	Visible    bool              `json:"visible"`
}

// Ref identifies e in findings: "tag#id" when it has an id, else "tag".
func (e Element) Ref() string {
	tag := strings.ToUpper(e.Tag)
	if e.ID != "" {
		return tag + "#" + e.ID
	}
	return tag
}

// Attr returns the declared value of name, or "".
func (e Element) Attr(name string) string {
	return e.Attrs[strings.ToLower(name)]
}

// HasAttr reports whether name is declared with a non-empty value.
func (e Element) HasAttr(name string) bool {
	return strings.TrimSpace(e.Attr(name)) != ""
}

// Declared reports whether name is present at all, even when empty.
func (e Element) Declared(name string) bool {
	_, ok := e.Attrs[strings.ToLower(name)]
	return ok
}

// HeadingLevel returns 1..6 for h1..h6 and 0 otherwise.
func (e Element) HeadingLevel() int {
	t := strings.ToLower(e.Tag)
	if len(t) != 2 || t[0] != 'h' || t[1] < '1' || t[1] > '6' {
		return 0
	}
	return int(t[1] - '0')
}

// Interactive reports whether e takes keyboard focus.
func (e Element) Interactive() bool {
	return interactiveTags.Has(strings.ToLower(e.Tag)) || e.Declared("tabindex")
}

// Measurement is one recorded timing.
type Measurement struct {
	Name     string        `json:"name" yaml:"name"`
	Duration time.Duration `json:"duration" yaml:"-"`
}

// Predicate selects elements.
type Predicate func(Element) bool

var (
	All         Predicate = func(Element) bool { return true }
	Visible     Predicate = func(e Element) bool { return e.Visible }
	Interactive Predicate = func(e Element) bool { return e.Interactive() }
	Headings    Predicate = func(e Element) bool { return e.HeadingLevel() > 0 }
)

// Document is a read-only view of the page under audit. Elements are
// returned in document order.
type Document interface {
	Elements(match Predicate) []Element
	Measurements() []Measurement
}

// Snapshot is an in-memory Document.
type Snapshot struct {
	elements     []Element
	measurements []Measurement
}

func NewSnapshot(elements []Element, measurements []Measurement) *Snapshot {
	return &Snapshot{
		elements:     append([]Element(nil), elements...),
		measurements: append([]Measurement(nil), measurements...),
	}
}

func (s *Snapshot) Elements(match Predicate) []Element {
	if match == nil {
		match = All
	}
	var out []Element
	for _, e := range s.elements {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) Measurements() []Measurement {
	return append([]Measurement(nil), s.measurements...)
}

// WithMeasurements returns a copy of s carrying m instead of its own timings.
func (s *Snapshot) WithMeasurements(m []Measurement) *Snapshot {
	return NewSnapshot(s.elements, m)
}
