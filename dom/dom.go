// Package dom is an in-memory document with just enough of a head element
// to host style elements. It serves server side rendering and tests.
package dom

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"themecss/loader"
)

// Document keeps style elements attached to its head in insertion order.
// NOTE: not to be used concurrently.
type Document struct {
	legacy  bool
	head    []*StyleElement
	globals map[string]any
}

// Option configures document.
type Option func(*Document)

// WithLegacyStyleSheets makes document produce style elements with
// stylesheet object extension (cssText), which selects capacity limited
// registration in the loader.
func WithLegacyStyleSheets(legacy bool) Option {
	return func(d *Document) {
		d.legacy = legacy
	}
}

// New creates empty document.
func New(opts ...Option) *Document {
	d := &Document{globals: make(map[string]any)}
	for _, o := range opts {
		o(d)
	}
	return d
}

// CreateStyleElement creates detached style element.
func (d *Document) CreateStyleElement() loader.Element {
	e := &StyleElement{id: uuid.NewString(), doc: d}
	if d.legacy {
		return &LegacyStyleElement{StyleElement: e}
	}
	return e
}

// AppendToHead attaches element as the last child of the head. Elements
// created by other documents are ignored.
func (d *Document) AppendToHead(el loader.Element) {
	e := unwrap(el)
	if e == nil || e.doc != d {
		return
	}
	if e.attached {
		d.detach(e)
	}
	e.attached = true
	d.head = append(d.head, e)
}

// Global returns value stored in document global scope.
func (d *Document) Global(key string) (any, bool) {
	v, ok := d.globals[key]
	return v, ok
}

// SetGlobal stores value in document global scope.
func (d *Document) SetGlobal(key string, value any) {
	d.globals[key] = value
}

// Head returns attached style elements in document order.
func (d *Document) Head() []*StyleElement {
	return slices.Clone(d.head)
}

// CSS returns concatenated text of all attached style elements, separated
// by new lines.
func (d *Document) CSS() string {
	parts := make([]string, 0, len(d.head))
	for _, e := range d.head {
		parts = append(parts, e.Text())
	}
	return strings.Join(parts, "\n")
}

func (d *Document) detach(e *StyleElement) {
	d.head = slices.DeleteFunc(d.head, func(x *StyleElement) bool { return x == e })
	e.attached = false
}

func unwrap(el loader.Element) *StyleElement {
	switch e := el.(type) {
	case *StyleElement:
		return e
	case *LegacyStyleElement:
		return e.StyleElement
	}
	return nil
}

// StyleElement is a <style> element with text node content.
type StyleElement struct {
	id       string
	doc      *Document
	text     strings.Builder
	attached bool
}

// ID returns unique element identifier.
func (e *StyleElement) ID() string {
	return e.id
}

// AppendText appends text node to the element.
func (e *StyleElement) AppendText(text string) {
	e.text.WriteString(text)
}

// Text returns element content.
func (e *StyleElement) Text() string {
	return e.text.String()
}

// Attached reports if element is in the document head.
func (e *StyleElement) Attached() bool {
	return e.attached
}

// Remove detaches element from the head, does nothing for detached element.
func (e *StyleElement) Remove() {
	if !e.attached {
		return
	}
	e.doc.detach(e)
}

// LegacyStyleElement exposes content through stylesheet cssText property,
// as old rendering engines did.
type LegacyStyleElement struct {
	*StyleElement
}

// CSSText returns stylesheet text.
func (e *LegacyStyleElement) CSSText() string {
	return e.text.String()
}

// SetCSSText replaces stylesheet text.
func (e *LegacyStyleElement) SetCSSText(text string) {
	e.text.Reset()
	e.text.WriteString(text)
}
