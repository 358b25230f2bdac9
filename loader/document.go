package loader

import (
	"themecss/themable"
)

// Element is an insertion target (a style element) provided by the document.
type Element interface {
	// AppendText appends text node with given content.
	AppendText(text string)
	// Attached reports if element is still part of the document.
	Attached() bool
	// Remove detaches element from the document.
	Remove()
}

// LegacySheet is implemented by elements of rendering engines which expose
// stylesheet object extension and limit number of style elements per
// document.
type LegacySheet interface {
	Element
	CSSText() string
	SetCSSText(text string)
}

// Document is the DOM collaborator.
type Document interface {
	CreateStyleElement() Element
	AppendToHead(el Element)
}

// Globals is a process wide scope shared by all loaders of a document.
type Globals interface {
	Global(key string) (any, bool)
	SetGlobal(key string, value any)
}

// Inserter replaces direct document insertion, for example to collect CSS
// during server side rendering. It receives resolved text and the sequence
// it was resolved from.
type Inserter interface {
	Insert(css string, raw themable.Sequence)
}

// InserterFunc adapts function to Inserter.
type InserterFunc func(css string, raw themable.Sequence)

// Insert calls f(css, raw).
func (f InserterFunc) Insert(css string, raw themable.Sequence) {
	f(css, raw)
}
