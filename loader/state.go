package loader

import (
	"slices"
	"time"

	"themecss/common"
	"themecss/loop"
	"themecss/themable"
)

// globalKey is where state is kept in document globals, so that several
// loaders hosted by the same document reuse it.
const globalKey = "__themeState__"

// MaxStyleContentSize is the maximum length of text accumulated in a single
// style element on capacity limited engines. Length is measured in UTF-16
// code units, as those engines measure cssText.
const MaxStyleContentSize = 10000

// Perf holds instrumentation counters.
type Perf struct {
	Count    int           // style elements created
	Duration time.Duration // time spent registering and flushing
}

// Record links registered sequence to the element it produced.
type Record struct {
	Element  Element
	Sequence themable.Sequence
	Themable bool
}

// openTarget is the style element currently being filled on capacity
// limited engines.
type openTarget struct {
	sheet  LegacySheet
	length int
	record *Record
}

// State is shared theming state. It is created once per document (see
// AttachState) and lives as long as the document does.
type State struct {
	theme themable.Theme
	// reported missing slots for the active theme
	warned map[string]struct{}

	registered         []*Record
	registeredThemable []*Record

	mode      common.RunMode
	buffer    []themable.Sequence
	flushTask *loop.Task

	inserter Inserter
	legacy   *bool
	open     *openTarget

	perf Perf
}

// NewState creates detached state.
func NewState() *State {
	return &State{warned: make(map[string]struct{})}
}

// AttachState returns state kept in globals, creating and storing it there
// if this is the first attach.
func AttachState(g Globals) *State {
	if g == nil {
		return NewState()
	}
	if v, ok := g.Global(globalKey); ok {
		if st, ok := v.(*State); ok {
			return st
		}
	}
	st := NewState()
	g.SetGlobal(globalKey, st)
	return st
}

func (st *State) addRecord(rec *Record) {
	if rec.Themable {
		st.registeredThemable = append(st.registeredThemable, rec)
		return
	}
	st.registered = append(st.registered, rec)
}

// promote moves record into themable group.
func (st *State) promote(rec *Record) {
	st.registered = slices.DeleteFunc(st.registered, func(r *Record) bool { return r == rec })
	rec.Themable = true
	st.registeredThemable = append(st.registeredThemable, rec)
}

func releaseRecords(records []*Record) {
	for _, r := range records {
		if r != nil && r.Element != nil && r.Element.Attached() {
			r.Element.Remove()
		}
	}
}

func copyRecords(records []*Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record{Element: r.Element, Sequence: r.Sequence.Clone(), Themable: r.Themable})
	}
	return out
}
