// Package loader registers themable CSS into a document and re-registers it
// when a new theme is loaded.
//
// Styles are split into instructions (see package themable), resolved
// against the active theme and inserted either immediately (sync run mode)
// or buffered and flushed on the next turn of the loop (async run mode).
// Rendering engines which limit number of style elements per document are
// detected once and served by accumulating text into fewer, larger
// elements.
//
// Loader is not safe for concurrent use. All its methods and turns of its
// loop must happen on the same goroutine.
package loader

import (
	"maps"
	"time"

	"go.uber.org/zap"

	"themecss/common"
	"themecss/loop"
	"themecss/themable"
)

// Loader is the registration front end bound to a document and a loop.
type Loader struct {
	doc         Document
	loop        *loop.Loop
	st          *State
	log         *zap.Logger
	diagnostics bool
	mode        *common.RunMode
	now         func() time.Time
}

// Option configures Loader.
type Option func(*Loader)

// WithLogger sets logger, it is also diagnostics sink.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithDiagnostics enables warnings about slots missing from active theme.
func WithDiagnostics(enable bool) Option {
	return func(l *Loader) {
		l.diagnostics = enable
	}
}

// WithState makes loader use given state instead of the one attached to
// the document.
func WithState(st *State) Option {
	return func(l *Loader) {
		l.st = st
	}
}

// WithRunMode sets run mode of the state loader works with.
func WithRunMode(mode common.RunMode) Option {
	return func(l *Loader) {
		l.mode = &mode
	}
}

// WithClock replaces clock used for instrumentation.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates loader for the document. When document implements Globals
// loader attaches to the state already kept there or creates it. Nil
// document makes all registrations no-op. Nil loop is replaced with a new
// one, available through Loop.
func New(doc Document, lp *loop.Loop, opts ...Option) *Loader {
	l := &Loader{
		doc:  doc,
		loop: lp,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	if l.loop == nil {
		l.loop = loop.New()
	}
	if l.st == nil {
		if g, ok := doc.(Globals); ok {
			l.st = AttachState(g)
		} else {
			l.st = NewState()
		}
	}
	if l.mode != nil {
		l.st.mode = *l.mode
	}
	l.log = l.log.Named("loader")
	return l
}

// Loop returns loop deferred flushes are scheduled on.
func (l *Loader) Loop() *loop.Loop {
	return l.loop
}

// State returns shared state loader works with.
func (l *Loader) State() *State {
	return l.st
}

// LoadStyles registers themable style text. When forceAsync is true styles
// are buffered regardless of the run mode.
func (l *Loader) LoadStyles(styles string, forceAsync ...bool) {
	if l.doc == nil {
		return
	}
	l.measure(func() {
		l.submit(themable.Split(styles), isTrue(forceAsync))
	})
}

// LoadSequence registers already split styles. Sequence is copied.
func (l *Loader) LoadSequence(seq themable.Sequence, forceAsync ...bool) {
	if l.doc == nil {
		return
	}
	l.measure(func() {
		l.submit(seq.Clone(), isTrue(forceAsync))
	})
}

// ConfigureLoadStyles installs inserter which receives all resolved CSS
// instead of the document. Nil restores direct insertion.
func (l *Loader) ConfigureLoadStyles(ins Inserter) {
	l.st.inserter = ins
}

// ConfigureRunMode switches between immediate and buffered registration.
func (l *Loader) ConfigureRunMode(mode common.RunMode) {
	l.st.mode = mode
}

// RunMode returns current run mode.
func (l *Loader) RunMode() common.RunMode {
	return l.st.mode
}

// Flush synchronously registers everything buffered so far as a single
// unit, preserving submission order.
func (l *Loader) Flush() {
	l.measure(func() {
		pending := l.st.buffer
		l.st.buffer = nil

		merged := themable.Concat(pending...)
		if len(merged) == 0 {
			return
		}
		l.log.Debug("Flushing buffered styles", zap.Int("sequences", len(pending)), zap.Int("instructions", len(merged)))
		l.apply(merged)
	})
}

// Pending returns number of buffered sequences.
func (l *Loader) Pending() int {
	return len(l.st.buffer)
}

// LoadTheme replaces active theme and re-registers all themable styles.
// Theme is copied, nil deactivates theming without touching registered
// styles.
func (l *Loader) LoadTheme(theme themable.Theme) {
	l.st.theme = maps.Clone(theme)
	l.st.warned = make(map[string]struct{})
	l.log.Debug("Theme loaded", zap.Int("slots", len(theme)))
	l.reload()
}

// Theme returns copy of the active theme.
func (l *Loader) Theme() themable.Theme {
	return maps.Clone(l.st.theme)
}

// ClearStyles removes registered style elements of requested group (all by
// default) and forgets their records. It bypasses buffering.
func (l *Loader) ClearStyles(scope ...common.ClearScope) {
	s := common.ClearScopeAll
	if len(scope) > 0 {
		s = scope[0]
	}
	st := l.st
	if s.NonThemable() {
		releaseRecords(st.registered)
		st.registered = nil
	}
	if s.Themable() {
		releaseRecords(st.registeredThemable)
		st.registeredThemable = nil
	}
	if st.open != nil && !st.open.sheet.Attached() {
		st.open = nil
	}
}

// Records returns copies of registered records for requested group.
func (l *Loader) Records(scope common.ClearScope) []Record {
	var out []Record
	if scope.Themable() {
		out = append(out, copyRecords(l.st.registeredThemable)...)
	}
	if scope.NonThemable() {
		out = append(out, copyRecords(l.st.registered)...)
	}
	return out
}

// Perf returns instrumentation counters.
func (l *Loader) Perf() Perf {
	return l.st.perf
}

// Detokenize resolves tokens in styles with the active theme without
// registering anything.
func (l *Loader) Detokenize(styles string) string {
	if styles == "" {
		return styles
	}
	return l.resolve(themable.Split(styles)).Text
}

// SplitStyles splits styles into instructions.
func (l *Loader) SplitStyles(styles string) themable.Sequence {
	return themable.Split(styles)
}

func (l *Loader) submit(seq themable.Sequence, forceAsync bool) {
	st := l.st
	if !forceAsync && st.mode != common.RunModeAsync {
		l.apply(seq)
		return
	}
	st.buffer = append(st.buffer, seq)
	if st.flushTask == nil {
		st.flushTask = l.loop.Schedule(l.scheduledFlush)
	}
}

func (l *Loader) scheduledFlush() {
	// cleared before draining, anything buffered from now on needs new flush
	l.st.flushTask = nil
	l.Flush()
}

func (l *Loader) reload() {
	st := l.st
	if st.theme == nil || len(st.registeredThemable) == 0 {
		return
	}
	seqs := make([]themable.Sequence, 0, len(st.registeredThemable))
	for _, r := range st.registeredThemable {
		seqs = append(seqs, r.Sequence)
	}
	merged := themable.Concat(seqs...)
	l.ClearStyles(common.ClearScopeOnlyThemable)
	if len(merged) > 0 {
		l.log.Debug("Reloading themable styles", zap.Int("records", len(seqs)))
		l.apply(merged)
	}
}

func (l *Loader) resolve(seq themable.Sequence) themable.Result {
	var warn themable.WarnFunc
	if l.diagnostics {
		warn = l.warn
	}
	return themable.Resolve(seq, l.st.theme, warn)
}

func (l *Loader) warn(slot, fallback string) {
	if _, seen := l.st.warned[slot]; seen {
		return
	}
	l.st.warned[slot] = struct{}{}
	l.log.Warn("Theming value not provided", zap.String("slot", slot), zap.String("fallback", fallback))
}

func (l *Loader) measure(fn func()) {
	start := l.now()
	fn()
	l.st.perf.Duration += l.now().Sub(start)
}

func isTrue(flags []bool) bool {
	return len(flags) > 0 && flags[0]
}
