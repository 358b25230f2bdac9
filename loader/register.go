package loader

import (
	"unicode/utf16"

	"go.uber.org/zap"

	"themecss/themable"
)

// apply registers sequence using inserter if one is configured or the
// registration path suitable for the document.
func (l *Loader) apply(seq themable.Sequence) {
	if l.st.inserter != nil {
		l.st.inserter.Insert(l.resolve(seq).Text, seq)
		return
	}
	if l.doc == nil {
		return
	}
	if l.capacityLimited() {
		l.registerLimited(seq)
		return
	}
	l.register(seq)
}

// capacityLimited probes document once, result is kept in state.
func (l *Loader) capacityLimited() bool {
	if l.st.legacy == nil {
		_, ok := l.doc.CreateStyleElement().(LegacySheet)
		l.st.legacy = &ok
		l.log.Debug("Probed document", zap.Bool("capacity-limited", ok))
	}
	return *l.st.legacy
}

// register creates style element per sequence.
func (l *Loader) register(seq themable.Sequence) {
	res := l.resolve(seq)

	el := l.doc.CreateStyleElement()
	el.AppendText(res.Text)
	l.st.perf.Count++
	l.doc.AppendToHead(el)

	l.st.addRecord(&Record{Element: el, Sequence: seq, Themable: res.Themable})
}

// registerLimited accumulates resolved text in the open style element until
// it would grow over MaxStyleContentSize. Sequence is appended to the record
// of that element, so reload resolves element content as a whole.
func (l *Loader) registerLimited(seq themable.Sequence) {
	st := l.st
	res := l.resolve(seq)
	size := cssLength(res.Text)

	open := st.open
	if open == nil || !open.sheet.Attached() || open.length+size > MaxStyleContentSize {
		el := l.doc.CreateStyleElement()
		sheet, ok := el.(LegacySheet)
		if !ok {
			// document changed its mind, nothing to accumulate into
			l.register(seq)
			return
		}
		l.doc.AppendToHead(el)
		st.perf.Count++

		rec := &Record{Element: el, Themable: res.Themable}
		st.addRecord(rec)
		open = &openTarget{sheet: sheet, record: rec}
		st.open = open
		l.log.Debug("Allocated style element", zap.Int("count", st.perf.Count))
	} else if res.Themable && !open.record.Themable {
		st.promote(open.record)
	}

	open.sheet.SetCSSText(open.sheet.CSSText() + res.Text)
	open.length += size
	open.record.Sequence = append(open.record.Sequence, seq...)
}

// cssLength returns length of text in UTF-16 code units.
func cssLength(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
			continue
		}
		n++
	}
	return n
}
