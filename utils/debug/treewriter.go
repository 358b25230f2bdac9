// Package debug has helpers producing human readable dumps.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"themecss/themable"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Sequence writes one line per instruction, literals are quoted.
func (tw TreeWriter) Sequence(depth int, seq themable.Sequence) {
	tw.Line(depth, "sequence (%d instructions, themable: %t)", len(seq), seq.Themable())
	for i, in := range seq {
		if !in.IsReference() {
			tw.TextBlock(depth+1, fmt.Sprintf("[%d] literal", i), in.Raw)
			continue
		}
		if in.Default == "" {
			tw.Line(depth+1, "[%d] slot %s", i, in.Slot)
			continue
		}
		tw.Line(depth+1, "[%d] slot %s default %s", i, in.Slot, encodeText(in.Default))
	}
}

// Theme writes slots in natural order.
func (tw TreeWriter) Theme(depth int, name string, theme themable.Theme) {
	if theme == nil {
		tw.Line(depth, "theme %s: none", name)
		return
	}
	tw.Line(depth, "theme %s (%d slots)", name, len(theme))
	slots := make([]string, 0, len(theme))
	for k := range theme {
		slots = append(slots, k)
	}
	sort.Sort(natural.StringSlice(slots))
	for _, k := range slots {
		tw.TextBlock(depth+1, k, theme[k])
	}
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
