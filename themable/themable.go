// Package themable splits CSS text with embedded theme tokens into
// instructions and resolves them against a theme.
//
// A token is a quoted string of the form
//
//	"[theme: slotName]"
//	"[theme: slotName, default: value]"
//
// with either kind of quotes. The quotes are part of the token and are not
// preserved in the output. Text which does not match the token grammar is
// kept as is.
package themable

import (
	"regexp"
	"slices"
)

// DefaultValue is used when theme does not provide a slot and token has no
// default.
const DefaultValue = "inherit"

// tokenPattern matches theming tokens including surrounding quotes. Default
// value is limited to a safe set of characters so adjacent CSS punctuation
// cannot be swallowed.
var tokenPattern = regexp.MustCompile(`['"]\[theme:\s*(\w+)\s*(?:,\s*default:\s*([\\"']?[.,()#\-\s\w]*[.,()#\-\w]["']?))?\s*\]['"]`)

// Instruction is either a literal CSS span or a reference to a theme slot.
type Instruction struct {
	Raw     string // literal text, only meaningful when Slot is empty
	Slot    string // theme slot name
	Default string // may be empty, meaning no default
}

// Literal makes literal instruction.
func Literal(raw string) Instruction {
	return Instruction{Raw: raw}
}

// Reference makes theme reference instruction.
func Reference(slot, def string) Instruction {
	return Instruction{Slot: slot, Default: def}
}

// IsReference returns true if instruction refers to a theme slot.
func (in Instruction) IsReference() bool {
	return in.Slot != ""
}

// Fallback returns value used when theme does not supply the slot.
func (in Instruction) Fallback() string {
	if in.Default != "" {
		return in.Default
	}
	return DefaultValue
}

// Sequence is an ordered list of instructions produced from a single CSS
// text.
type Sequence []Instruction

// Clone returns copy of the sequence which does not share backing array.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Themable reports whether sequence has at least one theme reference.
func (s Sequence) Themable() bool {
	return slices.ContainsFunc(s, Instruction.IsReference)
}

// Concat joins sequences preserving order of sequences and of instructions
// inside them. Result never aliases any of the inputs.
func Concat(seqs ...Sequence) Sequence {
	n := 0
	for _, s := range seqs {
		n += len(s)
	}
	out := make(Sequence, 0, n)
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

// Theme maps slot names to CSS values. Nil theme means no theme is active.
type Theme map[string]string

// Split scans text left to right and returns its instructions. Empty text
// produces empty sequence, otherwise the last instruction is always a
// literal (possibly empty).
func Split(text string) Sequence {
	if text == "" {
		return nil
	}

	var (
		result Sequence
		pos    int
	)
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			result = append(result, Literal(text[pos:m[0]]))
		}
		in := Instruction{Slot: text[m[2]:m[3]]}
		if m[4] >= 0 {
			in.Default = text[m[4]:m[5]]
		}
		result = append(result, in)
		pos = m[1]
	}
	return append(result, Literal(text[pos:]))
}
