package themable

import (
	"strings"
)

// WarnFunc is called when active theme has no value for a slot.
type WarnFunc func(slot, fallback string)

// Result of resolving a sequence.
type Result struct {
	Text     string
	Themable bool // sequence had at least one theme reference
}

// Resolve substitutes theme values into the sequence and joins the result.
// Theme value is used when present and not empty, otherwise instruction
// fallback is used. When theme is active and does not have the slot at all
// warn (if not nil) is called, this never affects the result.
func Resolve(seq Sequence, theme Theme, warn WarnFunc) Result {
	var (
		res Result
		sb  strings.Builder
	)
	for _, in := range seq {
		if !in.IsReference() {
			sb.WriteString(in.Raw)
			continue
		}
		res.Themable = true

		var value string
		if theme != nil {
			value = theme[in.Slot]
		}
		if value == "" {
			value = in.Fallback()
			// explicitly empty value is a request for default, do not complain
			if _, present := theme[in.Slot]; theme != nil && !present && warn != nil {
				warn(in.Slot, value)
			}
		}
		sb.WriteString(value)
	}
	res.Text = sb.String()
	return res
}
