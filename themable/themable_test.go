package themable

import (
	"reflect"
	"strings"
	"testing"
)

var splitTests = []struct {
	name  string
	input string
	want  Sequence
}{
	{
		name:  "empty",
		input: "",
		want:  nil,
	},
	{
		name:  "no_tokens",
		input: ".a { color: red; }",
		want:  Sequence{Literal(".a { color: red; }")},
	},
	{
		name:  "with_default",
		input: `a "[theme: color, default: #fff]" b`,
		want:  Sequence{Literal("a "), Reference("color", "#fff"), Literal(" b")},
	},
	{
		name:  "single_quotes_no_default",
		input: `.x { color: '[theme:primary]'; }`,
		want:  Sequence{Literal(".x { color: "), Reference("primary", ""), Literal("; }")},
	},
	{
		name:  "token_only",
		input: `"[theme: bg]"`,
		want:  Sequence{Reference("bg", ""), Literal("")},
	},
	{
		name:  "back_to_back",
		input: `"[theme: a]""[theme: b, default: 1px solid]"`,
		want:  Sequence{Reference("a", ""), Reference("b", "1px solid"), Literal("")},
	},
	{
		name:  "function_default_with_spaces",
		input: `border: "[theme: border , default: rgba(0, 0, 0, .4) ]";`,
		want:  Sequence{Literal("border: "), Reference("border", "rgba(0, 0, 0, .4)"), Literal(";")},
	},
	{
		name:  "quoted_default",
		input: `font-family: "[theme: font, default: 'Segoe UI']";`,
		want:  Sequence{Literal("font-family: "), Reference("font", "'Segoe UI'"), Literal(";")},
	},
	{
		name:  "malformed_kept_literal",
		input: `color: "[theme: bad-name]"; x: "[theme: ok, default: a;b]"`,
		want:  Sequence{Literal(`color: "[theme: bad-name]"; x: "[theme: ok, default: a;b]"`)},
	},
	{
		name:  "missing_quotes_kept_literal",
		input: `color: [theme: primary];`,
		want:  Sequence{Literal(`color: [theme: primary];`)},
	},
}

func TestSplit(t *testing.T) {
	for _, test := range splitTests {
		t.Run(test.name, func(t *testing.T) {
			got := Split(test.input)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Split(%q):\n  got: %#v\n want: %#v", test.input, got, test.want)
			}
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	inputs := []string{
		"body { margin: 0 }",
		"\n\t ",
		`"not a token"`,
		"a{b:c}d{e:f}",
	}
	for _, in := range inputs {
		seq := Split(in)
		if len(seq) != 1 || seq[0].IsReference() || seq[0].Raw != in {
			t.Errorf("Split(%q) = %#v, want single literal", in, seq)
		}
	}
}

func TestSplit_Reassemble(t *testing.T) {
	input := `.a { color: "[theme: c, default: red]"; background: "[theme: bg]"; }`
	var sb strings.Builder
	for _, in := range Split(input) {
		if in.IsReference() {
			sb.WriteString("<" + in.Slot + ">")
			continue
		}
		sb.WriteString(in.Raw)
	}
	if got, want := sb.String(), ".a { color: <c>; background: <bg>; }"; got != want {
		t.Errorf("reassembled = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	seq := Sequence{Literal("a "), Reference("color", "#fff"), Literal(" b")}

	tests := []struct {
		name  string
		seq   Sequence
		theme Theme
		want  string
	}{
		{name: "no_theme_uses_default", seq: seq, theme: nil, want: "a #fff b"},
		{name: "missing_slot_uses_default", seq: seq, theme: Theme{"other": "x"}, want: "a #fff b"},
		{name: "theme_value", seq: seq, theme: Theme{"color": "#000"}, want: "a #000 b"},
		{name: "empty_value_uses_default", seq: seq, theme: Theme{"color": ""}, want: "a #fff b"},
		{name: "no_default_inherit", seq: Sequence{Reference("x", "")}, theme: nil, want: "inherit"},
		{name: "no_default_empty_theme", seq: Sequence{Reference("x", "")}, theme: Theme{}, want: "inherit"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := Resolve(test.seq, test.theme, nil)
			if res.Text != test.want {
				t.Errorf("Resolve() = %q, want %q", res.Text, test.want)
			}
			if !res.Themable {
				t.Error("expected themable result")
			}
		})
	}
}

func TestResolve_NotThemable(t *testing.T) {
	res := Resolve(Split("p { margin: 0 }"), Theme{"a": "b"}, nil)
	if res.Themable {
		t.Error("literal only sequence reported as themable")
	}
	if res.Text != "p { margin: 0 }" {
		t.Errorf("Resolve() = %q", res.Text)
	}
}

func TestResolve_Warn(t *testing.T) {
	seq := Split(`"[theme: a, default: 1]" "[theme: b]" "[theme: c]"`)

	type call struct{ slot, fallback string }
	var calls []call
	warn := func(slot, fallback string) {
		calls = append(calls, call{slot, fallback})
	}

	res := Resolve(seq, Theme{"c": "", "z": "q"}, warn)
	if res.Text != "1 inherit inherit" {
		t.Errorf("Resolve() = %q", res.Text)
	}
	want := []call{{"a", "1"}, {"b", "inherit"}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("warnings = %v, want %v", calls, want)
	}

	calls = nil
	Resolve(seq, nil, warn)
	if len(calls) != 0 {
		t.Errorf("no theme must not warn, got %v", calls)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	seq := Split(`.a{color:"[theme: a]";background:"[theme: b, default: #123]"}`)
	theme := Theme{"a": "red"}
	first := Resolve(seq, theme, nil)
	second := Resolve(seq, theme, nil)
	if first != second {
		t.Errorf("resolution is not stable: %q vs %q", first.Text, second.Text)
	}
}

func TestConcat(t *testing.T) {
	a := Sequence{Literal("1"), Reference("x", "")}
	b := Sequence{Literal("2")}
	got := Concat(a, nil, b)
	want := Sequence{Literal("1"), Reference("x", ""), Literal("2")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Concat() = %#v", got)
	}
	got[0].Raw = "changed"
	if a[0].Raw != "1" {
		t.Error("Concat result aliases its input")
	}
	if len(Concat()) != 0 {
		t.Error("Concat() of nothing must be empty")
	}
}
