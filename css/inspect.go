package css

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// tokenMarker starts theming token, if it survives resolution the token did
// not match the grammar.
const tokenMarker = "[theme:"

// Summary describes a stylesheet.
type Summary struct {
	Source           string
	Bytes            int
	Rulesets         int
	Selectors        []string
	Declarations     int
	CustomProperties int
	AtRules          map[string]int
	Imports          []string
	Warnings         []string
}

// AtRuleNames returns at-rule names found in the stylesheet, sorted.
func (s *Summary) AtRuleNames() []string {
	names := make([]string, 0, len(s.AtRules))
	for k := range s.AtRules {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Inspector walks CSS grammar and collects Summary. It never modifies or
// rejects CSS, parse problems become warnings.
type Inspector struct {
	log *zap.Logger
}

// NewInspector creates a new CSS inspector.
func NewInspector(log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{log: log.Named("css-inspect")}
}

// Inspect summarizes CSS text. The optional source parameter identifies
// what is being inspected (for debug logging).
func (in *Inspector) Inspect(data []byte, source ...string) *Summary {
	sum := &Summary{
		Bytes:   len(data),
		AtRules: make(map[string]int),
	}
	if len(source) > 0 {
		sum.Source = source[0]
		in.log.Debug("Inspecting CSS", zap.String("source", sum.Source), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sum.Warnings = append(sum.Warnings, "parse error: "+err.Error())
				in.log.Debug("CSS parse error", zap.Error(err))
			}
			return sum

		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			sum.AtRules[name]++
			if name == "@import" {
				if u := importURL(parser.Values()); u != "" {
					sum.Imports = append(sum.Imports, u)
				}
			}

		case css.QualifiedRuleGrammar:
			// selector followed by comma, the rest comes with the ruleset
			sum.Selectors = append(sum.Selectors, selectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			sum.Rulesets++
			sum.Selectors = append(sum.Selectors, selectors(data, parser.Values())...)

		case css.DeclarationGrammar:
			sum.Declarations++
			in.checkValues(sum, string(data), parser.Values())

		case css.CustomPropertyGrammar:
			sum.CustomProperties++
			in.checkValues(sum, string(data), parser.Values())
		}
	}
}

func (in *Inspector) checkValues(sum *Summary, property string, values []css.Token) {
	for _, v := range values {
		if bytes.Contains(v.Data, []byte(tokenMarker)) {
			w := "unresolved theme token in " + property + ": " + string(v.Data)
			sum.Warnings = append(sum.Warnings, w)
			in.log.Debug("Unresolved theme token", zap.String("property", property), zap.ByteString("value", v.Data))
		}
	}
}

// selectors builds selector list from token data, grouped selectors are
// split.
func selectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var out []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// importURL handles @import "url"; @import url("url"); @import url(url);
func importURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(s)
		}
	}
	return ""
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
