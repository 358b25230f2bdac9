// Package themes reads theme collections from YAML files.
//
// A theme file maps theme names to slot values:
//
//	light:
//	  primary: "#ffffff"
//	  font: "'Segoe UI', sans-serif"
//	dark:
//	  primary: "#000000"
package themes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	yaml "gopkg.in/yaml.v3"

	"themecss/themable"
)

// ErrUnknownTheme is returned when collection does not have requested theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Collection is a set of named themes.
type Collection map[string]themable.Theme

// Load reads collection from file.
func Load(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read themes file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse themes file '%s': %w", path, err)
	}
	return c, nil
}

// Parse decodes collection and checks theme and slot names.
func Parse(data []byte) (Collection, error) {
	var c Collection
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode themes: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	for name, theme := range c {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("theme with empty name")
		}
		for slot := range theme {
			if !validSlot(slot) {
				return nil, fmt.Errorf("theme '%s': invalid slot name '%s'", name, slot)
			}
		}
		if theme == nil {
			c[name] = themable.Theme{}
		}
	}
	return c, nil
}

// slot names are bare words, same as in theming tokens
func validSlot(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Names returns theme names in natural order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Get returns theme by name.
func (c Collection) Get(name string) (themable.Theme, error) {
	t, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return t, nil
}

// Values is what output name template can refer to.
type Values struct {
	Theme string
	Slots int
	Index int
}

// OutputName expands template (text/template with slim-sprig functions) and
// turns every path segment of the result into a safe file name keeping
// ".css" extension.
func OutputName(tmpl string, v Values) (string, error) {
	t, err := template.New("output_name").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("unable to parse output name template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, v); err != nil {
		return "", fmt.Errorf("unable to expand output name template: %w", err)
	}

	name := strings.TrimSuffix(strings.TrimSpace(buf.String()), ".css")
	var segments []string
	for s := range strings.SplitSeq(filepath.ToSlash(name), "/") {
		if s = slug.Make(s); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("output name template produced empty name for theme '%s'", v.Theme)
	}
	return filepath.Join(segments...) + ".css", nil
}
