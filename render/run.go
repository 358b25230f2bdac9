// Package render implements program subcommands: rendering themable CSS
// into plain stylesheets and inspecting how it is registered.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themecss/common"
	"themecss/css"
	"themecss/dom"
	"themecss/loader"
	"themecss/loop"
	"themecss/state"
	"themecss/themable"
	"themecss/themes"
)

type source struct {
	name string
	data []byte
}

func readSources(paths []string) ([]source, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	srcs := make([]source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("unable to read source: %w", err)
		}
		srcs = append(srcs, source{name: p, data: data})
	}
	return srcs, nil
}

// settings are loader parameters coming from configuration and command line.
type settings struct {
	mode        common.RunMode
	diagnostics bool
}

func settingsFromEnv(env *state.LocalEnv, cmd *cli.Command) settings {
	s := settings{mode: env.Cfg.Styles.RunMode, diagnostics: env.Cfg.Styles.Diagnostics}
	if cmd.Bool("async") {
		s.mode = common.RunModeAsync
	}
	return s
}

// Run renders sources with requested theme (or every theme) into plain CSS.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	srcs, err := readSources(cmd.Args().Slice())
	if err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	set := settingsFromEnv(env, cmd)
	dst := cmd.String("output")

	log.Info("Rendering starting", zap.Int("sources", len(srcs)), zap.Stringer("mode", set.mode))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var check *css.Inspector
	if cmd.Bool("check") {
		check = css.NewInspector(log)
	}

	if !cmd.Bool("all") {
		theme, err := env.SelectTheme(cmd.String("themes"), cmd.String("theme"))
		if err != nil {
			return fmt.Errorf("unable to select theme: %w", err)
		}
		out := renderCSS(ctx, srcs, theme, set, log)
		if err := verify(check, out, dst); err != nil {
			return err
		}
		env.Rpt.StoreData("render/output.css", []byte(out))
		return writeOutput(dst, out, env.Overwrite)
	}

	if dst == "" {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	collection, err := env.LoadThemes(cmd.String("themes"))
	if err != nil {
		return err
	}
	for i, name := range collection.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		theme := collection[name]
		fname, err := themes.OutputName(env.Cfg.Styles.OutputNameTemplate, themes.Values{Theme: name, Slots: len(theme), Index: i + 1})
		if err != nil {
			return err
		}
		out := renderCSS(ctx, srcs, theme, set, log.With(zap.String("theme", name)))
		if err := verify(check, out, fname); err != nil {
			return err
		}
		env.Rpt.StoreData("render/"+filepath.ToSlash(fname), []byte(out))
		if err := writeOutput(filepath.Join(dst, fname), out, env.Overwrite); err != nil {
			return err
		}
		log.Debug("Theme rendered", zap.String("theme", name), zap.String("file", fname))
	}
	return nil
}

// renderCSS registers sources through a loader which hands resolved text to
// a collector instead of the document. Theme is loaded first since collected
// styles are not kept for reloading.
func renderCSS(ctx context.Context, srcs []source, theme themable.Theme, set settings, log *zap.Logger) string {
	var out strings.Builder

	lp := loop.New()
	l := loader.New(dom.New(), lp,
		loader.WithLogger(log),
		loader.WithDiagnostics(set.diagnostics),
		loader.WithRunMode(set.mode))
	l.ConfigureLoadStyles(loader.InserterFunc(func(text string, _ themable.Sequence) {
		out.WriteString(text)
	}))
	l.LoadTheme(theme)

	for _, s := range srcs {
		if ctx.Err() != nil {
			break
		}
		l.LoadStyles(string(s.data))
	}
	lp.Drain()

	p := l.Perf()
	log.Debug("Styles registered", zap.Int("bytes", out.Len()), zap.Duration("spent", p.Duration))
	return out.String()
}

func verify(in *css.Inspector, out, name string) error {
	if in == nil {
		return nil
	}
	sum := in.Inspect([]byte(out), name)
	if len(sum.Warnings) > 0 {
		return fmt.Errorf("rendered css '%s' has %d problem(s): %s", name, len(sum.Warnings), strings.Join(sum.Warnings, "; "))
	}
	return nil
}

func writeOutput(fname, out string, overwrite bool) error {
	if fname == "" {
		_, err := os.Stdout.WriteString(out)
		return err
	}
	if _, err := os.Stat(fname); err == nil && !overwrite {
		return fmt.Errorf("output file already exists: %s", fname)
	}
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(fname, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
