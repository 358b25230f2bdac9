package render

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themecss/common"
	"themecss/css"
	"themecss/dom"
	"themecss/loader"
	"themecss/loop"
	"themecss/state"
	"themecss/themable"
	"themecss/utils/debug"
)

// Inspect registers sources into an in-memory document and describes the
// result.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	srcs, err := readSources(cmd.Args().Slice())
	if err != nil {
		return err
	}
	theme, err := env.SelectTheme(cmd.String("themes"), cmd.String("theme"))
	if err != nil {
		return fmt.Errorf("unable to select theme: %w", err)
	}
	set := settingsFromEnv(env, cmd)
	legacy := env.Cfg.Styles.LegacyStyleSheets || cmd.Bool("legacy")

	report := inspectDocument(srcs, theme, set, legacy, log)
	env.Rpt.StoreData("inspect.txt", []byte(report))
	_, err = io.WriteString(os.Stdout, report)
	return err
}

// inspectDocument loads styles first and theme afterwards, so themable
// records go through reload.
func inspectDocument(srcs []source, theme themable.Theme, set settings, legacy bool, log *zap.Logger) string {
	doc := dom.New(dom.WithLegacyStyleSheets(legacy))
	lp := loop.New()
	l := loader.New(doc, lp,
		loader.WithLogger(log),
		loader.WithDiagnostics(set.diagnostics),
		loader.WithRunMode(set.mode))

	for _, s := range srcs {
		l.LoadStyles(string(s.data))
	}
	lp.Drain()
	if theme != nil {
		l.LoadTheme(theme)
	}

	tw := debug.NewTreeWriter()
	inspector := css.NewInspector(log)

	head := doc.Head()
	tw.Line(0, "document (legacy: %t, mode: %s, elements: %d)", legacy, set.mode, len(head))
	for i, e := range head {
		sum := inspector.Inspect([]byte(e.Text()), e.ID())
		tw.Line(1, "[%d] style %s (%d bytes)", i, e.ID(), sum.Bytes)
		tw.Line(2, "rulesets: %d, declarations: %d, custom properties: %d", sum.Rulesets, sum.Declarations, sum.CustomProperties)
		for _, name := range sum.AtRuleNames() {
			tw.Line(2, "@%s: %d", name, sum.AtRules[name])
		}
		for _, u := range sum.Imports {
			tw.Line(2, "import %s", u)
		}
		for _, w := range sum.Warnings {
			tw.TextBlock(2, "warning", w)
		}
	}

	for _, scope := range []common.ClearScope{common.ClearScopeOnlyThemable, common.ClearScopeOnlyNonThemable} {
		records := l.Records(scope)
		tw.Line(0, "records %s (%d)", scope, len(records))
		for i, r := range records {
			id := "-"
			if e, ok := r.Element.(interface{ ID() string }); ok {
				id = e.ID()
			}
			tw.Line(1, "[%d] element %s", i, id)
			tw.Sequence(2, r.Sequence)
		}
	}

	tw.Theme(0, "active", l.Theme())
	p := l.Perf()
	tw.Line(0, "perf: elements %d, duration %s", p.Count, p.Duration)
	return tw.String()
}
