package render

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"themecss/state"
	"themecss/themable"
	"themecss/utils/debug"
)

// Split prints instructions of every source.
func Split(ctx context.Context, cmd *cli.Command) error {
	srcs, err := readSources(cmd.Args().Slice())
	if err != nil {
		return err
	}
	out := splitSources(srcs)
	state.EnvFromContext(ctx).Rpt.StoreData("split.txt", []byte(out))
	_, err = io.WriteString(os.Stdout, out)
	return err
}

func splitSources(srcs []source) string {
	tw := debug.NewTreeWriter()
	for _, s := range srcs {
		tw.Line(0, "%s", s.name)
		tw.Sequence(1, themable.Split(string(s.data)))
	}
	return tw.String()
}

// ListThemes prints themes of the collection in natural order.
func ListThemes(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	c, err := env.LoadThemes(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("unable to list themes: %w", err)
	}
	tw := debug.NewTreeWriter()
	for _, name := range c.Names() {
		if cmd.Bool("slots") {
			tw.Theme(0, name, c[name])
			continue
		}
		tw.Line(0, "%s (%d slots)", name, len(c[name]))
	}
	_, err = io.WriteString(os.Stdout, tw.String())
	return err
}
