package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/broady/fanout/cmd/fanout/internal/check"
	"github.com/broady/fanout/cmd/fanout/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Log debug output." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate dispatchers for annotated types."`
	Check   check.Cmd  `cmd:"" help:"Validate declaration groups without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

// newLogger logs to w as text for terminals and as JSON otherwise.
func newLogger(w io.Writer, terminal, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if terminal {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("fanout"),
		kong.Description("Generate dispatchers that invoke every member of a declaration group."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	logger := newLogger(os.Stderr, isTerminal(os.Stderr), cli.Verbose)
	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}
