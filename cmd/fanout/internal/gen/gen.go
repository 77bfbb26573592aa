package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/fanout/fanoutgen"
)

type Cmd struct {
	Packages    []string `arg:"" optional:"" help:"Package patterns to generate for." default:"."`
	Output      string   `help:"Generated file name for packages whose fanout.yaml sets none." short:"o" default:"fanout_gen.go"`
	Concurrency int      `help:"Number of packages generated at once (default: GOMAXPROCS)." short:"j"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	result, err := fanoutgen.Generate(ctx, &fanoutgen.Config{
		Packages:    c.Packages,
		Output:      c.Output,
		Concurrency: c.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	report(os.Stdout, result)
	return nil
}

func report(w io.Writer, result *fanoutgen.Result) {
	files := 0
	for _, p := range result.Packages {
		if p.Written {
			files++
		}
	}
	fmt.Fprintf(w, "✓ %d dispatcher families in %d files\n", result.Groups(), files)
	if n := len(result.Warnings()); n > 0 {
		fmt.Fprintf(w, "! %d warnings\n", n)
	}
}
