package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/fanout/fanoutgen"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns to check." default:"."`
	Output   string   `help:"Generated file name for packages whose fanout.yaml sets none." short:"o" default:"fanout_gen.go"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	result, err := fanoutgen.Generate(ctx, &fanoutgen.Config{
		Packages: c.Packages,
		Output:   c.Output,
		Check:    true,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	report(os.Stdout, result)
	return nil
}

func report(w io.Writer, result *fanoutgen.Result) {
	for _, p := range result.Packages {
		if len(p.Groups) == 0 {
			continue
		}
		fmt.Fprintf(w, "✓ %s → %s\n", p.Package.Path, filepath.Base(p.Output))
		for _, g := range p.Groups {
			name := g.Type
			if g.Name != "" {
				name += " (" + g.Name + ")"
			}
			kind := "free"
			if g.Bound {
				kind = "bound"
			}
			fmt.Fprintf(w, "    %s, %s: %s\n", name, kind, strings.Join(g.Members, ", "))
		}
		for _, warn := range p.Warnings {
			fmt.Fprintf(w, "    ! %s: %s\n", warn.Code, warn.Message)
		}
	}
	fmt.Fprintf(w, "✓ %d dispatcher families valid\n", result.Groups())
}
