// Package fanoutgen generates fanout dispatchers for Go packages.
//
// For every type annotated with //fanout:gen (or listed in the package's
// fanout.yaml) it writes, into one generated file per package, a tag type
// identifying the type's members, metadata, and six dispatchers that invoke
// the members in declaration order or in a caller specified order.
package fanoutgen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/broady/fanout/fanoutgen/golang"
	"github.com/broady/fanout/fanoutgen/ir"
	"github.com/broady/fanout/fanoutgen/provider"
	"github.com/broady/fanout/fanoutgen/sink"
	"github.com/broady/fanout/internal/directive"
)

// Result describes one generation run.
type Result struct {
	// Packages lists every loaded package in import path order.
	Packages []PackageResult
}

// Groups returns the number of dispatcher families generated.
func (r *Result) Groups() int {
	n := 0
	for _, p := range r.Packages {
		n += len(p.Groups)
	}
	return n
}

// Warnings returns the warnings of every package.
func (r *Result) Warnings() []ir.Warning {
	var ws []ir.Warning
	for _, p := range r.Packages {
		ws = append(ws, p.Warnings...)
	}
	return ws
}

// PackageResult describes the generated file of one package.
type PackageResult struct {
	Package ir.PackageInfo

	// Output is the absolute path of the generated file.
	Output string

	// Groups are the dispatcher families in emission order. A package
	// without declaration groups has none and gets no file.
	Groups []GroupSummary

	// Size is the length of the generated source.
	Size int64

	// Written reports whether the file was sent to the sink.
	Written bool

	Warnings []ir.Warning
}

// GroupSummary describes one generated dispatcher family.
type GroupSummary struct {
	// Type is the annotated type.
	Type string

	// Name is the family's suffix, empty for the default family.
	Name string

	// Members are the member names in declaration order.
	Members []string

	// Bound reports whether the dispatchers are methods.
	Bound bool
}

// Generate loads the configured packages and generates the dispatchers of
// each. Packages are independent: they are generated concurrently, and a
// package whose groups fail validation gets no file. The first error is
// returned.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}
	if err := directive.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = applyConfigDefaults(cfg)
	logger := cfg.Logger

	p := &provider.SourceProvider{}
	pkgs, err := p.LoadPackages(ctx, provider.SourceInputOptions{
		Packages: cfg.Packages,
		Dir:      cfg.Dir,
		Output:   cfg.Output,
		Overlay:  cfg.Overlay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	results := make([]PackageResult, len(pkgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, pkg := range pkgs {
		logger.DebugContext(ctx, "package loaded",
			slog.String("package", pkg.Info.Path),
			slog.String("output", pkg.Output),
		)
		g.Go(func() error {
			res, err := generatePackage(ctx, p, pkg, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", pkg.Info.Path, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Packages: results}, nil
}

func generatePackage(ctx context.Context, p *provider.SourceProvider, pkg *provider.Package, cfg *Config) (*PackageResult, error) {
	logger := cfg.Logger.With(slog.String("package", pkg.Info.Path))
	res := &PackageResult{Package: pkg.Info, Output: pkg.Output}

	groups, err := p.BuildGroups(pkg)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		logger.DebugContext(ctx, "no declaration groups")
		return res, nil
	}

	out, path := sinkFor(pkg, cfg)
	gen := &golang.GoGenerator{}
	genResult, err := gen.Generate(ctx, groups, golang.GenerateOptions{
		Sink:    out,
		Path:    path,
		Package: pkg.Info,
	})
	if err != nil {
		return nil, err
	}

	for _, grp := range groups {
		summary := GroupSummary{Type: grp.Name, Name: grp.Options.Name, Bound: grp.Bound()}
		for _, m := range grp.Members {
			summary.Members = append(summary.Members, m.Name)
		}
		res.Groups = append(res.Groups, summary)
		logger.DebugContext(ctx, "group validated",
			slog.String("type", grp.Name),
			slog.String("family", grp.Options.Name),
			slog.Int("members", len(grp.Members)),
		)
	}
	for _, w := range genResult.Warnings {
		attrs := []any{slog.String("code", w.Code), slog.String("group", w.Group)}
		if w.Source != nil {
			attrs = append(attrs, slog.String("source", w.Source.String()))
		}
		logger.WarnContext(ctx, w.Message, attrs...)
	}
	res.Warnings = genResult.Warnings
	if len(genResult.Files) > 0 {
		res.Size = genResult.Files[0].Size
	}

	if out != nil {
		res.Written = true
		logger.InfoContext(ctx, "file written",
			slog.String("path", pkg.Output),
			slog.Int("groups", genResult.GroupsGenerated),
			slog.Int64("bytes", res.Size),
		)
	}
	return res, nil
}

// sinkFor returns where the file of pkg is written and its path there. The
// sink is nil in check mode.
func sinkFor(pkg *provider.Package, cfg *Config) (sink.OutputSink, string) {
	name := filepath.Base(pkg.Output)
	switch {
	case cfg.Check:
		return nil, name
	case cfg.Sink != nil:
		return cfg.Sink, pkg.Info.Path + "/" + name
	default:
		return sink.NewFilesystemSink(filepath.Dir(pkg.Output)), name
	}
}
