package fanoutgen

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/broady/fanout/fanoutgen/provider"
	"github.com/broady/fanout/fanoutgen/sink"
)

// Config holds the configuration for dispatcher generation.
type Config struct {
	// Packages are the package patterns to generate for, with go command
	// semantics. e.g. []string{"./..."}
	Packages []string

	// Dir is the directory patterns are resolved in.
	// Default: the current directory.
	Dir string

	// Output is the generated file name used for packages whose fanout.yaml
	// does not name one.
	// Default: "fanout_gen.go"
	Output string `validate:"omitempty,endswith=.go,excludes=/"`

	// Sink receives generated files. Paths are import paths joined with the
	// output file name, e.g. "example.com/app/hooks/fanout_gen.go".
	// Default: each file is written into its package directory, replacing
	// only previously generated files.
	Sink sink.OutputSink

	// Check validates every declaration group and synthesizes its code
	// without writing anything.
	Check bool

	// Concurrency limits how many packages are generated at once.
	// Default: GOMAXPROCS.
	Concurrency int `validate:"gte=0"`

	// Overlay replaces file contents while loading packages, as in
	// packages.Config.
	Overlay map[string][]byte

	// Logger receives progress and warnings.
	// Default: slog.Default().
	Logger *slog.Logger
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Output == "" {
		result.Output = provider.DefaultOutput
	}
	if result.Concurrency <= 0 {
		result.Concurrency = runtime.GOMAXPROCS(0)
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}

	return &result
}

// Generator provides a fluent API for dispatcher generation.
// Create with FromPackages() and configure with method chaining.
//
// Example:
//
//	fanoutgen.FromPackages("./...").
//	    Output("dispatch_gen.go").
//	    Run(ctx)
type Generator struct {
	cfg Config
}

// FromPackages creates a Generator for the given package patterns.
func FromPackages(patterns ...string) *Generator {
	return &Generator{cfg: Config{Packages: patterns}}
}

// Packages adds package patterns.
func (g *Generator) Packages(patterns ...string) *Generator {
	g.cfg.Packages = append(g.cfg.Packages, patterns...)
	return g
}

// Dir sets the directory patterns are resolved in.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Output sets the default generated file name.
func (g *Generator) Output(name string) *Generator {
	g.cfg.Output = name
	return g
}

// Concurrency limits how many packages are generated at once.
func (g *Generator) Concurrency(n int) *Generator {
	g.cfg.Concurrency = n
	return g
}

// Logger sets the logger for progress and warnings.
func (g *Generator) Logger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// Overlay replaces the content of a file while loading packages.
func (g *Generator) Overlay(path string, content []byte) *Generator {
	if g.cfg.Overlay == nil {
		g.cfg.Overlay = make(map[string][]byte)
	}
	g.cfg.Overlay[path] = content
	return g
}

// ToSink writes generated files to s instead of package directories.
// This is a terminal operation.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*Result, error) {
	cfg := g.cfg
	cfg.Sink = s
	return Generate(ctx, &cfg)
}

// Check validates and synthesizes without writing.
// This is a terminal operation.
func (g *Generator) Check(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	cfg.Check = true
	return Generate(ctx, &cfg)
}

// Run writes each generated file into its package directory.
// This is a terminal operation.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	return Generate(ctx, &cfg)
}
