package fanoutgen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/broady/fanout/fanoutgen/ir"
	"github.com/broady/fanout/fanoutgen/provider"
	"github.com/broady/fanout/fanoutgen/sink"
)

const testdata = "github.com/broady/fanout/fanoutgen/provider/testdata"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerate(t *testing.T) {
	var logs bytes.Buffer
	mem := sink.NewMemorySink()
	result, err := Generate(context.Background(), &Config{
		Packages: []string{testdata, testdata + "/config"},
		Sink:     mem,
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantPaths := []string{testdata + "/config/dispatch_gen.go", testdata + "/fanout_gen.go"}
	if got := mem.Paths(); !slices.Equal(got, wantPaths) {
		t.Errorf("written paths = %v, want %v", got, wantPaths)
	}
	for _, path := range wantPaths {
		if !sink.IsGenerated(mem.Get(path)) {
			t.Errorf("%s lacks the generated code header", path)
		}
	}

	if len(result.Packages) != 2 {
		t.Fatalf("got %d package results, want 2", len(result.Packages))
	}
	root, cfgPkg := result.Packages[0], result.Packages[1]
	if root.Package.Path != testdata || !root.Written || root.Size == 0 {
		t.Errorf("root result = %+v", root)
	}
	if filepath.Base(cfgPkg.Output) != "dispatch_gen.go" {
		t.Errorf("config package output = %s", cfgPkg.Output)
	}
	if result.Groups() != 10 {
		t.Errorf("Groups() = %d, want 10", result.Groups())
	}
	if got := root.Groups[0]; got.Type != "Tester" || got.Name != "" || !got.Bound ||
		!slices.Equal(got.Members, []string{"F1", "F2", "F3"}) {
		t.Errorf("first group = %+v", got)
	}
	if got := root.Groups[2]; got.Type != "Hooks" || got.Bound {
		t.Errorf("third group = %+v", got)
	}

	warnings := result.Warnings()
	if len(warnings) != 1 || warnings[0].Code != "CLONE_BY_VALUE" || warnings[0].Group != "Tester" {
		t.Errorf("warnings = %v", warnings)
	}

	for _, want := range []string{"file written", "level=WARN", "code=CLONE_BY_VALUE"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs should contain %q:\n%s", want, logs.String())
		}
	}
}

func TestGenerate_Check(t *testing.T) {
	mem := sink.NewMemorySink()
	result, err := Generate(context.Background(), &Config{
		Packages: []string{testdata},
		Sink:     mem,
		Check:    true,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(mem.Files()) != 0 {
		t.Errorf("check mode wrote %v", mem.Paths())
	}
	if result.Packages[0].Written || result.Packages[0].Size == 0 {
		t.Errorf("result = %+v", result.Packages[0])
	}
}

func TestGenerate_StaleOutput(t *testing.T) {
	mem := sink.NewMemorySink()
	_, err := FromPackages(testdata + "/stale").Logger(quietLogger()).ToSink(context.Background(), mem)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	src := string(mem.Get(testdata + "/stale/fanout_gen.go"))
	if !strings.Contains(src, "t.F2()") || strings.Contains(src, "Removed") {
		t.Errorf("unexpected output:\n%s", src)
	}
}

func TestGenerate_NoGroups(t *testing.T) {
	mem := sink.NewMemorySink()
	result, err := Generate(context.Background(), &Config{
		Packages: []string{"github.com/broady/fanout/fanoutgen/sink"},
		Sink:     mem,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(mem.Files()) != 0 || result.Packages[0].Written || len(result.Packages[0].Groups) != 0 {
		t.Errorf("packages without groups should get no file: %+v", result.Packages[0])
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		target  any
		wantErr string
	}{
		{
			name:    "mismatch",
			cfg:     Config{Packages: []string{testdata + "/mismatch"}},
			target:  new(*ir.SignatureMismatchError),
			wantErr: testdata + "/mismatch: ",
		},
		{
			name:    "value receiver",
			cfg:     Config{Packages: []string{testdata + "/byvalue"}},
			target:  new(*ir.UnsupportedReceiverError),
			wantErr: "value receiver",
		},
		{
			name:    "empty group",
			cfg:     Config{Packages: []string{testdata + "/empty"}},
			target:  new(*ir.ConfigurationError),
			wantErr: "declaration group has no members",
		},
		{
			name:    "no packages",
			cfg:     Config{},
			wantErr: "no packages specified",
		},
		{
			name:    "bad output",
			cfg:     Config{Packages: []string{testdata}, Output: "out.txt"},
			wantErr: `Output: must end with ".go"`,
		},
		{
			name:    "output with directory",
			cfg:     Config{Packages: []string{testdata}, Output: "gen/out.go"},
			wantErr: `Output: must not contain "/"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := sink.NewMemorySink()
			cfg := tt.cfg
			cfg.Sink = mem
			cfg.Logger = quietLogger()

			_, err := Generate(context.Background(), &cfg)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
			if tt.target != nil && !errors.As(err, tt.target) {
				t.Errorf("expected %T, got %T", tt.target, err)
			}
			if len(mem.Files()) != 0 {
				t.Errorf("nothing should be written, got %v", mem.Paths())
			}
		})
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	in := &Config{Packages: []string{"./..."}}
	got := applyConfigDefaults(in)
	if got.Output != provider.DefaultOutput || got.Concurrency <= 0 || got.Logger == nil {
		t.Errorf("defaults not applied: %+v", got)
	}
	if in.Output != "" || in.Logger != nil {
		t.Error("applyConfigDefaults mutated its input")
	}

	custom := applyConfigDefaults(&Config{Output: "x_gen.go", Concurrency: 2})
	if custom.Output != "x_gen.go" || custom.Concurrency != 2 {
		t.Errorf("explicit values overridden: %+v", custom)
	}
}

func TestSinkFor(t *testing.T) {
	pkg := &provider.Package{
		Info:   ir.PackageInfo{Path: "example.com/app/hooks", Name: "hooks", Dir: "/src/app/hooks"},
		Output: "/src/app/hooks/fanout_gen.go",
	}

	out, path := sinkFor(pkg, &Config{})
	fs, ok := out.(*sink.FilesystemSink)
	if !ok || fs.Root != "/src/app/hooks" || !fs.Protect || path != "fanout_gen.go" {
		t.Errorf("default sink = %#v, %q", out, path)
	}

	mem := sink.NewMemorySink()
	out, path = sinkFor(pkg, &Config{Sink: mem})
	if out != mem || path != "example.com/app/hooks/fanout_gen.go" {
		t.Errorf("configured sink = %#v, %q", out, path)
	}

	out, _ = sinkFor(pkg, &Config{Sink: mem, Check: true})
	if out != nil {
		t.Errorf("check mode sink = %#v, want nil", out)
	}
}

func TestGenerator_Fluent(t *testing.T) {
	g := FromPackages(testdata+"/config").
		Packages(testdata+"/stale").
		Concurrency(1).
		Logger(quietLogger())
	result, err := g.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(result.Packages) != 2 || result.Groups() != 3 {
		t.Errorf("got %d packages and %d groups", len(result.Packages), result.Groups())
	}
	if g.cfg.Check {
		t.Error("terminal operations should not change the generator")
	}
}

// TestGenerate_CheckedIn regenerates the dispatchers that internal/fanouttest
// checks in and runs, and fails if they are out of date.
func TestGenerate_CheckedIn(t *testing.T) {
	const pkg = "github.com/broady/fanout/internal/fanouttest"
	mem := sink.NewMemorySink()
	result, err := Generate(context.Background(), &Config{
		Packages: []string{pkg},
		Sink:     mem,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Groups() != 3 || len(result.Warnings()) != 0 {
		t.Errorf("got %d groups and warnings %v, want 3 groups", result.Groups(), result.Warnings())
	}

	want, err := os.ReadFile(filepath.Join("..", "internal", "fanouttest", provider.DefaultOutput))
	if err != nil {
		t.Fatal(err)
	}
	got := mem.Get(pkg + "/" + provider.DefaultOutput)
	if !bytes.Equal(got, want) {
		t.Errorf("internal/fanouttest/%s is stale; run go generate ./internal/fanouttest\ngot:\n%s",
			provider.DefaultOutput, got)
	}
}
