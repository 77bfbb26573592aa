// Package provider extracts declaration groups from Go source code and
// converts them to the intermediate representation.
package provider

import (
	"cmp"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/broady/fanout/fanoutgen/ir"
	"github.com/broady/fanout/internal/config"
	"github.com/broady/fanout/internal/directive"
)

// DefaultOutput is the generated file name used when neither the options nor
// fanout.yaml name one.
const DefaultOutput = "fanout_gen.go"

// SourceProvider extracts declaration groups by analyzing Go source code.
type SourceProvider struct{}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Packages are the package patterns to analyze, with go command
	// semantics.
	Packages []string

	// Dir is the directory patterns are resolved in. If empty, the current
	// directory is used.
	Dir string

	// Output is the generated file name for packages whose fanout.yaml does
	// not set one. Defaults to DefaultOutput.
	Output string

	// Overlay maps absolute file paths to contents that replace the files on
	// disk, as in packages.Config.
	Overlay map[string][]byte
}

// Package is a loaded and type-checked input package.
type Package struct {
	Info ir.PackageInfo

	// Output is the absolute path of the generated file.
	Output string

	// Config is the package's fanout.yaml, or an empty configuration.
	Config *config.Config

	pkg *packages.Package
}

// LoadPackages loads and type-checks the packages matching opts.Packages.
//
// A previously generated output file is replaced by an empty file while
// loading, so stale dispatchers never prevent regeneration and never count as
// members.
func (p *SourceProvider) LoadPackages(ctx context.Context, opts SourceInputOptions) ([]*Package, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}

	// First pass: locate package directories and their configuration.
	listCfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     opts.Dir,
		Overlay: opts.Overlay,
	}
	listed, err := packages.Load(listCfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(listed) == 0 {
		return nil, fmt.Errorf("no packages found")
	}

	overlay := maps.Clone(opts.Overlay)
	if overlay == nil {
		overlay = make(map[string][]byte)
	}
	byPath := make(map[string]*Package, len(listed))
	for _, lp := range listed {
		if len(lp.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", lp.PkgPath, lp.Errors)
		}
		if len(lp.GoFiles) == 0 {
			return nil, fmt.Errorf("package %s has no Go files", lp.PkgPath)
		}
		dir := filepath.Dir(lp.GoFiles[0])
		cfg, err := config.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		name := cfg.Output
		if name == "" {
			name = opts.Output
		}
		out := filepath.Join(dir, name)
		if slices.Contains(lp.GoFiles, out) && isGeneratedFile(out, overlay) {
			overlay[out] = []byte("package " + lp.Name + "\n")
		}
		byPath[lp.PkgPath] = &Package{
			Info:   ir.PackageInfo{Path: lp.PkgPath, Name: lp.Name, Dir: dir},
			Output: out,
			Config: cfg,
		}
	}

	// Second pass: type-check with stale output neutralized.
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Dir:     opts.Dir,
		Overlay: overlay,
	}
	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for errors in loaded packages
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	result := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		in, ok := byPath[pkg.PkgPath]
		if !ok {
			return nil, fmt.Errorf("package %s was not listed", pkg.PkgPath)
		}
		in.pkg = pkg
		result = append(result, in)
	}
	slices.SortFunc(result, func(a, b *Package) int { return strings.Compare(a.Info.Path, b.Info.Path) })
	return result, nil
}

// isGeneratedFile reports whether the file at path carries a generated code
// header.
func isGeneratedFile(path string, overlay map[string][]byte) bool {
	src, ok := overlay[path]
	if !ok {
		var err error
		if src, err = os.ReadFile(path); err != nil {
			return false
		}
	}
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(f)
}

// BuildGroups extracts the declaration groups of pkg: one group per
// dispatcher family declared with //fanout:gen or in fanout.yaml, in that
// order. Groups are not validated.
func (p *SourceProvider) BuildGroups(pkg *Package) ([]*ir.Group, error) {
	if pkg.pkg == nil {
		return nil, fmt.Errorf("package %s is not loaded", pkg.Info.Path)
	}
	b := &groupBuilder{
		pkg:     pkg.pkg,
		imports: newImportSet(pkg.pkg.Types),
		decls:   make(map[*types.Func]*ast.FuncDecl),
		docs:    make(map[*types.TypeName]*ast.CommentGroup),
		free:    make(map[string][]*types.Func),
	}
	if err := b.scan(); err != nil {
		return nil, err
	}
	for _, g := range pkg.Config.Groups {
		b.families = append(b.families, family{
			typeName: g.Type,
			opts:     g.Options,
			src:      ir.Source{File: filepath.Join(pkg.Info.Dir, config.FileName)},
		})
	}
	if err := b.checkFamilies(); err != nil {
		return nil, err
	}

	groups := make([]*ir.Group, 0, len(b.families))
	for _, f := range b.families {
		g, err := b.buildGroup(f)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// family is one requested set of dispatchers for a type.
type family struct {
	typeName string
	opts     directive.Options
	src      ir.Source
}

// groupBuilder accumulates directives and declarations of one package.
type groupBuilder struct {
	pkg      *packages.Package
	imports  *importSet
	families []family
	decls    map[*types.Func]*ast.FuncDecl
	docs     map[*types.TypeName]*ast.CommentGroup
	files    []*directive.File
	free     map[string][]*types.Func  // group type → member functions
	freeSrc  map[string]token.Position // group type → first member directive
	used     map[string]bool           // import paths referenced by the current group
}

// scan parses directives from every hand-written file and indexes the
// declarations they refer to.
func (b *groupBuilder) scan() error {
	b.freeSrc = make(map[string]token.Position)
	for _, f := range b.pkg.Syntax {
		if ast.IsGenerated(f) {
			continue
		}
		file, err := directive.ParseFile(b.pkg.Fset, f)
		if err != nil {
			return err
		}

		for _, decl := range f.Decls {
			switch decl := decl.(type) {
			case *ast.FuncDecl:
				if fn, ok := b.pkg.TypesInfo.Defs[decl.Name].(*types.Func); ok {
					b.decls[fn] = decl
				}
			case *ast.GenDecl:
				for _, spec := range decl.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					tn, ok := b.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
					if !ok {
						continue
					}
					doc := ts.Doc
					if doc == nil {
						doc = decl.Doc
					}
					b.docs[tn] = doc
				}
			}
		}

		for _, d := range file.Gens {
			b.families = append(b.families, family{typeName: d.Decl, opts: d.Options, src: source(d.Pos)})
		}
		b.files = append(b.files, file)
		for _, d := range file.Members {
			fn, ok := b.pkg.Types.Scope().Lookup(d.Decl).(*types.Func)
			if !ok {
				return ir.Configf(source(d.Pos), "%s is not a function", d.Decl)
			}
			if _, ok := b.freeSrc[d.Target]; !ok {
				b.freeSrc[d.Target] = d.Pos
			}
			b.free[d.Target] = append(b.free[d.Target], fn)
		}
	}
	return nil
}

// skipped reports whether method recv.name is excluded from its group.
func (b *groupBuilder) skipped(recv, name string) bool {
	return slices.ContainsFunc(b.files, func(f *directive.File) bool { return f.Skipped(recv, name) })
}

// checkFamilies rejects a family declared twice and member directives that
// name a type without dispatchers.
func (b *groupBuilder) checkFamilies() error {
	seen := make(map[[2]string]ir.Source)
	for _, f := range b.families {
		key := [2]string{f.typeName, f.opts.Name}
		if prev, ok := seen[key]; ok {
			return ir.Configf(f.src, "dispatcher family %q of type %s is already declared at %s",
				f.opts.Name, f.typeName, prev)
		}
		seen[key] = f.src
	}
	for _, target := range slices.Sorted(maps.Keys(b.free)) {
		if !slices.ContainsFunc(b.families, func(f family) bool { return f.typeName == target }) {
			return ir.Configf(source(b.freeSrc[target]),
				"%smember names %s, which has no %sgen directive or %s group",
				directive.Prefix, target, directive.Prefix, config.FileName)
		}
	}
	return nil
}

func (b *groupBuilder) buildGroup(f family) (*ir.Group, error) {
	tn, ok := b.pkg.Types.Scope().Lookup(f.typeName).(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil, ir.Configf(f.src, "%s is not a named type declared in package %s", f.typeName, b.pkg.PkgPath)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, ir.Configf(f.src, "%s is not a named type", f.typeName)
	}

	b.used = make(map[string]bool)
	g := &ir.Group{
		Name:          tn.Name(),
		Exported:      tn.Exported(),
		Options:       ir.Options{Name: f.opts.Name, Clone: slices.Clone(f.opts.Clone)},
		Documentation: parseDocumentation(b.docs[tn]),
		Source:        b.source(tn.Pos()),
		PackageNames:  b.pkg.Types.Scope().Names(),
		TypeNames:     typeNames(named),
	}

	var fns []*types.Func
	if free := b.free[f.typeName]; len(free) > 0 {
		fns = free
	} else {
		for fn := range named.Methods() {
			if b.skipped(tn.Name(), fn.Name()) || b.inGeneratedFile(fn) {
				continue
			}
			fns = append(fns, fn)
		}
		slices.SortFunc(fns, func(x, y *types.Func) int { return cmp.Compare(x.Pos(), y.Pos()) })
	}

	for _, fn := range fns {
		g.Members = append(g.Members, b.member(fn))
	}

	if len(fns) > 0 {
		if sig := fns[0].Type().(*types.Signature); sig.Recv() != nil {
			g.ReceiverName = sig.Recv().Name()
			if g.ReceiverName == "" || g.ReceiverName == "_" {
				g.ReceiverName = strings.ToLower(tn.Name()[:1])
			}
			for i := range sig.RecvTypeParams().Len() {
				tp := sig.RecvTypeParams().At(i)
				name := tp.Obj().Name()
				if name == "_" {
					name = fmt.Sprintf("_T%d", i)
				}
				g.TypeParams = append(g.TypeParams, ir.TypeParam{
					Name:       name,
					Constraint: b.typeString(tp.Constraint()),
				})
			}
		}
	}

	for _, path := range slices.Sorted(maps.Keys(b.used)) {
		g.Imports = append(g.Imports, b.imports.importFor(path))
	}
	return g, nil
}

// member converts a function or method to a Member.
func (b *groupBuilder) member(fn *types.Func) ir.Member {
	sig := fn.Type().(*types.Signature)
	m := ir.Member{
		Name:   fn.Name(),
		Source: b.source(fn.Pos()),
	}
	if decl := b.decls[fn]; decl != nil {
		m.Documentation = parseDocumentation(decl.Doc)
	}

	if recv := sig.Recv(); recv != nil {
		m.Receiver = ir.ReceiverValue
		if _, ok := recv.Type().(*types.Pointer); ok {
			m.Receiver = ir.ReceiverPointer
		}
	}

	for i := range sig.TypeParams().Len() {
		tp := sig.TypeParams().At(i)
		m.TypeParams = append(m.TypeParams, ir.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: b.typeString(tp.Constraint()),
		})
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		p := ir.Param{Index: i, Name: v.Name()}
		if s, ok := v.Type().Underlying().(*types.Slice); ok && sig.Variadic() && i == params.Len()-1 {
			p.Variadic = true
			p.Type = b.typeString(s.Elem())
			p.Clone = ir.CloneSlice
		} else {
			p.Type = b.typeString(v.Type())
			p.Clone = cloneKind(v.Type(), b.pkg.Types)
		}
		m.Params = append(m.Params, p)
	}

	results := sig.Results()
	for i := range results.Len() {
		m.Results = append(m.Results, b.typeString(results.At(i).Type()))
	}
	return m
}

// cloneKind reports how the generated code duplicates a value of type t.
func cloneKind(t types.Type, pkg *types.Package) ir.CloneKind {
	if hasCloneMethod(t, pkg) {
		return ir.CloneMethod
	}
	switch u := t.Underlying().(type) {
	case *types.Slice:
		return ir.CloneSlice
	case *types.Map:
		return ir.CloneMap
	case *types.Pointer:
		return ir.ClonePointer
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return ir.CloneUnsupported
		}
		return ir.CloneValue
	case *types.Struct, *types.Array:
		return ir.CloneValue
	default:
		return ir.CloneUnsupported
	}
}

// hasCloneMethod reports whether t has a method Clone() t.
func hasCloneMethod(t types.Type, pkg *types.Package) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, "Clone")
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	return sig.Params().Len() == 0 &&
		sig.Results().Len() == 1 &&
		types.Identical(sig.Results().At(0).Type(), t)
}

// typeNames returns the direct fields and methods of named.
func typeNames(named *types.Named) []string {
	var names []string
	if st, ok := named.Underlying().(*types.Struct); ok {
		for f := range st.Fields() {
			names = append(names, f.Name())
		}
	}
	for fn := range named.Methods() {
		names = append(names, fn.Name())
	}
	return names
}

func (b *groupBuilder) inGeneratedFile(obj types.Object) bool {
	for _, f := range b.pkg.Syntax {
		if f.FileStart <= obj.Pos() && obj.Pos() < f.FileEnd {
			return ast.IsGenerated(f)
		}
	}
	return false
}

// typeString renders t as it is written in the package itself, recording
// the imports it needs.
func (b *groupBuilder) typeString(t types.Type) string {
	return types.TypeString(t, func(other *types.Package) string {
		if other == b.pkg.Types {
			return ""
		}
		b.used[other.Path()] = true
		return b.imports.name(other)
	})
}

// source extracts source location information.
func (b *groupBuilder) source(pos token.Pos) ir.Source {
	if !pos.IsValid() {
		return ir.Source{}
	}
	return source(b.pkg.Fset.Position(pos))
}

func source(pos token.Position) ir.Source {
	return ir.Source{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// parseDocumentation parses a comment group into Documentation. Directive
// lines are not part of the text.
func parseDocumentation(cg *ast.CommentGroup) ir.Documentation {
	if cg == nil {
		return ir.Documentation{}
	}
	body := strings.TrimSpace(cg.Text())
	var summary string
	for line := range strings.Lines(body) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			summary = trimmed
			break
		}
	}
	return ir.Documentation{Summary: summary, Body: body}
}
