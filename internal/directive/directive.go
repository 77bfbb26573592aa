// Package directive parses fanout directives from Go source files.
//
// Directives are line comments in the form:
//
//	//fanout:gen [name=<suffix>] [clone=<i,j,...>]
//	//fanout:member <Type>
//	//fanout:skip
//
// The gen directive marks a named type as a declaration group. The type's
// pointer methods become its members, unless package functions are attached
// to it with the member directive. A type may carry several gen directives as
// long as each names a distinct family.
//
// The skip directive excludes a method from its type's group.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/broady/fanout/fanoutgen/ir"
)

// Prefix starts every directive comment.
const Prefix = "//fanout:"

// Kind represents the type of directive.
type Kind string

const (
	KindGen    Kind = "gen"
	KindMember Kind = "member"
	KindSkip   Kind = "skip"
)

// Directive represents a parsed fanout directive bound to a declaration.
type Directive struct {
	Kind    Kind           // gen, member or skip
	Decl    string         // annotated type or function name
	Recv    string         // receiver type name for methods, empty otherwise
	Target  string         // group type named by a member directive
	Options Options        // options of a gen directive
	Pos     token.Position // source location of the directive comment
}

// File contains the directives found in one file, in source order.
type File struct {
	Gens    []Directive
	Members []Directive
	Skips   []Directive
}

// Skipped reports whether method recv.name carries a skip directive.
func (f *File) Skipped(recv, name string) bool {
	for _, d := range f.Skips {
		if d.Recv == recv && d.Decl == name {
			return true
		}
	}
	return false
}

type pending struct {
	kind    Kind
	args    []string
	pos     token.Position
	matched bool
}

// ParseFile extracts directives from a single parsed file. The file must have
// been parsed with comments.
//
// Returns an error if:
//   - A directive kind is unknown
//   - A directive has malformed, duplicated or unknown options
//   - A directive is not attached to the declaration kind it applies to
func ParseFile(fset *token.FileSet, f *ast.File) (*File, error) {
	// Directives are keyed by the end of their comment group so they can be
	// matched to the declaration whose doc comment ends there.
	byGroup := make(map[token.Pos][]*pending)
	var order []*pending

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			parts := strings.Fields(strings.TrimPrefix(c.Text, Prefix))
			if len(parts) == 0 {
				continue
			}
			p := &pending{kind: Kind(parts[0]), args: parts[1:], pos: fset.Position(c.Pos())}
			switch p.kind {
			case KindGen, KindMember, KindSkip:
			default:
				return nil, posErrorf(p.pos, "unknown directive %s%s", Prefix, parts[0])
			}
			byGroup[cg.End()] = append(byGroup[cg.End()], p)
			order = append(order, p)
		}
	}

	result := &File{}
	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			for _, spec := range decl.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(decl.Specs) == 1 {
					doc = decl.Doc
				}
				if doc == nil {
					continue
				}
				for _, p := range byGroup[doc.End()] {
					if p.kind != KindGen {
						continue
					}
					d, err := genDirective(p, ts)
					if err != nil {
						return nil, err
					}
					p.matched = true
					result.Gens = append(result.Gens, d)
				}
			}
		case *ast.FuncDecl:
			if decl.Doc == nil {
				continue
			}
			for _, p := range byGroup[decl.Doc.End()] {
				d, ok, err := funcDirective(p, decl)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				p.matched = true
				switch d.Kind {
				case KindMember:
					result.Members = append(result.Members, d)
				case KindSkip:
					result.Skips = append(result.Skips, d)
				}
			}
		}
	}

	for _, p := range order {
		if p.matched {
			continue
		}
		switch p.kind {
		case KindGen:
			return nil, posErrorf(p.pos, "%s%s directive must be followed by a type declaration", Prefix, p.kind)
		case KindMember:
			return nil, posErrorf(p.pos, "%s%s directive must be followed by a function declaration", Prefix, p.kind)
		default:
			return nil, posErrorf(p.pos, "%s%s directive must be followed by a method declaration", Prefix, p.kind)
		}
	}

	return result, nil
}

func genDirective(p *pending, ts *ast.TypeSpec) (Directive, error) {
	if ts.Assign.IsValid() {
		return Directive{}, posErrorf(p.pos, "%s%s cannot annotate alias %s", Prefix, p.kind, ts.Name.Name)
	}
	opts, err := ParseOptions(p.args)
	if err != nil {
		return Directive{}, &ir.ConfigurationError{Source: source(p.pos), Msg: Prefix + string(p.kind), Err: err}
	}
	return Directive{
		Kind:    KindGen,
		Decl:    ts.Name.Name,
		Options: opts,
		Pos:     p.pos,
	}, nil
}

// funcDirective binds a member or skip directive to fn. It returns false for
// directive kinds that do not annotate functions.
func funcDirective(p *pending, fn *ast.FuncDecl) (Directive, bool, error) {
	d := Directive{Kind: p.kind, Decl: fn.Name.Name, Pos: p.pos}
	switch p.kind {
	case KindMember:
		if fn.Recv != nil {
			return d, false, posErrorf(p.pos, "%s%s cannot annotate method %s; methods join their receiver's group",
				Prefix, p.kind, fn.Name.Name)
		}
		if len(p.args) != 1 {
			return d, false, posErrorf(p.pos, "%s%s wants exactly one type name, got %d arguments",
				Prefix, p.kind, len(p.args))
		}
		if !token.IsIdentifier(p.args[0]) {
			return d, false, posErrorf(p.pos, "%s%s: %q is not a type name", Prefix, p.kind, p.args[0])
		}
		d.Target = p.args[0]
		return d, true, nil
	case KindSkip:
		if fn.Recv == nil {
			return d, false, posErrorf(p.pos, "%s%s directive must be followed by a method declaration",
				Prefix, p.kind)
		}
		if len(p.args) != 0 {
			return d, false, posErrorf(p.pos, "%s%s takes no arguments", Prefix, p.kind)
		}
		d.Recv = ReceiverTypeName(fn.Recv.List[0].Type)
		return d, true, nil
	default:
		return d, false, nil
	}
}

// ReceiverTypeName returns the base type name of a receiver type expression,
// unwrapping pointers and type arguments.
func ReceiverTypeName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func source(pos token.Position) ir.Source {
	return ir.Source{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func posErrorf(pos token.Position, format string, args ...any) error {
	return ir.Configf(source(pos), format, args...)
}

// String renders the directive the way it appears in source.
func (d Directive) String() string {
	switch d.Kind {
	case KindGen:
		if s := d.Options.String(); s != "" {
			return fmt.Sprintf("%s%s %s", Prefix, d.Kind, s)
		}
	case KindMember:
		return fmt.Sprintf("%s%s %s", Prefix, d.Kind, d.Target)
	}
	return Prefix + string(d.Kind)
}
