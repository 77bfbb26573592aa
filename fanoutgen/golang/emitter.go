package golang

import (
	"bytes"
	"fmt"
	"go/types"
	"maps"
	"slices"
	"strings"

	"github.com/broady/fanout/fanoutgen/ir"
)

const runtimePath = "github.com/broady/fanout"

// Emitter writes the Go declarations generated for declaration groups into a
// single file. It remembers what it has emitted so that families in the same
// package never declare an identifier twice.
type Emitter struct {
	declared map[string]string // package-level identifier → group
	methods  map[string]string // "Type.Method" → group
	imports  map[string]string // import path → name, "" for the default
}

// NewEmitter returns an Emitter for one generated file.
func NewEmitter() *Emitter {
	return &Emitter{
		declared: make(map[string]string),
		methods:  make(map[string]string),
		imports: map[string]string{
			"iter":      "",
			"strconv":   "",
			runtimePath: "",
		},
	}
}

// signature holds the parts of the call helper and dispatcher signatures
// shared by every declaration of one group.
type signature struct {
	recv       string   // receiver name, bound groups only
	recvType   string   // "*T" or "*T[A, B]"
	typeParams string   // "[A any, B comparable]" or ""
	typeArgs   string   // "[A, B]" or ""
	params     []string // dispatcher parameter names, in order
	decls      string   // dispatcher parameter list
	result     string   // member result type, or fanout.Void
	void       bool
	consume    string
	selectors  string
}

// EmitGroup emits the tag type, metadata, call helper and six dispatchers of
// g. The group must have been validated.
func (e *Emitter) EmitGroup(buf *bytes.Buffer, g *ir.Group) error {
	id := newIdentifiers(g)
	if err := e.claim(g, id); err != nil {
		return err
	}
	for _, imp := range g.Imports {
		e.imports[imp.Path] = imp.Name
	}

	sig := e.newSignature(g, id)
	e.emitTagType(buf, g, id)
	e.emitMetadata(buf, g, id)
	e.emitCalls(buf, g, id, sig)
	for i, spec := range ir.AllSpecs() {
		e.emitDispatcher(buf, g, id, sig, spec, id.dispatchers[i])
	}
	return nil
}

// claim reserves the identifiers of g, failing if any of them is already
// declared by hand or by another family.
func (e *Emitter) claim(g *ir.Group, id identifiers) error {
	constants := make(map[string]string, len(g.Members))
	for i, m := range g.Members {
		if m.Name == "_" {
			return ir.Configf(m.Source, "%s: blank members cannot be called", g.Name)
		}
		c := id.constants[i]
		if prev, ok := constants[c]; ok {
			return ir.Configf(m.Source, "%s: members %s and %s both map to tag constant %s", g.Name, prev, m.Name, c)
		}
		constants[c] = m.Name
	}

	for _, name := range []string{"fanout", "iter", "maps", "slices", "strconv"} {
		if slices.Contains(g.PackageNames, name) {
			return ir.Configf(g.Source, "%s: package-level %s shadows an import of the generated file", g.Name, name)
		}
	}
	for _, name := range id.packageLevel(g.Bound()) {
		if slices.Contains(g.PackageNames, name) {
			return ir.Configf(g.Source, "%s: generated identifier %s is already declared in package scope", g.Name, name)
		}
		if prev, ok := e.declared[name]; ok {
			return ir.Configf(g.Source, "%s: generated identifier %s is also generated for %s", g.Name, name, prev)
		}
		e.declared[name] = familyName(g)
	}
	if g.Bound() {
		for _, name := range id.dispatchers {
			if slices.Contains(g.TypeNames, name) {
				return ir.Configf(g.Source, "%s: generated method %s is already declared on the type", g.Name, name)
			}
			key := g.Name + "." + name
			if prev, ok := e.methods[key]; ok {
				return ir.Configf(g.Source, "%s: generated method %s is also generated for %s", g.Name, name, prev)
			}
			e.methods[key] = familyName(g)
		}
	}
	return nil
}

// writeComment writes text as a line comment, one "//" line per line of
// text.
func writeComment(buf *bytes.Buffer, indent, text string) {
	for line := range strings.Lines(strings.TrimSpace(text)) {
		line = strings.TrimRight(line, " \t\n")
		if line == "" {
			fmt.Fprintf(buf, "%s//\n", indent)
		} else {
			fmt.Fprintf(buf, "%s// %s\n", indent, line)
		}
	}
}

// familyName describes the dispatcher family of g in comments and errors.
func familyName(g *ir.Group) string {
	if g.Options.Name == "" {
		return g.Name
	}
	return "the " + g.Options.Name + " family of " + g.Name
}

func (e *Emitter) newSignature(g *ir.Group, id identifiers) signature {
	base := g.Baseline()
	tps := base.TypeParams
	if g.Bound() {
		tps = g.TypeParams
	}

	reserved := []string{"fanout", "iter", "maps", "slices", "strconv", id.calls}
	reserved = append(reserved, types.Universe.Names()...)
	reserved = append(reserved, g.PackageNames...)
	for _, imp := range g.Imports {
		reserved = append(reserved, importName(imp))
	}
	for _, tp := range tps {
		reserved = append(reserved, tp.Name)
	}
	sc := newScope(reserved...)

	sig := signature{void: base.IsVoid(), result: base.Result()}
	if sig.void {
		sig.result = "fanout.Void"
	}

	if len(tps) > 0 {
		var decls, args []string
		for _, tp := range tps {
			decls = append(decls, tp.Name+" "+tp.Constraint)
			args = append(args, tp.Name)
		}
		sig.typeParams = "[" + strings.Join(decls, ", ") + "]"
		sig.typeArgs = "[" + strings.Join(args, ", ") + "]"
	}
	if g.Bound() {
		sig.recv = sc.declare(g.ReceiverName, "r")
		sig.recvType = "*" + g.Name + sig.typeArgs
	}

	var decls []string
	for i, p := range base.Params {
		name := sc.declare(p.Name, fmt.Sprintf("p%d", i))
		sig.params = append(sig.params, name)
		// Callbacks and selectors follow the member parameters, so a
		// variadic parameter is taken as a slice and forwarded with "...".
		typ := p.Type
		if p.Variadic {
			typ = "[]" + typ
		}
		decls = append(decls, name+" "+typ)
	}
	sig.decls = strings.Join(decls, ", ")
	sig.consume = sc.declare("consume", "consume")
	sig.selectors = sc.declare("selectors", "selectors")
	return sig
}

func importName(imp ir.Import) string {
	if imp.Name != "" {
		return imp.Name
	}
	return imp.Path[strings.LastIndexByte(imp.Path, '/')+1:]
}

func (e *Emitter) emitTagType(buf *bytes.Buffer, g *ir.Group, id identifiers) {
	fmt.Fprintf(buf, "// %s identifies a member of %s.\n", id.tag, familyName(g))
	if body := g.Documentation.Body; body != "" {
		buf.WriteString("//\n")
		writeComment(buf, "", body)
	}
	fmt.Fprintf(buf, "type %s int\n\n", id.tag)

	buf.WriteString("const (\n")
	for i, c := range id.constants {
		if summary := g.Members[i].Documentation.Summary; summary != "" {
			writeComment(buf, "\t", summary)
		}
		if i == 0 {
			fmt.Fprintf(buf, "\t%s %s = iota\n", c, id.tag)
		} else {
			fmt.Fprintf(buf, "\t%s\n", c)
		}
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(buf, "// %s returns every %s in declaration order.\n", id.values, id.tag)
	fmt.Fprintf(buf, "func %s() iter.Seq[%s] {\n\treturn fanout.Values[%s](%s)\n}\n\n", id.values, id.tag, id.tag, id.count)

	fmt.Fprintf(buf, "// %s returns the %s named s.\n", id.parse, id.tag)
	fmt.Fprintf(buf, "func %s(s string) (%s, error) {\n", id.parse, id.tag)
	fmt.Fprintf(buf, "\ti, err := fanout.Lookup(%s[:], s)\n", id.nameTable)
	buf.WriteString("\tif err != nil {\n\t\treturn 0, err\n\t}\n")
	fmt.Fprintf(buf, "\treturn %s(i), nil\n}\n\n", id.tag)

	fmt.Fprintf(buf, "// IsValid reports whether v identifies a member.\n")
	fmt.Fprintf(buf, "func (v %s) IsValid() bool {\n\treturn v >= 0 && v < %s\n}\n\n", id.tag, id.count)

	fmt.Fprintf(buf, "func (v %s) String() string {\n", id.tag)
	fmt.Fprintf(buf, "\tif !v.IsValid() {\n\t\treturn %q + strconv.Itoa(int(v)) + \")\"\n\t}\n", id.tag+"(")
	fmt.Fprintf(buf, "\treturn %s[v]\n}\n\n", id.nameTable)

	fmt.Fprintf(buf, "// MarshalText encodes v as its member name.\n")
	fmt.Fprintf(buf, "func (v %s) MarshalText() ([]byte, error) {\n", id.tag)
	fmt.Fprintf(buf, "\tif !v.IsValid() {\n\t\treturn nil, &fanout.InvalidSelectorError{Selector: int(v), Count: %s}\n\t}\n", id.count)
	fmt.Fprintf(buf, "\treturn []byte(%s[v]), nil\n}\n\n", id.nameTable)

	fmt.Fprintf(buf, "// UnmarshalText decodes a member name.\n")
	fmt.Fprintf(buf, "func (v *%s) UnmarshalText(text []byte) error {\n", id.tag)
	fmt.Fprintf(buf, "\tm, err := %s(string(text))\n", id.parse)
	buf.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n\t*v = m\n\treturn nil\n}\n\n")
}

func (e *Emitter) emitMetadata(buf *bytes.Buffer, g *ir.Group, id identifiers) {
	fmt.Fprintf(buf, "// %s is the number of members of %s.\n", id.count, familyName(g))
	fmt.Fprintf(buf, "const %s = %d\n\n", id.count, len(g.Members))

	fmt.Fprintf(buf, "var %s = [%s]string{\n", id.nameTable, id.count)
	for _, m := range g.Members {
		fmt.Fprintf(buf, "\t%q,\n", m.Name)
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "// %s returns the member names in declaration order.\n", id.names)
	fmt.Fprintf(buf, "func %s() [%s]string {\n\treturn %s\n}\n\n", id.names, id.count, id.nameTable)
}

// emitCalls emits the helper binding every member to the dispatcher
// arguments. Duplicates of cloned parameters are made inside each closure,
// so every member call receives its own.
func (e *Emitter) emitCalls(buf *bytes.Buffer, g *ir.Group, id identifiers, sig signature) {
	params := sig.decls
	if g.Bound() {
		params = joinNonEmpty(sig.recv+" "+sig.recvType, params)
	}
	fn := "func() " + sig.result

	fmt.Fprintf(buf, "func %s%s(%s) []%s {\n", id.calls, sig.typeParams, params, fn)
	fmt.Fprintf(buf, "\treturn []%s{\n", fn)
	for _, m := range g.Members {
		call := e.callExpr(g, &m, sig)
		if sig.void {
			fmt.Fprintf(buf, "\t\t%s {\n\t\t\t%s\n\t\t\treturn fanout.Void{}\n\t\t},\n", fn, call)
		} else {
			fmt.Fprintf(buf, "\t\t%s { return %s },\n", fn, call)
		}
	}
	buf.WriteString("\t}\n}\n\n")
}

// callExpr forwards the dispatcher parameters to m.
func (e *Emitter) callExpr(g *ir.Group, m *ir.Member, sig signature) string {
	args := make([]string, len(m.Params))
	for i, p := range m.Params {
		arg := sig.params[i]
		if g.Options.Clones(i) {
			arg = e.cloneExpr(p, arg)
		}
		if p.Variadic {
			arg += "..."
		}
		args[i] = arg
	}
	callee := m.Name + sig.typeArgs
	if g.Bound() {
		callee = sig.recv + "." + m.Name
	}
	return callee + "(" + strings.Join(args, ", ") + ")"
}

// cloneExpr returns an expression evaluating to a duplicate of x.
func (e *Emitter) cloneExpr(p ir.Param, x string) string {
	if p.Variadic {
		e.imports["slices"] = ""
		return "slices.Clone(" + x + ")"
	}
	switch p.Clone {
	case ir.CloneSlice:
		e.imports["slices"] = ""
		return "slices.Clone(" + x + ")"
	case ir.CloneMap:
		e.imports["maps"] = ""
		return "maps.Clone(" + x + ")"
	case ir.ClonePointer:
		return "fanout.ClonePtr(" + x + ")"
	case ir.CloneMethod:
		return x + ".Clone()"
	default:
		return x
	}
}

func (e *Emitter) emitDispatcher(buf *bytes.Buffer, g *ir.Group, id identifiers, sig signature, spec ir.DispatcherSpec, name string) {
	e.emitDispatcherDoc(buf, g, id, sig, spec, name)

	// Signature.
	if g.Bound() {
		fmt.Fprintf(buf, "func (%s %s) %s(", sig.recv, sig.recvType, name)
	} else {
		fmt.Fprintf(buf, "func %s%s(", name, sig.typeParams)
	}
	params := []string{sig.decls}
	if spec.HasCallback(sig.void) {
		params = append(params, sig.consume+" "+callbackType(spec, id, sig))
	}
	if spec.HasSelector() {
		sel := "int"
		if spec.Tag == ir.TagDiscriminant {
			sel = id.tag
		}
		params = append(params, sig.selectors+" iter.Seq["+sel+"]")
	}
	buf.WriteString(joinNonEmpty(params...))
	buf.WriteString(")")
	if spec.HasSelector() {
		buf.WriteString(" error")
	}
	buf.WriteString(" {\n")

	// Body.
	callArgs := slices.Clone(sig.params)
	if g.Bound() {
		callArgs = append([]string{sig.recv}, callArgs...)
	}
	calls := id.calls + sig.typeArgs + "(" + strings.Join(callArgs, ", ") + ")"

	consume := sig.consume
	switch {
	case !sig.void:
	case spec.Tag == ir.TagNone:
		consume = "nil"
	case spec.Tag == ir.TagIndex:
		consume = "fanout.IndexOnly(" + sig.consume + ")"
	case spec.Tag == ir.TagDiscriminant:
		consume = "fanout.TagOnly(" + sig.consume + ")"
	}

	fn := runtimeFunc(spec)
	if sig.void && spec.Tag == ir.TagNone {
		fn += "[fanout.Void]"
	}
	if spec.HasSelector() {
		fmt.Fprintf(buf, "\treturn fanout.%s(%s, %s, %s)\n", fn, calls, sig.selectors, consume)
	} else {
		fmt.Fprintf(buf, "\tfanout.%s(%s, %s)\n", fn, calls, consume)
	}
	buf.WriteString("}\n\n")
}

func (e *Emitter) emitDispatcherDoc(buf *bytes.Buffer, g *ir.Group, id identifiers, sig signature, spec ir.DispatcherSpec, name string) {
	var which, passes string
	if spec.Scope == ir.ScopeAll {
		which = "every member of " + familyName(g) + " in declaration order"
	} else {
		which = "the members of " + familyName(g) + " selected by " + sig.selectors + ", in the order they are produced"
	}
	switch spec.Tag {
	case ir.TagNone:
		if !sig.void {
			passes = "each result"
		}
	case ir.TagIndex:
		passes = "the position of each member"
		if !sig.void {
			passes += " with its result"
		}
	case ir.TagDiscriminant:
		passes = "the " + id.tag + " of each member"
		if !sig.void {
			passes += " with its result"
		}
	}

	fmt.Fprintf(buf, "// %s calls %s", name, which)
	if passes != "" {
		fmt.Fprintf(buf, "\n// and passes %s to %s", passes, sig.consume)
	}
	buf.WriteString(".\n")
	if spec.HasSelector() {
		buf.WriteString("// It stops at the first selector that does not identify a member and\n")
		buf.WriteString("// returns a *fanout.InvalidSelectorError.\n")
	}
}

// callbackType returns the type of the consume parameter.
func callbackType(spec ir.DispatcherSpec, id identifiers, sig signature) string {
	var args []string
	switch spec.Tag {
	case ir.TagIndex:
		args = append(args, "int")
	case ir.TagDiscriminant:
		args = append(args, id.tag)
	}
	if !sig.void {
		args = append(args, sig.result)
	}
	return "func(" + strings.Join(args, ", ") + ")"
}

// runtimeFunc returns the fanout function implementing spec.
func runtimeFunc(spec ir.DispatcherSpec) string {
	switch spec {
	case ir.DispatcherSpec{Scope: ir.ScopeAll, Tag: ir.TagNone}:
		return "All"
	case ir.DispatcherSpec{Scope: ir.ScopeCallerSpecified, Tag: ir.TagNone}:
		return "Subset"
	case ir.DispatcherSpec{Scope: ir.ScopeAll, Tag: ir.TagIndex}:
		return "AllIndexed"
	case ir.DispatcherSpec{Scope: ir.ScopeAll, Tag: ir.TagDiscriminant}:
		return "AllTagged"
	case ir.DispatcherSpec{Scope: ir.ScopeCallerSpecified, Tag: ir.TagIndex}:
		return "Indexed"
	default:
		return "Tagged"
	}
}

func joinNonEmpty(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), ", ")
}

// emitImports writes the import block for everything emitted so far, the
// standard library first.
func (e *Emitter) emitImports(buf *bytes.Buffer) {
	std := func(path string) bool {
		first, _, _ := strings.Cut(path, "/")
		return !strings.Contains(first, ".")
	}
	paths := slices.SortedFunc(maps.Keys(e.imports), func(a, b string) int {
		if std(a) != std(b) {
			if std(a) {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	buf.WriteString("import (\n")
	for i, path := range paths {
		if i > 0 && std(paths[i-1]) && !std(path) {
			buf.WriteString("\n")
		}
		if name := e.imports[path]; name != "" {
			fmt.Fprintf(buf, "\t%s %q\n", name, path)
		} else {
			fmt.Fprintf(buf, "\t%q\n", path)
		}
	}
	buf.WriteString(")\n\n")
}
