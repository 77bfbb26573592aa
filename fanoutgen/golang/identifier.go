package golang

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/broady/fanout/fanoutgen/ir"
)

// upperFirst returns s with its first rune in upper case.
func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// lowerFirst returns s with its first rune in lower case.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// identifiers are the names of everything generated for one group.
type identifiers struct {
	tag       string // tag type
	constants []string
	count     string
	nameTable string
	names     string
	values    string
	parse     string
	calls     string

	// dispatchers follows ir.AllSpecs order.
	dispatchers []string
}

// newIdentifiers derives the generated names of g. Everything is exported
// exactly when the group type is.
func newIdentifiers(g *ir.Group) identifiers {
	suffix := upperFirst(g.Options.Name)
	tag := g.Name + "Member" + suffix

	id := identifiers{
		tag:       tag,
		count:     tag + "Count",
		nameTable: lowerFirst(tag) + "NameTable",
		names:     tag + "Names",
		values:    tag + "Values",
		calls:     lowerFirst(tag) + "Calls",
	}
	if g.Exported {
		id.parse = "Parse" + tag
	} else {
		id.parse = "parse" + upperFirst(tag)
	}
	for _, m := range g.Members {
		id.constants = append(id.constants, tag+upperFirst(m.Name))
	}
	for _, spec := range ir.AllSpecs() {
		name := spec.BaseName() + suffix
		switch {
		case !g.Bound():
			name = g.Name + name
		case !g.Exported:
			name = lowerFirst(name)
		}
		id.dispatchers = append(id.dispatchers, name)
	}
	return id
}

// packageLevel returns the identifiers declared in the package scope.
func (id identifiers) packageLevel(bound bool) []string {
	names := []string{id.tag, id.count, id.nameTable, id.names, id.values, id.parse, id.calls}
	names = append(names, id.constants...)
	if !bound {
		names = append(names, id.dispatchers...)
	}
	return names
}

// scope hands out identifiers that are unique within one function.
type scope struct {
	used map[string]bool
}

func newScope(reserved ...string) *scope {
	s := &scope{used: make(map[string]bool)}
	for _, name := range reserved {
		s.used[name] = true
	}
	return s
}

// declare returns name, or name with a numeric suffix if name is taken.
// Blank and empty names are replaced by fallback.
func (s *scope) declare(name, fallback string) string {
	if name == "" || name == "_" {
		name = fallback
	}
	unique := name
	for i := 2; s.used[unique]; i++ {
		unique = name + strconv.Itoa(i)
	}
	s.used[unique] = true
	return unique
}
