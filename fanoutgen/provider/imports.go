package provider

import (
	"go/types"
	"strconv"
	"strings"

	"github.com/broady/fanout/fanoutgen/ir"
)

// runtimePath is the import path of the package generated code calls into.
const runtimePath = "github.com/broady/fanout"

// importSet assigns one identifier per imported package for everything
// generated into a package. Identifiers used by generated code itself, and
// by the package scope, are never given to another package.
type importSet struct {
	self  *types.Package
	names map[string]string // import path → identifier
	paths map[string]string // identifier → import path
}

func newImportSet(self *types.Package) *importSet {
	s := &importSet{
		self:  self,
		names: make(map[string]string),
		paths: make(map[string]string),
	}
	for _, path := range []string{"iter", "maps", "slices", "strconv", runtimePath} {
		name := path
		if path == runtimePath {
			name = "fanout"
		}
		s.names[path] = name
		s.paths[name] = path
	}
	return s
}

// name returns the identifier for pkg, assigning one on first use.
func (s *importSet) name(pkg *types.Package) string {
	if n, ok := s.names[pkg.Path()]; ok {
		return n
	}
	base := pkg.Name()
	n := base
	for i := 2; s.taken(n); i++ {
		n = base + strconv.Itoa(i)
	}
	s.names[pkg.Path()] = n
	s.paths[n] = pkg.Path()
	return n
}

func (s *importSet) taken(name string) bool {
	if _, ok := s.paths[name]; ok {
		return true
	}
	return s.self.Scope().Lookup(name) != nil
}

// importFor returns the import declaration for path. The name is omitted
// when it matches the last path element.
func (s *importSet) importFor(path string) ir.Import {
	name := s.names[path]
	if name == lastElem(path) {
		name = ""
	}
	return ir.Import{Path: path, Name: name}
}

func lastElem(path string) string {
	return path[strings.LastIndexByte(path, '/')+1:]
}
