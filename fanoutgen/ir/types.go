// Package ir defines the intermediate representation of a declaration group:
// the members that fanout dispatchers invoke, their signature shapes, and the
// dispatcher variants synthesized for them.
//
// Types are carried as Go type strings already qualified for the package the
// generated code is written to, so emitters never need go/types.
package ir

import "fmt"

// Documentation holds documentation comments extracted from Go source.
type Documentation struct {
	// Summary is the first sentence of the comment.
	Summary string

	// Body is the complete comment text, including the summary.
	Body string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == ""
}

// Source represents source code location information.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// String formats the location as file:line:column, the way go/token does.
func (s Source) String() string {
	switch {
	case s.IsZero():
		return "-"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// Group is the declaration group that triggered the warning, if applicable.
	Group string
}

// PackageInfo describes a Go package.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string
}

// IsZero returns true if the package info is empty.
func (p PackageInfo) IsZero() bool {
	return p.Path == "" && p.Name == "" && p.Dir == ""
}

// Import is a package referenced by a type string.
type Import struct {
	// Path is the import path.
	Path string

	// Name is the identifier type strings use for the package. It is empty
	// when it equals the package's own name.
	Name string
}
