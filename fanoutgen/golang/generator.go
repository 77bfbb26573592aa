// Package golang synthesizes the Go source of fanout dispatchers: for each
// declaration group a tag type, metadata, a call helper and six dispatchers
// delegating to the fanout runtime package.
package golang

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/broady/fanout/fanoutgen/ir"
	"github.com/broady/fanout/fanoutgen/sink"
)

// Header marks generated files. Files carrying it are ignored when loading
// input and may be replaced by the filesystem sink.
const Header = "// Code generated by fanout. DO NOT EDIT."

// GenerateOptions configures one generated file.
type GenerateOptions struct {
	// Sink receives the file. A nil Sink synthesizes and validates without
	// writing.
	Sink sink.OutputSink

	// Path is the file's path relative to the sink root.
	Path string

	// Package is the package the file belongs to.
	Package ir.PackageInfo
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// GroupsGenerated is the number of dispatcher families emitted.
	GroupsGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// GoGenerator writes every dispatcher family of a package into one Go file.
type GoGenerator struct{}

// Generate synthesizes the file for groups and writes it to opts.Sink.
// Nothing is written unless every group validates.
func (g *GoGenerator) Generate(ctx context.Context, groups []*ir.Group, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := EmitFile(opts.Path, opts.Package, groups)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{GroupsGenerated: len(groups)}
	for _, grp := range groups {
		result.Warnings = append(result.Warnings, grp.Warnings...)
	}
	if opts.Sink != nil {
		if err := opts.Sink.WriteFile(ctx, opts.Path, src); err != nil {
			return nil, fmt.Errorf("writing %s: %w", opts.Path, err)
		}
	}
	result.Files = append(result.Files, OutputFile{Path: opts.Path, Size: int64(len(src))})
	return result, nil
}

// EmitFile validates groups and returns the formatted Go source declaring
// their dispatchers. Validation is all or nothing: the first invalid group
// fails the whole file.
func EmitFile(filename string, pkg ir.PackageInfo, groups []*ir.Group) ([]byte, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("package %s has no declaration groups", pkg.Path)
	}
	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}

	e := NewEmitter()
	var body bytes.Buffer
	for _, g := range groups {
		if err := e.EmitGroup(&body, g); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(Header + "\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg.Name)
	e.emitImports(&buf)
	buf.Write(body.Bytes())

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		// Unformatted source helps locate the emitter bug.
		return nil, fmt.Errorf("formatting generated source: %w\n%s", err, buf.Bytes())
	}
	return out, nil
}
