package ir

import (
	"slices"
	"strconv"
	"strings"
)

// WarnCloneByValue is reported for a clone position whose value type Go
// copies on every call anyway.
const WarnCloneByValue = "CLONE_BY_VALUE"

// Options are the user-supplied settings of one dispatcher family.
type Options struct {
	// Name is appended to every synthesized identifier so that several
	// families can be generated for the same group.
	Name string

	// Clone lists the parameter positions forwarded as duplicates.
	Clone []int
}

// Clones reports whether the parameter at position i is forwarded as a
// duplicate.
func (o Options) Clones(i int) bool { return slices.Contains(o.Clone, i) }

// Group is a declaration group: a Go type annotated for dispatcher generation
// and the members that share its signature.
type Group struct {
	// Name is the annotated type.
	Name string

	// TypeParams are the annotated type's own type parameters, used by
	// bound dispatchers as receiver type arguments.
	TypeParams []TypeParam

	// ReceiverName is the receiver identifier bound dispatchers use.
	ReceiverName string

	// Exported reports whether synthesized identifiers are exported.
	Exported bool

	// Members are the callables in declaration order.
	Members []Member

	// Options configure this dispatcher family.
	Options Options

	// Imports are the packages referenced by member type strings.
	Imports []Import

	// PackageNames are the identifiers already declared in the package
	// scope. Generated package-level declarations must not reuse them.
	PackageNames []string

	// TypeNames are the fields and methods of the group type. Bound
	// dispatchers must not reuse them.
	TypeNames []string

	Documentation Documentation
	Source        Source

	// Warnings contains non-fatal issues found while building or
	// validating the group.
	Warnings []Warning
}

// Bound reports whether the members are methods, making every dispatcher a
// method on the group type.
func (g *Group) Bound() bool {
	return len(g.Members) > 0 && g.Members[0].Receiver != ReceiverNone
}

// Baseline returns the member whose shape every other member must match.
func (g *Group) Baseline() *Member {
	if len(g.Members) == 0 {
		return nil
	}
	return &g.Members[0]
}

// AddWarning adds a warning to the group.
func (g *Group) AddWarning(w Warning) {
	w.Group = g.Name
	g.Warnings = append(g.Warnings, w)
}

// Validate is the gate in front of synthesis. It fails on the first problem
// found: an empty group, a value receiver, a member with more than one
// result, duplicate member names, a shape mismatch against the baseline, or a
// clone position the baseline cannot honor.
func (g *Group) Validate() error {
	if len(g.Members) == 0 {
		return &ConfigurationError{Source: g.Source, Msg: "type " + g.Name, Err: ErrEmptyGroup}
	}

	seen := make(map[string]bool, len(g.Members))
	for i := range g.Members {
		m := &g.Members[i]
		if m.Receiver == ReceiverValue {
			return &UnsupportedReceiverError{Group: g.Name, Member: m.Name, Source: m.Source}
		}
		if len(m.Results) > 1 {
			return Configf(m.Source, "%s.%s returns %d values (%s); members may return at most one value",
				g.Name, m.Name, len(m.Results), strings.Join(m.Results, ", "))
		}
		if seen[m.Name] {
			return Configf(m.Source, "%s.%s is declared more than once", g.Name, m.Name)
		}
		seen[m.Name] = true
	}

	base := g.Baseline()
	baseShape := base.Shape()
	for _, m := range g.Members[1:] {
		if shape := m.Shape(); !baseShape.Equal(shape) {
			return &SignatureMismatchError{
				Group:         g.Name,
				Baseline:      base.Name,
				BaselineShape: baseShape,
				Member:        m.Name,
				MemberShape:   shape,
				Source:        m.Source,
			}
		}
	}

	return g.validateClones(base)
}

// validateClones replaces the warnings of earlier validations, so that
// validating a group twice reports each position once.
func (g *Group) validateClones(base *Member) error {
	g.Warnings = slices.DeleteFunc(g.Warnings, func(w Warning) bool { return w.Code == WarnCloneByValue })
	for _, i := range g.Options.Clone {
		if i < 0 || i >= len(base.Params) {
			return Configf(g.Source, "clone position %d is out of range: %s.%s has %d parameters",
				i, g.Name, base.Name, len(base.Params))
		}
		p := base.Params[i]
		switch p.Clone {
		case CloneUnsupported:
			return Configf(g.Source, "clone position %d: cannot duplicate values of type %s", i, p.Type)
		case CloneValue:
			src := g.Source
			g.AddWarning(Warning{
				Code:    WarnCloneByValue,
				Message: "clone position " + strconv.Itoa(i) + " has value type " + p.Type + " and is always copied",
				Source:  &src,
			})
		}
	}
	return nil
}
