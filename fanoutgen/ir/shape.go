package ir

import (
	"slices"
	"strings"
)

// Shape is the structural fingerprint of a member: everything about its
// signature except identifiers and documentation. Members with equal shapes
// are interchangeable.
type Shape struct {
	Receiver   ReceiverKind
	TypeParams []TypeParam
	Params     []ParamShape
	Results    []string
}

// ParamShape is a parameter with its name stripped.
type ParamShape struct {
	Type     string
	Variadic bool
}

// Equal reports whether s and o describe interchangeable members.
// Type parameter names are part of the shape because parameter types refer to
// them by name.
func (s Shape) Equal(o Shape) bool {
	return s.Receiver == o.Receiver &&
		slices.Equal(s.TypeParams, o.TypeParams) &&
		slices.Equal(s.Params, o.Params) &&
		slices.Equal(s.Results, o.Results)
}

// String renders the shape as an anonymous Go function signature. Pointer
// receivers are marked with a leading "(*)" and value receivers with "(T)".
func (s Shape) String() string {
	var b strings.Builder
	switch s.Receiver {
	case ReceiverPointer:
		b.WriteString("(*) ")
	case ReceiverValue:
		b.WriteString("(T) ")
	}
	b.WriteString("func")
	if len(s.TypeParams) > 0 {
		b.WriteByte('[')
		for i, tp := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Name)
			b.WriteByte(' ')
			b.WriteString(tp.Constraint)
		}
		b.WriteByte(']')
	}
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Variadic {
			b.WriteString("...")
		}
		b.WriteString(p.Type)
	}
	b.WriteByte(')')
	switch len(s.Results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(s.Results[0])
	default:
		b.WriteString(" (")
		b.WriteString(strings.Join(s.Results, ", "))
		b.WriteByte(')')
	}
	return b.String()
}
