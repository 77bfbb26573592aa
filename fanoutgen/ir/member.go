package ir

// ReceiverKind describes how a member is bound.
type ReceiverKind int

const (
	ReceiverNone    ReceiverKind = iota // package-level function
	ReceiverPointer                     // method with a *T receiver
	ReceiverValue                       // method with a T receiver; rejected
)

// String returns the string representation of the receiver kind.
func (k ReceiverKind) String() string {
	switch k {
	case ReceiverNone:
		return "none"
	case ReceiverPointer:
		return "pointer"
	case ReceiverValue:
		return "value"
	default:
		return "unknown"
	}
}

// CloneKind describes how a duplicate of a parameter value is made.
type CloneKind int

const (
	CloneUnsupported CloneKind = iota // chan, func, interface without Clone
	CloneValue                        // assignment already copies the value
	CloneSlice                        // slices.Clone
	CloneMap                          // maps.Clone
	ClonePointer                      // fanout.ClonePtr
	CloneMethod                       // x.Clone()
)

// String returns the string representation of the clone kind.
func (k CloneKind) String() string {
	switch k {
	case CloneValue:
		return "value"
	case CloneSlice:
		return "slice"
	case CloneMap:
		return "map"
	case ClonePointer:
		return "pointer"
	case CloneMethod:
		return "method"
	default:
		return "unsupported"
	}
}

// TypeParam is a declared type parameter.
type TypeParam struct {
	Name       string
	Constraint string
}

// Param is one non-receiver parameter of a member.
type Param struct {
	// Index is the 0-based position, not counting the receiver.
	Index int

	// Name is the declared identifier. It may be empty or "_".
	Name string

	// Type is the parameter type. For a variadic parameter it is the
	// element type.
	Type string

	// Variadic is set for a final ...T parameter.
	Variadic bool

	// Clone is how a value of Type is duplicated.
	Clone CloneKind
}

// Member is one callable participating in dispatch synthesis.
type Member struct {
	// Name is the function or method identifier.
	Name string

	// Receiver is how the member is bound.
	Receiver ReceiverKind

	// TypeParams are the member's own type parameters. Methods have none.
	TypeParams []TypeParam

	// Params are the non-receiver parameters in declaration order.
	Params []Param

	// Results are the result types. Valid members have at most one.
	Results []string

	Documentation Documentation
	Source        Source
}

// Result returns the result type, or "" when the member returns nothing.
func (m *Member) Result() string {
	if len(m.Results) == 0 {
		return ""
	}
	return m.Results[0]
}

// IsVoid reports whether the member returns nothing.
func (m *Member) IsVoid() bool { return len(m.Results) == 0 }

// Shape returns the member's signature shape.
func (m *Member) Shape() Shape {
	s := Shape{
		Receiver:   m.Receiver,
		TypeParams: append([]TypeParam(nil), m.TypeParams...),
		Results:    append([]string(nil), m.Results...),
	}
	for _, p := range m.Params {
		s.Params = append(s.Params, ParamShape{Type: p.Type, Variadic: p.Variadic})
	}
	return s
}
