package ir

// ScopeAxis selects which members a dispatcher invokes.
type ScopeAxis int

const (
	ScopeAll             ScopeAxis = iota // every member, in declaration order
	ScopeCallerSpecified                  // members named by a selector sequence
)

// String returns the string representation of the scope axis.
func (a ScopeAxis) String() string {
	switch a {
	case ScopeAll:
		return "All"
	case ScopeCallerSpecified:
		return "CallerSpecified"
	default:
		return "Unknown"
	}
}

// TagAxis selects how a dispatcher tells the callback which member ran.
type TagAxis int

const (
	TagNone          TagAxis = iota // callback receives only the result
	TagIndex                        // callback receives the member position
	TagDiscriminant                 // callback receives the tag type value
)

// String returns the string representation of the tag axis.
func (a TagAxis) String() string {
	switch a {
	case TagNone:
		return "None"
	case TagIndex:
		return "Index"
	case TagDiscriminant:
		return "Discriminant"
	default:
		return "Unknown"
	}
}

// DispatcherSpec identifies one of the six synthesized dispatchers.
type DispatcherSpec struct {
	Scope ScopeAxis
	Tag   TagAxis
}

// AllSpecs returns the six dispatcher specs in emission order.
func AllSpecs() []DispatcherSpec {
	return []DispatcherSpec{
		{ScopeAll, TagNone},
		{ScopeCallerSpecified, TagNone},
		{ScopeAll, TagIndex},
		{ScopeAll, TagDiscriminant},
		{ScopeCallerSpecified, TagIndex},
		{ScopeCallerSpecified, TagDiscriminant},
	}
}

// BaseName returns the dispatcher identifier before any suffix or prefix is
// applied.
func (s DispatcherSpec) BaseName() string {
	switch s {
	case DispatcherSpec{ScopeAll, TagNone}:
		return "InvokeAll"
	case DispatcherSpec{ScopeCallerSpecified, TagNone}:
		return "InvokeSubset"
	case DispatcherSpec{ScopeAll, TagIndex}:
		return "InvokeAllEnumerated"
	case DispatcherSpec{ScopeAll, TagDiscriminant}:
		return "InvokeAllEnum"
	case DispatcherSpec{ScopeCallerSpecified, TagIndex}:
		return "InvokeEnumerated"
	case DispatcherSpec{ScopeCallerSpecified, TagDiscriminant}:
		return "InvokeEnum"
	default:
		return ""
	}
}

// HasSelector reports whether the dispatcher takes a selector sequence.
func (s DispatcherSpec) HasSelector() bool { return s.Scope == ScopeCallerSpecified }

// HasCallback reports whether the dispatcher takes a callback when members
// return void or not.
func (s DispatcherSpec) HasCallback(void bool) bool { return !void || s.Tag != TagNone }

// String returns "Scope×Tag".
func (s DispatcherSpec) String() string {
	return s.Scope.String() + "×" + s.Tag.String()
}
