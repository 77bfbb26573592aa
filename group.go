package fanout

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Member is one function in a run-time Group.
type Member[A, R any] struct {
	// Name identifies the member. Names must be unique within a group.
	Name string

	// Func is called with the arguments passed to a dispatcher.
	Func func(A) R
}

// Tag identifies a member of the Group that created it.
// The zero Tag identifies no member.
type Tag struct {
	index int
	name  string
}

// Index returns the declaration position of the member.
func (t Tag) Index() int { return t.index }

func (t Tag) String() string {
	if t.name == "" {
		return "Tag(" + strconv.Itoa(t.index) + ")"
	}
	return t.name
}

// MarshalText encodes the tag as its member name.
func (t Tag) MarshalText() ([]byte, error) {
	if t.name == "" {
		return nil, fmt.Errorf("marshal %v: %w", t, ErrInvalidSelector)
	}
	return []byte(t.name), nil
}

// Option configures a Group.
type Option[A any] func(*groupOptions[A])

type groupOptions[A any] struct {
	clone func(A) A
}

// WithClone makes every member call receive clone(args) instead of args, so
// that a member that mutates or retains its arguments cannot affect the
// members called after it.
func WithClone[A any](clone func(A) A) Option[A] {
	return func(o *groupOptions[A]) {
		o.clone = clone
	}
}

// Group is a dispatch table built at run time from an ordered list of members
// sharing the signature func(A) R. Use a struct for A when members take
// several arguments, and Void for R when they return nothing.
//
// A Group is immutable and safe for concurrent use if its members are.
type Group[A, R any] struct {
	members []Member[A, R]
	names   []string
	tags    []Tag
	clone   func(A) A
}

// NewGroup creates a Group from members in declaration order.
func NewGroup[A, R any](members []Member[A, R], opts ...Option[A]) (*Group[A, R], error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}

	var o groupOptions[A]
	for _, opt := range opts {
		opt(&o)
	}

	g := &Group[A, R]{
		members: slices.Clone(members),
		names:   make([]string, len(members)),
		tags:    make([]Tag, len(members)),
		clone:   o.clone,
	}
	seen := make(map[string]bool, len(members))
	for i, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("member %d has no name", i)
		}
		if m.Func == nil {
			return nil, fmt.Errorf("member %s has no function", m.Name)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate member name %q", m.Name)
		}
		seen[m.Name] = true
		g.names[i] = m.Name
		g.tags[i] = Tag{index: i, name: m.Name}
	}
	return g, nil
}

// Count returns the number of members.
func (g *Group[A, R]) Count() int { return len(g.members) }

// Names returns the member names in declaration order.
func (g *Group[A, R]) Names() []string { return slices.Clone(g.names) }

// Tags returns a restartable sequence over the member tags in declaration order.
func (g *Group[A, R]) Tags() iter.Seq[Tag] { return slices.Values(g.tags) }

// Tag returns the tag of the member at position i.
func (g *Group[A, R]) Tag(i int) (Tag, error) {
	if i < 0 || i >= len(g.tags) {
		return Tag{}, &InvalidSelectorError{Selector: i, Count: len(g.tags)}
	}
	return g.tags[i], nil
}

// Parse returns the tag of the member called name.
func (g *Group[A, R]) Parse(name string) (Tag, error) {
	i, err := Lookup(g.names, name)
	if err != nil {
		return Tag{}, err
	}
	return g.tags[i], nil
}

// owns reports whether t was issued by g.
func (g *Group[A, R]) owns(t Tag) bool {
	return t.index >= 0 && t.index < len(g.tags) && g.tags[t.index] == t
}

// calls binds every member to args. Cloning happens inside each call so that
// every member gets its own copy.
func (g *Group[A, R]) calls(args A) []func() R {
	calls := make([]func() R, len(g.members))
	for i, m := range g.members {
		f := m.Func
		if g.clone == nil {
			calls[i] = func() R { return f(args) }
			continue
		}
		clone := g.clone
		calls[i] = func() R { return f(clone(args)) }
	}
	return calls
}

// InvokeAll calls every member with args in declaration order.
func (g *Group[A, R]) InvokeAll(args A, consume func(R)) {
	All(g.calls(args), consume)
}

// InvokeSubset calls the members at the positions produced by selectors.
func (g *Group[A, R]) InvokeSubset(args A, consume func(R), selectors iter.Seq[int]) error {
	return Subset(g.calls(args), selectors, consume)
}

// InvokeAllEnumerated calls every member and passes its position with the result.
func (g *Group[A, R]) InvokeAllEnumerated(args A, consume func(int, R)) {
	AllIndexed(g.calls(args), consume)
}

// InvokeAllEnum calls every member and passes its tag with the result.
func (g *Group[A, R]) InvokeAllEnum(args A, consume func(Tag, R)) {
	AllIndexed(g.calls(args), g.tagged(consume))
}

// InvokeEnumerated calls the members at the positions produced by selectors
// and passes each position with the result.
func (g *Group[A, R]) InvokeEnumerated(args A, consume func(int, R), selectors iter.Seq[int]) error {
	return Indexed(g.calls(args), selectors, consume)
}

// InvokeEnum calls the members identified by the tags produced by selectors.
// A tag issued by another group is an invalid selector.
func (g *Group[A, R]) InvokeEnum(args A, consume func(Tag, R), selectors iter.Seq[Tag]) error {
	if selectors == nil {
		return nil
	}
	var invalid error
	positions := func(yield func(int) bool) {
		for t := range selectors {
			if !g.owns(t) {
				invalid = &InvalidSelectorError{Selector: t, Count: len(g.tags)}
				return
			}
			if !yield(t.index) {
				return
			}
		}
	}
	if err := Indexed(g.calls(args), positions, g.tagged(consume)); err != nil {
		return err
	}
	return invalid
}

func (g *Group[A, R]) tagged(consume func(Tag, R)) func(int, R) {
	if consume == nil {
		return nil
	}
	return func(i int, r R) { consume(g.tags[i], r) }
}
