package fanout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelector matches every *InvalidSelectorError under errors.Is.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrEmptyGroup is returned by NewGroup when no members are given.
	ErrEmptyGroup = errors.New("group has no members")
)

// InvalidSelectorError reports a selector that does not identify a member:
// a position outside [0, Count), a discriminant made by conversion, or a
// string that is not the name of any member.
type InvalidSelectorError struct {
	// Selector is the offending int position, discriminant value or string.
	Selector any

	// Count is the number of members in the group.
	Count int
}

func (e *InvalidSelectorError) Error() string {
	if s, ok := e.Selector.(string); ok {
		return fmt.Sprintf("invalid selector: %q does not name any of the %d members", s, e.Count)
	}
	return fmt.Sprintf("invalid selector: %v is outside [0, %d)", e.Selector, e.Count)
}

// Is reports whether target is ErrInvalidSelector.
func (e *InvalidSelectorError) Is(target error) bool {
	return target == ErrInvalidSelector
}
