// Package fanout invokes groups of interchangeable functions as one batch.
//
// A group is an ordered list of members that share a signature. The six
// dispatchers in this package call the members of a group with the same
// arguments and hand each result to a consumer callback. They differ along two
// axes: which members run (all of them, or a caller-supplied sequence of
// selectors) and how each result is tagged (not at all, by position, or by a
// discriminant value).
//
// Dispatchers take the members as a slice of calls already bound to the
// caller's arguments. Code produced by the fanout generator builds that slice
// for a concrete declaration group; [Group] builds it at run time.
package fanout

import "iter"

// Void is the result of a call to a member that returns nothing.
type Void struct{}

// All invokes every call once, in order, and passes each result to consume.
// A nil consume discards the results.
func All[R any](calls []func() R, consume func(R)) {
	for _, call := range calls {
		r := call()
		if consume != nil {
			consume(r)
		}
	}
}

// AllIndexed is like [All] but also passes the position of each call.
func AllIndexed[R any](calls []func() R, consume func(int, R)) {
	for i, call := range calls {
		r := call()
		if consume != nil {
			consume(i, r)
		}
	}
}

// AllTagged is like [AllIndexed] but converts each position to the
// discriminant type T.
func AllTagged[T ~int, R any](calls []func() R, consume func(T, R)) {
	for i, call := range calls {
		r := call()
		if consume != nil {
			consume(T(i), r)
		}
	}
}

// Subset invokes the calls named by selectors, in the order they are produced.
// Selectors may repeat or omit positions. The sequence is consumed one element
// at a time; the first selector outside [0, len(calls)) stops the batch with an
// [*InvalidSelectorError] and no later selector is read.
func Subset[R any](calls []func() R, selectors iter.Seq[int], consume func(R)) error {
	if selectors == nil {
		return nil
	}
	for i := range selectors {
		if i < 0 || i >= len(calls) {
			return &InvalidSelectorError{Selector: i, Count: len(calls)}
		}
		r := calls[i]()
		if consume != nil {
			consume(r)
		}
	}
	return nil
}

// Indexed is like [Subset] but also passes each selector to consume.
func Indexed[R any](calls []func() R, selectors iter.Seq[int], consume func(int, R)) error {
	if selectors == nil {
		return nil
	}
	for i := range selectors {
		if i < 0 || i >= len(calls) {
			return &InvalidSelectorError{Selector: i, Count: len(calls)}
		}
		r := calls[i]()
		if consume != nil {
			consume(i, r)
		}
	}
	return nil
}

// Tagged is like [Indexed] with discriminant selectors. Values of T that do
// not correspond to a call, which can only be made by conversion, are reported
// as an [*InvalidSelectorError].
func Tagged[T ~int, R any](calls []func() R, selectors iter.Seq[T], consume func(T, R)) error {
	if selectors == nil {
		return nil
	}
	for t := range selectors {
		if int(t) < 0 || int(t) >= len(calls) {
			return &InvalidSelectorError{Selector: t, Count: len(calls)}
		}
		r := calls[int(t)]()
		if consume != nil {
			consume(t, r)
		}
	}
	return nil
}

// IndexOnly adapts a callback that takes only a position to the consumer shape
// used for members without results.
func IndexOnly(f func(int)) func(int, Void) {
	if f == nil {
		return nil
	}
	return func(i int, _ Void) { f(i) }
}

// TagOnly adapts a callback that takes only a discriminant to the consumer
// shape used for members without results.
func TagOnly[T any](f func(T)) func(T, Void) {
	if f == nil {
		return nil
	}
	return func(t T, _ Void) { f(t) }
}

// Values returns a restartable sequence over T(0) through T(n-1).
func Values[T ~int](n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < n; i++ {
			if !yield(T(i)) {
				return
			}
		}
	}
}

// Lookup returns the position of name in names. A name that is not present is
// reported as an [*InvalidSelectorError].
func Lookup(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return -1, &InvalidSelectorError{Selector: name, Count: len(names)}
}

// ClonePtr returns a pointer to a shallow copy of *p, or nil if p is nil.
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
