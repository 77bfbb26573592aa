// Package testdata contains declaration groups for provider and generator
// tests.
package testdata

import (
	"errors"
	htemplate "html/template"
	"strings"
	ttemplate "text/template"
)

// Tester records every member call.
//
//fanout:gen
//fanout:gen name=Batch clone=0
type Tester struct {
	Calls []string
}

// F1 returns i unchanged.
func (t *Tester) F1(i int32) int32 {
	t.Calls = append(t.Calls, "F1")
	return i
}

func (t *Tester) F2(i int32) int32 {
	t.Calls = append(t.Calls, "F2")
	return i
}

func (t *Tester) F3(i int32) int32 {
	t.Calls = append(t.Calls, "F3")
	return i
}

//fanout:skip
func (t *Tester) Reset() {
	t.Calls = nil
}

// Hooks groups free functions.
//
//fanout:gen clone=0,1
type Hooks struct{}

//fanout:member Hooks
func first(buf []byte, counts map[string]int, tags ...string) int {
	buf[0] = 'x'
	counts["first"]++
	return len(buf) + len(tags)
}

//fanout:member Hooks
func second(buf []byte, counts map[string]int, tags ...string) int {
	return int(buf[0]) + counts["first"] + len(tags)
}

//fanout:gen
type Pick struct{}

//fanout:member Pick
func pickFirst[T any](xs []T) T { return xs[0] }

//fanout:member Pick
func pickLast[T any](xs []T) T { return xs[len(xs)-1] }

//fanout:gen
type Box[T comparable] struct {
	V T
}

func (b *Box[T]) Get() T { return b.V }

func (b *Box[T]) Zero() T {
	var zero T
	return zero
}

// Notifier members return nothing.
//
//fanout:gen
type Notifier struct {
	Sent []string
}

func (n *Notifier) Email(msg string) { n.Sent = append(n.Sent, "email:"+msg) }

func (n *Notifier) SMS(msg string) { n.Sent = append(n.Sent, "sms:"+msg) }

//fanout:gen
type renderer struct{}

func (r *renderer) text(t *ttemplate.Template, h *htemplate.Template) error {
	return errors.New(t.Name())
}

func (r *renderer) html(t *ttemplate.Template, h *htemplate.Template) error {
	return errors.New(h.Name())
}

// Set has a Clone method.
type Set struct {
	m map[string]bool
}

func (s Set) Clone() Set {
	m := make(map[string]bool, len(s.m))
	for k, v := range s.m {
		m[k] = v
	}
	return Set{m: m}
}

type Point struct{ X, Y int }

//fanout:gen
type Kinds struct{}

func (k *Kinds) A(s Set, p *Point, pt Point, arr [2]int, ch chan int, f func(), err error, sb *strings.Builder) {
}
