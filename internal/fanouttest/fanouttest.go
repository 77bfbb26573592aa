// Package fanouttest declares dispatcher families whose generated code is
// checked in, so tests can call the dispatchers the generator produces.
package fanouttest

//go:generate go run github.com/broady/fanout/cmd/fanout gen

// Tester records the members it runs.
//
//fanout:gen
//fanout:gen name=Cloned clone=0
type Tester struct {
	Calls []string
}

// F1 increments buf[0] and returns i plus its new value.
func (t *Tester) F1(buf []byte, i int32) int32 {
	return t.record("F1", buf, i)
}

func (t *Tester) F2(buf []byte, i int32) int32 {
	return t.record("F2", buf, i)
}

func (t *Tester) F3(buf []byte, i int32) int32 {
	return t.record("F3", buf, i)
}

//fanout:skip
func (t *Tester) record(name string, buf []byte, i int32) int32 {
	t.Calls = append(t.Calls, name)
	buf[0]++
	return i + int32(buf[0])
}

// Events is notified by package-level hooks.
//
//fanout:gen
type Events struct{}

//fanout:member Events
func onOpen(log *[]string, name string) {
	*log = append(*log, "open:"+name)
}

//fanout:member Events
func onClose(log *[]string, name string) {
	*log = append(*log, "close:"+name)
}
