package stale

//fanout:gen
type Tester struct{}

func (t *Tester) F1() {}

func (t *Tester) F2() {}
