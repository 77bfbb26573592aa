package config

//fanout:gen
type Tester struct{}

func (t *Tester) F1(xs []int) int { return len(xs) }

func (t *Tester) F2(xs []int) int { return cap(xs) }
