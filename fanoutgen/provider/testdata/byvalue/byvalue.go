package byvalue

//fanout:gen
type Tester struct{}

func (t *Tester) F1(i int32) int32 { return i }

func (t Tester) F2(i int32) int32 { return i }
