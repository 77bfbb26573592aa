package duplicate

//fanout:gen name=Batch
//fanout:gen name=Batch clone=0
type Tester struct{}

func (t *Tester) F(i int) {}
