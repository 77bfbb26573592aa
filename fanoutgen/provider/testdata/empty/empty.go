package empty

//fanout:gen
type Tester struct{}
