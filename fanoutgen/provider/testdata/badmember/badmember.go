package badmember

//fanout:member Missing
func f() {}
