package ast

// AppendVariables appends every variable reachable from n to dst and returns
// the extended slice. A node registers itself before its children, and the
// children are visited in slot order: next, expression, right, left.
// Comments never contribute variables.
func AppendVariables(dst []*Variable, n Node) []*Variable {
	switch n.(type) {
	case nil, *Comment, *CommentString:
		return dst
	}
	if IsVariable(n) {
		return append(dst, n.(*Variable))
	}
	next, expression, right, left := Slots(n)
	for _, child := range [...]Node{next, expression, right, left} {
		if child != nil {
			dst = AppendVariables(dst, child)
		}
	}
	return dst
}

// Functions returns the names of the functions called in n, in source order.
func Functions(n Node) []string {
	var names []string
	Walk(VisitorFunc(func(n Node) error {
		if fn, ok := n.(*Function); ok {
			names = append(names, fn.Name)
		}
		return nil
	}), n)
	return names
}

// Variables collects the variables of n into a new slice.
func Variables(n Node) []*Variable {
	return AppendVariables(nil, n)
}
