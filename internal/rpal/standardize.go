package rpal

// file standardize.go implements the eight standardization rules of
// spec.md section 4.4, grounded directly on standardize_subtree in
// original_source/src/standardize_tree.py: a post-order walk that rewrites
// each node in place once its children have already been standardized.
//
// Rules 3 (function_form) and 4 (curried gamma) both "peel the leftmost
// argument and wrap the rest in a fresh lambda chain" -- they share the
// curryLeftmost helper instead of duplicating the loop, which is the one
// generalization the original's two near-identical for-loops invite.

// Standardize rewrites n (and its subtree) into the canonical form and
// returns n. The rewrite is in place: the returned node is the same pointer
// as the argument whenever n's label is unmatched.
func Standardize(n *Node) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		Standardize(child)
	}

	switch {
	case n.Label == "let" && len(n.Children) == 2 && n.Children[0].Label == "=":
		// let(=(x, E1), E2) -> gamma(lambda(x, E2), E1)
		lhs, rhs := n.Children[0], n.Children[1]
		e1 := lhs.Children[1]
		lhs.Label = "lambda"
		lhs.Children[1] = rhs
		n.Children[1] = e1
		n.Label = "gamma"

	case n.Label == "where" && len(n.Children) == 2 && n.Children[1].Label == "=":
		// where(E1, =(x, E2)) -> gamma(lambda(x, E1), E2)
		e1, def := n.Children[0], n.Children[1]
		e2 := def.Children[1]
		def.Label = "lambda"
		def.Children[1] = e1
		n.Children[0] = def
		n.Children[1] = e2
		n.Label = "gamma"

	case n.Label == "function_form":
		// function_form(f, x1,...,xn, E) -> =(f, lambda(x1, lambda(x2, ... lambda(xn, E))))
		curryLeftmost(n)
		n.Label = "="

	case n.Label == "gamma" && len(n.Children) > 2:
		// gamma(E1, E2, ..., Ek) k>2 -> left-curried nested gamma via lambdas
		curryLeftmost(n)

	case n.Label == "within" && len(n.Children) == 2 && n.Children[0].Label == "=" && n.Children[1].Label == "=":
		// within(=(x1,E1), =(x2,E2)) -> =(x2, gamma(lambda(x1, E2), E1))
		def1, def2 := n.Children[0], n.Children[1]
		x1, e1 := def1.Children[0], def1.Children[1]
		x2, e2 := def2.Children[0], def2.Children[1]
		lambdaNode := newNode("lambda", x1, e2)
		gammaNode := newNode("gamma", lambdaNode, e1)
		n.Children = []*Node{x2, gammaNode}
		n.Label = "="

	case n.Label == "@" && len(n.Children) == 3:
		// @(E1, N, E2) -> gamma(gamma(N, E1), E2)
		e1, id, e2 := n.Children[0], n.Children[1], n.Children[2]
		inner := newNode("gamma", id, e1)
		n.Children = []*Node{inner, e2}
		n.Label = "gamma"

	case n.Label == "and":
		// and(=(x1,E1), ..., =(xn,En)) -> =( ,(x1,...,xn), tau(E1,...,En) )
		idTuple := newNode(",")
		exprTuple := newNode("tau")
		for _, def := range n.Children {
			idTuple.Children = append(idTuple.Children, def.Children[0])
			exprTuple.Children = append(exprTuple.Children, def.Children[1])
		}
		n.Children = []*Node{idTuple, exprTuple}
		n.Label = "="

	case n.Label == "rec" && len(n.Children) == 1 && n.Children[0].Label == "=":
		// rec(=(x, E)) -> =(x, gamma(Y*, lambda(x, E)))
		def := n.Children[0]
		x := def.Children[0]
		def.Label = "lambda"
		gammaNode := newNode("gamma", newNode("<Y*>"), def)
		n.Children = []*Node{x, gammaNode}
		n.Label = "="
	}

	return n
}

// curryLeftmost peels n.Children[0] off and wraps the remaining children
// E2..Ek in a fresh chain of single-child "lambda" nodes, leaving n with
// exactly two children: the peeled-off head and the lambda chain ending in
// the original last child. Used by both the function_form rule (rule 3) and
// the curried-gamma rule (rule 4), which share this exact shape.
func curryLeftmost(n *Node) {
	head := n.Children[0]
	rest := n.Children[1:]
	last := rest[len(rest)-1]
	mids := rest[:len(rest)-1]

	// build nested lambda(mids[0], lambda(mids[1], ... lambda(mids[last], last)))
	body := last
	for i := len(mids) - 1; i >= 0; i-- {
		body = newNode("lambda", mids[i], body)
	}

	n.Children = []*Node{head, body}
}
