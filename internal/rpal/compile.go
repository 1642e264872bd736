package rpal

import "strings"

// Compile walks the standardized tree and produces a ControlStore, grounded
// directly on generate_control_structure in
// original_source/src/cse_runtime.py. Each "lambda" node opens a fresh
// control sequence (closing over its bound variable(s)); "->" lowers to the
// delta/delta/beta triple of spec.md section 4.6; "tau" lowers to a single
// tuple-construction item followed by its elements; everything else lowers
// to its own label followed by its children, all appended to the current
// sequence i.

func Compile(root *Node) ControlStore {
	cs := newControlStore()
	next := 0
	compileInto(&cs, root, 0, &next)
	return cs
}

func compileInto(cs *ControlStore, n *Node, i int, next *int) {
	cs.ensure(i)

	switch n.Label {
	case "lambda":
		*next++
		idx := *next
		cs.ensure(idx)

		left := n.Children[0]
		var vars string
		if left.Label == "," {
			names := make([]string, 0, len(left.Children))
			for _, child := range left.Children {
				names = append(names, stripTag(child.Label))
			}
			vars = strings.Join(names, ",")
		} else {
			vars = stripTag(left.Label)
		}

		(*cs)[i] = append((*cs)[i], lambdaItem(idx, vars))

		for _, child := range n.Children[1:] {
			compileInto(cs, child, idx, next)
		}

	case "->":
		*next++
		thenIdx := *next
		(*cs)[i] = append((*cs)[i], deltaItem(thenIdx))
		compileInto(cs, n.Children[1], thenIdx, next)

		*next++
		elseIdx := *next
		(*cs)[i] = append((*cs)[i], deltaItem(elseIdx))
		compileInto(cs, n.Children[2], elseIdx, next)

		(*cs)[i] = append((*cs)[i], labelItem("beta"))
		compileInto(cs, n.Children[0], i, next)

	case "tau":
		(*cs)[i] = append((*cs)[i], tupleItem(len(n.Children)))
		for _, child := range n.Children {
			compileInto(cs, child, i, next)
		}

	default:
		(*cs)[i] = append((*cs)[i], labelItem(n.Label))
		for _, child := range n.Children {
			compileInto(cs, child, i, next)
		}
	}
}

// stripTag strips the "<ID:...>" / "<INT:...>" / "<STR:...>" wrapper a leaf
// label carries, returning the bare text inside.
func stripTag(label string) string {
	if len(label) >= 2 && label[0] == '<' && label[len(label)-1] == '>' {
		inner := label[1 : len(label)-1]
		if idx := strings.IndexByte(inner, ':'); idx >= 0 {
			return inner[idx+1:]
		}
		return inner
	}
	return label
}
