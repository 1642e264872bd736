package rpal

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Format(t *testing.T) {
	testCases := []struct {
		name   string
		input  Value
		expect string
	}{
		{"integer", IntValue(42), "42"},
		{"negative integer", IntValue(-3), "-3"},
		{"string", StrValue("hello"), "hello"},
		{"bool true", BoolValue(true), "true"},
		{"bool false", BoolValue(false), "false"},
		{"empty tuple", TupleValue{}, "()"},
		{"single-element tuple", TupleValue{IntValue(1)}, "(1)"},
		{
			"multi-element tuple",
			TupleValue{IntValue(1), StrValue("x"), BoolValue(true)},
			"(1, x, true)",
		},
		{
			"nested tuple",
			TupleValue{TupleValue{IntValue(1), IntValue(2)}, IntValue(3)},
			"((1, 2), 3)",
		},
		{"Y*", YStar{}, "Y*"},
		{"dummy", DummyValue{}, ""},
		{"lambda closure", LambdaClosure{Index: 3, Vars: "x", Env: 0}, "[lambda closure: x: 3]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Format(tc.input))
		})
	}
}

func Test_RenderTree_roundTrip(t *testing.T) {
	inputs := []string{
		"x",
		"let x = 5 in x",
		"(1,2,3)",
		"Print x",
		"x eq 0 -> 1 | 2",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			tree := parseSource(t, src)
			rendered := RenderTree(tree, ".")

			reparsed := parseTreeDump(t, rendered, ".")
			assert.Equal(t, shapeOf(tree), shapeOf(reparsed))
		})
	}
}

// parseTreeDump rebuilds a *Node from RenderTree's own "N dots + label"
// notation, used only to check property 7 (tree render round-trip): this is
// a test-only inverse of RenderTree, not a pipeline phase.
func parseTreeDump(t *testing.T, dump string, prefix string) *Node {
	t.Helper()

	var lines []string
	start := 0
	for i := 0; i < len(dump); i++ {
		if dump[i] == '\n' {
			lines = append(lines, dump[start:i])
			start = i + 1
		}
	}

	var stack []*Node
	var depths []int

	for _, line := range lines {
		depth := 0
		rest := line
		for len(rest) >= len(prefix) && rest[:len(prefix)] == prefix {
			depth++
			rest = rest[len(prefix):]
		}
		node := &Node{Label: rest}

		for len(stack) > 0 && depths[len(depths)-1] >= depth {
			stack = stack[:len(stack)-1]
			depths = depths[:len(depths)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
		depths = append(depths, depth)
	}

	if len(lines) == 0 {
		return nil
	}
	return stack[0]
}

// shapeOf reduces a tree to its (label, arity) structure, ignoring node
// identity, for the round-trip comparison in Test_RenderTree_roundTrip.
func shapeOf(n *Node) string {
	if n == nil {
		return "nil"
	}
	s := n.Label + "(" + strconv.Itoa(len(n.Children))
	for _, c := range n.Children {
		s += "," + shapeOf(c)
	}
	return s + ")"
}
