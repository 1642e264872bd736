package rpal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) *Node {
	t.Helper()
	tokens, err := Scan(src)
	require.NoError(t, err)
	tree, err := Parse(tokens)
	require.NoError(t, err)
	return tree
}

func Test_Parse_shape(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "bare identifier",
			input:  "x",
			expect: "<ID:x>\n",
		},
		{
			name:  "let binding",
			input: "let x = 5 in x",
			expect: "" +
				"let\n" +
				".=\n" +
				"..<ID:x>\n" +
				"..<INT:5>\n" +
				".<ID:x>\n",
		},
		{
			name:  "function application",
			input: "Print x",
			expect: "" +
				"gamma\n" +
				".<ID:Print>\n" +
				".<ID:x>\n",
		},
		{
			name:  "tuple",
			input: "(1,2,3)",
			expect: "" +
				"tau\n" +
				".<INT:1>\n" +
				".<INT:2>\n" +
				".<INT:3>\n",
		},
		{
			name:  "conditional",
			input: "x eq 0 -> 1 | 2",
			expect: "" +
				"->\n" +
				".eq\n" +
				"..<ID:x>\n" +
				"..<INT:0>\n" +
				".<INT:1>\n" +
				".<INT:2>\n",
		},
		{
			name:  "function_form definition",
			input: "let F x = x in F",
			expect: "" +
				"let\n" +
				".function_form\n" +
				"..<ID:F>\n" +
				"..<ID:x>\n" +
				"..<ID:x>\n" +
				".<ID:F>\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := parseSource(t, tc.input)
			assert.Equal(t, tc.expect, RenderTree(tree, "."))
		})
	}
}

func Test_Parse_syntaxError(t *testing.T) {
	tokens, err := Scan("let x = in x")
	require.NoError(t, err)

	_, err = Parse(tokens)
	assert.Error(t, err)

	var diag *Diagnostic
	assert.ErrorAs(t, err, &diag)
	assert.Equal(t, KindSyntax, diag.Kind)
}

func Test_Parse_reservedWordPrefixIsIdentifier(t *testing.T) {
	// Asserts the screener's keyword promotion doesn't block ordinary
	// identifiers sharing a prefix with a reserved word: "lets" stays an
	// identifier even though "let" is reserved.
	tree := parseSource(t, "lets")
	assert.Equal(t, "<ID:lets>\n", RenderTree(tree, "."))
}
