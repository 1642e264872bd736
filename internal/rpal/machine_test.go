package rpal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram runs src through the full pipeline (scan/screen/parse/
// standardize/compile/execute) and returns what a CLI invocation with no
// flags would show: the formatted final value of the run if the program
// called Print/print at any point, or "" if it never did.
func runProgram(t *testing.T, src string) string {
	t.Helper()

	tokens, err := Scan(src)
	require.NoError(t, err)

	tree, err := Parse(tokens)
	require.NoError(t, err)

	std := Standardize(tree)

	result, printed, err := Run(std)
	require.NoError(t, err)

	if !printed {
		return ""
	}
	return Format(result)
}

func Test_Run_scenarios(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{"S1 let binding", "let x = 5 in Print x", "5"},
		{"S2 recursive factorial", "let rec F N = N eq 0 -> 1 | N*F(N-1) in Print (F 5)", "120"},
		{"S3 tuple", "Print (1,2,3)", "(1, 2, 3)"},
		{"S4 string equality", "Print ('a' eq 'a')", "true"},
		{"S5 string concat", "let x = 'he' in let y = 'llo' in Print (Conc x y)", "hello"},
		{"S6 tuple order", "Print (Order (1,2,3,4))", "4"},
		{"nil as terminal token", "Print nil", "()"},
		{"within binding", "let x = 3 within y = x + 1 in Print y", "4"},
		{"and bindings via tuple pattern", "let x = 2 and y = 3 in Print (x - y)", "-1"},
		{"aug builds tuples", "Print (nil aug 1 aug 2)", "(1, 2)"},
		{"nested tuple elements keep order", "Print ((1,2), 3)", "((1, 2), 3)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, runProgram(t, tc.input))
		})
	}
}

func Test_Run_noPrintProducesNoOutput(t *testing.T) {
	tokens, err := Scan("let x = 5 in x")
	require.NoError(t, err)
	tree, err := Parse(tokens)
	require.NoError(t, err)
	std := Standardize(tree)

	result, printed, err := Run(std)
	require.NoError(t, err)
	assert.False(t, printed)
	assert.Equal(t, IntValue(5), result)
}

func Test_Run_tupleIndexingIsOneBased(t *testing.T) {
	assert.Equal(t, "10", runProgram(t, "Print ((10,20,30) 1)"))
	assert.Equal(t, "30", runProgram(t, "Print ((10,20,30) 3)"))
}

func Test_Run_undeclaredIdentifier(t *testing.T) {
	tokens, err := Scan("Print y")
	require.NoError(t, err)
	tree, err := Parse(tokens)
	require.NoError(t, err)
	std := Standardize(tree)

	_, _, err = Run(std)
	assert.Error(t, err)

	var diag *Diagnostic
	assert.ErrorAs(t, err, &diag)
	assert.Equal(t, KindRuntime, diag.Kind)
}

func Test_Run_isfunctionAlwaysPushes(t *testing.T) {
	assert.Equal(t, "true", runProgram(t, "Print (Isfunction Print)"))
	assert.Equal(t, "false", runProgram(t, "Print (Isfunction 5)"))
}

func Test_Run_divisionTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, "-2", runProgram(t, "Print ((0-7)/3)"))
}
