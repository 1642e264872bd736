package rpal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compile_letBinding(t *testing.T) {
	tree := parseSource(t, "let x = 5 in x")
	std := Standardize(tree)

	// let(=(x,5), x) standardizes to gamma(lambda(x, x), 5).
	require.Equal(t, "gamma", std.Label)

	store := Compile(std)
	require.Len(t, store, 2)

	assert.Equal(t, []ControlItem{
		labelItem("gamma"),
		lambdaItem(1, "x"),
		labelItem(intLabel("5")),
	}, store[0])

	assert.Equal(t, []ControlItem{
		labelItem(idLabel("x")),
	}, store[1])
}

func Test_Compile_conditional(t *testing.T) {
	tree := parseSource(t, "x eq 0 -> 1 | 2")
	store := Compile(tree)

	require.Len(t, store, 3)
	assert.Equal(t, []ControlItem{
		deltaItem(1),
		deltaItem(2),
		labelItem("beta"),
		labelItem("eq"),
		labelItem(idLabel("x")),
		labelItem(intLabel("0")),
	}, store[0])
	assert.Equal(t, []ControlItem{labelItem(intLabel("1"))}, store[1])
	assert.Equal(t, []ControlItem{labelItem(intLabel("2"))}, store[2])
}

func Test_Compile_tuple(t *testing.T) {
	tree := parseSource(t, "(1,2,3)")
	store := Compile(tree)

	require.Len(t, store, 1)
	assert.Equal(t, []ControlItem{
		tupleItem(3),
		labelItem(intLabel("1")),
		labelItem(intLabel("2")),
		labelItem(intLabel("3")),
	}, store[0])
}
