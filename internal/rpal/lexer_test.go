package rpal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scan(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "identifier",
			input: "foo",
			expect: []Token{
				{Lexeme: "foo", Category: Identifier, Line: 1, First: true, Last: true},
			},
		},
		{
			name:  "integer",
			input: "42",
			expect: []Token{
				{Lexeme: "42", Category: Integer, Line: 1, First: true, Last: true},
			},
		},
		{
			name:  "invalid mixed alnum token",
			input: "5x",
			expect: []Token{
				{Lexeme: "5x", Category: Invalid, Line: 1, First: true, Last: true},
			},
		},
		{
			name:  "string literal",
			input: "'hello'",
			expect: []Token{
				{Lexeme: "'hello'", Category: String, Line: 1, First: true, Last: true},
			},
		},
		{
			name:  "operator run",
			input: "->",
			expect: []Token{
				{Lexeme: "->", Category: Operator, Line: 1, First: true, Last: true},
			},
		},
		{
			name:  "punctuation",
			input: "(x)",
			expect: []Token{
				{Lexeme: "(", Category: Punctuation, Line: 1, First: true},
				{Lexeme: "x", Category: Identifier, Line: 1},
				{Lexeme: ")", Category: Punctuation, Line: 1, Last: true},
			},
		},
		{
			name:  "line comment is a Delete token",
			input: "x // comment\ny",
			expect: []Token{
				{Lexeme: "x", Category: Identifier, Line: 1, First: true},
				{Lexeme: " ", Category: Delete, Line: 1},
				{Lexeme: "// comment", Category: Delete, Line: 1},
				{Lexeme: "\n", Category: Delete, Line: 1},
				{Lexeme: "y", Category: Identifier, Line: 2, Last: true},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Scan(tc.input)
			require.NoError(t, err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Scan_unterminatedString(t *testing.T) {
	_, err := Scan("'never closed")
	assert.Error(t, err)

	var diag *Diagnostic
	assert.ErrorAs(t, err, &diag)
	assert.Equal(t, KindLex, diag.Kind)
}

func Test_Scan_unknownCharacter(t *testing.T) {
	_, err := Scan("x \x01 y")
	assert.Error(t, err)
}
