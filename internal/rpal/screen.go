package rpal

import "github.com/dekarrin/rpal/internal/util"

// file screen.go implements the screener pass: it promotes reserved
// identifiers to keywords, drops whitespace/comment/newline tokens, and
// records the first invalid token seen (spec.md section 4.2). It never
// aborts on its own -- an invalid token is reported by the caller once
// screening finishes, matching run_screener/parse_rpal_program in
// original_source/src/screener_module.py and rpal_ast_builder.py.

var reservedWords = func() util.StringSet {
	s := util.NewStringSet()
	for _, w := range []string{
		"let", "in", "where", "rec", "fn", "aug", "or", "not", "gr", "ge", "ls",
		"le", "eq", "ne", "true", "false", "nil", "dummy", "within", "and",
	} {
		s.Add(w)
	}
	return s
}()

// Screen walks tokens and returns the compacted token slice, whether any
// Invalid token was found, and the first such token (zero value if none).
func Screen(tokens []Token) ([]Token, bool, Token) {
	out := make([]Token, 0, len(tokens))
	var hadInvalid bool
	var firstInvalid Token

	for _, tok := range tokens {
		if tok.Category == Identifier && reservedWords.Has(tok.Lexeme) {
			tok.Category = Keyword
		}

		if tok.Category == Invalid && !hadInvalid {
			hadInvalid = true
			firstInvalid = tok
		}

		if tok.Category == Delete || tok.Lexeme == "\n" {
			continue
		}

		out = append(out, tok)
	}

	if len(out) > 0 {
		out[len(out)-1].Last = true
	}

	return out, hadInvalid, firstInvalid
}
