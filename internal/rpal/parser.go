package rpal

// file parser.go implements the recursive-descent parser over the RPAL
// grammar (spec.md section 4.3), grounded directly on the non-terminal
// chain in original_source/src/rpal_ast_builder.py (parse_E, parse_Ew, ...).
// Each parse_X method is a literal port of its Python counterpart, using an
// explicit working stack of *Node instead of a package-level global one --
// following the re-architecture guidance in spec.md section 9 to turn
// module-level state into fields of an owned value.

type parser struct {
	ts    *tokenStream
	stack []*Node
}

// Parse runs the screener over tokens and builds the AST. It returns a
// *Diagnostic on any fatal condition: KindLex for an invalid token,
// KindSyntax for a grammar error, and KindInternal when there are no tokens
// at all or the construction stack ends up empty.
func Parse(tokens []Token) (*Node, error) {
	screened, invalid, firstInvalid := Screen(tokens)
	if invalid {
		return nil, &Diagnostic{Kind: KindLex, Line: firstInvalid.Line, Message: "invalid token: " + firstInvalid.Lexeme}
	}
	if len(screened) == 0 {
		return nil, internalErrorf("no tokens to parse")
	}

	p := &parser{ts: newTokenStream(screened)}
	if err := p.parseE(); err != nil {
		return nil, err
	}

	if len(p.stack) == 0 {
		return nil, internalErrorf("AST construction stack unexpectedly empty")
	}
	return p.pop(), nil
}

func (p *parser) push(n *Node) { p.stack = append(p.stack, n) }

func (p *parser) pop() *Node {
	n := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return n
}

// build pops k children off the stack right-to-left and pushes a new node
// labeled label with them restored to their original left-to-right order.
func (p *parser) build(label string, k int) error {
	if len(p.stack) < k {
		return internalErrorf("AST construction stack unexpectedly empty")
	}
	children := make([]*Node, k)
	for i := 0; i < k; i++ {
		children[k-i-1] = p.pop()
	}
	p.push(newNode(label, children...))
	return nil
}

func (p *parser) peek() Token { return p.ts.Peek() }

// consume verifies the current token's lexeme matches expected and advances
// past it, applying the terminal-token trick on the final token.
func (p *parser) consume(expected string) error {
	tok := p.peek()
	if tok.Lexeme != expected {
		return syntaxErrorf(tok.Line, "expected '%s', got '%s'", expected, tok.Lexeme)
	}
	p.ts.Next()
	return nil
}

func expectedErr(tok Token, want string) error {
	return syntaxErrorf(tok.Line, "expected %s, got '%s'", want, tok.Lexeme)
}

// --- E ---

func (p *parser) parseE() error {
	tok := p.peek()
	switch tok.Lexeme {
	case "let":
		if err := p.consume("let"); err != nil {
			return err
		}
		if err := p.parseD(); err != nil {
			return err
		}
		if p.peek().Lexeme != "in" {
			return expectedErr(p.peek(), "'in'")
		}
		if err := p.consume("in"); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		return p.build("let", 2)

	case "fn":
		if err := p.consume("fn"); err != nil {
			return err
		}
		count := 0
		for p.peek().Category == Identifier || p.peek().Lexeme == "(" {
			if err := p.parseVb(); err != nil {
				return err
			}
			count++
		}
		if count == 0 {
			return expectedErr(p.peek(), "identifier or '('")
		}
		if err := p.consume("."); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		return p.build("lambda", count+1)

	default:
		return p.parseEw()
	}
}

func (p *parser) parseEw() error {
	if err := p.parseT(); err != nil {
		return err
	}
	if p.peek().Lexeme == "where" {
		if err := p.consume("where"); err != nil {
			return err
		}
		if err := p.parseDr(); err != nil {
			return err
		}
		return p.build("where", 2)
	}
	return nil
}

// --- T ---

func (p *parser) parseT() error {
	if err := p.parseTa(); err != nil {
		return err
	}
	count := 0
	for p.peek().Lexeme == "," {
		if err := p.consume(","); err != nil {
			return err
		}
		if err := p.parseTa(); err != nil {
			return err
		}
		count++
	}
	if count > 0 {
		return p.build("tau", count+1)
	}
	return nil
}

func (p *parser) parseTa() error {
	if err := p.parseTc(); err != nil {
		return err
	}
	for p.peek().Lexeme == "aug" {
		if err := p.consume("aug"); err != nil {
			return err
		}
		if err := p.parseTc(); err != nil {
			return err
		}
		if err := p.build("aug", 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseTc() error {
	if err := p.parseB(); err != nil {
		return err
	}
	if p.peek().Lexeme == "->" {
		if err := p.consume("->"); err != nil {
			return err
		}
		if err := p.parseTc(); err != nil {
			return err
		}
		if err := p.consume("|"); err != nil {
			return err
		}
		if err := p.parseTc(); err != nil {
			return err
		}
		return p.build("->", 3)
	}
	return nil
}

// --- B ---

func (p *parser) parseB() error {
	if err := p.parseBt(); err != nil {
		return err
	}
	for p.peek().Lexeme == "or" {
		if err := p.consume("or"); err != nil {
			return err
		}
		if err := p.parseBt(); err != nil {
			return err
		}
		if err := p.build("or", 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseBt() error {
	if err := p.parseBs(); err != nil {
		return err
	}
	for p.peek().Lexeme == "&" {
		if err := p.consume("&"); err != nil {
			return err
		}
		if err := p.parseBs(); err != nil {
			return err
		}
		if err := p.build("&", 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseBs() error {
	if p.peek().Lexeme == "not" {
		if err := p.consume("not"); err != nil {
			return err
		}
		if err := p.parseBp(); err != nil {
			return err
		}
		return p.build("not", 1)
	}
	return p.parseBp()
}

var comparisonCanonical = map[string]string{
	">": "gr", ">=": "ge", "<": "ls", "<=": "le",
	"gr": "gr", "ge": "ge", "ls": "ls", "le": "le", "eq": "eq", "ne": "ne",
}

func (p *parser) parseBp() error {
	if err := p.parseA(); err != nil {
		return err
	}
	op := p.peek().Lexeme
	if canonical, ok := comparisonCanonical[op]; ok {
		if err := p.consume(op); err != nil {
			return err
		}
		if err := p.parseA(); err != nil {
			return err
		}
		return p.build(canonical, 2)
	}
	return nil
}

// --- A ---

func (p *parser) parseA() error {
	switch p.peek().Lexeme {
	case "+":
		if err := p.consume("+"); err != nil {
			return err
		}
		if err := p.parseAt(); err != nil {
			return err
		}
	case "-":
		if err := p.consume("-"); err != nil {
			return err
		}
		if err := p.parseAt(); err != nil {
			return err
		}
		if err := p.build("neg", 1); err != nil {
			return err
		}
	default:
		if err := p.parseAt(); err != nil {
			return err
		}
	}

	for p.peek().Lexeme == "+" || p.peek().Lexeme == "-" {
		op := p.peek().Lexeme
		if err := p.consume(op); err != nil {
			return err
		}
		if err := p.parseAt(); err != nil {
			return err
		}
		if err := p.build(op, 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseAt() error {
	if err := p.parseAf(); err != nil {
		return err
	}
	for p.peek().Lexeme == "*" || p.peek().Lexeme == "/" {
		op := p.peek().Lexeme
		if err := p.consume(op); err != nil {
			return err
		}
		if err := p.parseAf(); err != nil {
			return err
		}
		if err := p.build(op, 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseAf() error {
	if err := p.parseAp(); err != nil {
		return err
	}
	if p.peek().Lexeme == "**" {
		if err := p.consume("**"); err != nil {
			return err
		}
		if err := p.parseAf(); err != nil {
			return err
		}
		return p.build("**", 2)
	}
	return nil
}

func (p *parser) parseAp() error {
	if err := p.parseR(); err != nil {
		return err
	}
	for p.peek().Lexeme == "@" {
		if err := p.consume("@"); err != nil {
			return err
		}
		if p.peek().Category != Identifier {
			return expectedErr(p.peek(), "identifier")
		}
		name := p.peek().Lexeme
		p.ts.Next()
		p.push(newNode(idLabel(name)))
		if err := p.parseR(); err != nil {
			return err
		}
		if err := p.build("@", 3); err != nil {
			return err
		}
	}
	return nil
}

// --- R ---

// isRnStart reports whether tok can begin an Rn operand. The keyword
// literals are checked by category as well as lexeme so that a program whose
// terminal token is one of them still ends the application loop once the
// terminal-token trick has forced that token's category to Punctuation.
func isRnStart(tok Token) bool {
	switch tok.Category {
	case Identifier, Integer, String:
		return true
	case Keyword:
		switch tok.Lexeme {
		case "true", "false", "nil", "dummy":
			return true
		}
	case Punctuation:
		return tok.Lexeme == "("
	}
	return false
}

func (p *parser) parseR() error {
	if err := p.parseRn(); err != nil {
		return err
	}
	for isRnStart(p.peek()) {
		if err := p.parseRn(); err != nil {
			return err
		}
		if err := p.build("gamma", 2); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseRn() error {
	tok := p.peek()
	switch {
	case tok.Category == Identifier:
		p.ts.Next()
		p.push(newNode(idLabel(tok.Lexeme)))
	case tok.Category == Integer:
		p.ts.Next()
		p.push(newNode(intLabel(tok.Lexeme)))
	case tok.Category == String:
		p.ts.Next()
		p.push(newNode(strLabel(tok.Lexeme)))
	case tok.Lexeme == "true", tok.Lexeme == "false", tok.Lexeme == "nil", tok.Lexeme == "dummy":
		p.ts.Next()
		p.push(newNode("<" + tok.Lexeme + ">"))
	case tok.Lexeme == "(":
		if err := p.consume("("); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		if err := p.consume(")"); err != nil {
			return err
		}
	default:
		return expectedErr(tok, "literal, identifier or '('")
	}
	return nil
}

// --- D ---

func (p *parser) parseD() error {
	if err := p.parseDa(); err != nil {
		return err
	}
	if p.peek().Lexeme == "within" {
		if err := p.consume("within"); err != nil {
			return err
		}
		if err := p.parseD(); err != nil {
			return err
		}
		return p.build("within", 2)
	}
	return nil
}

func (p *parser) parseDa() error {
	if err := p.parseDr(); err != nil {
		return err
	}
	count := 0
	for p.peek().Lexeme == "and" {
		if err := p.consume("and"); err != nil {
			return err
		}
		if err := p.parseDr(); err != nil {
			return err
		}
		count++
	}
	if count > 0 {
		return p.build("and", count+1)
	}
	return nil
}

func (p *parser) parseDr() error {
	if p.peek().Lexeme == "rec" {
		if err := p.consume("rec"); err != nil {
			return err
		}
		if err := p.parseDb(); err != nil {
			return err
		}
		return p.build("rec", 1)
	}
	return p.parseDb()
}

func (p *parser) parseDb() error {
	tok := p.peek()
	switch {
	case tok.Lexeme == "(":
		if err := p.consume("("); err != nil {
			return err
		}
		if err := p.parseD(); err != nil {
			return err
		}
		return p.consume(")")

	case tok.Category == Identifier:
		p.ts.Next()
		p.push(newNode(idLabel(tok.Lexeme)))

		next := p.peek()
		if next.Lexeme == "," || next.Lexeme == "=" {
			if err := p.parseVl(); err != nil {
				return err
			}
			if err := p.consume("="); err != nil {
				return err
			}
			if err := p.parseE(); err != nil {
				return err
			}
			return p.build("=", 2)
		}

		count := 0
		for p.peek().Category == Identifier || p.peek().Lexeme == "(" {
			if err := p.parseVb(); err != nil {
				return err
			}
			count++
		}
		if count == 0 {
			return expectedErr(p.peek(), "identifier or '('")
		}
		if err := p.consume("="); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		return p.build("function_form", count+2)

	default:
		return expectedErr(tok, "identifier or '('")
	}
}

func (p *parser) parseVb() error {
	tok := p.peek()
	switch {
	case tok.Category == Identifier:
		p.ts.Next()
		p.push(newNode(idLabel(tok.Lexeme)))
		return nil

	case tok.Lexeme == "(":
		if err := p.consume("("); err != nil {
			return err
		}
		inner := p.peek()
		switch {
		case inner.Lexeme == ")":
			if err := p.consume(")"); err != nil {
				return err
			}
			p.push(newNode("()"))
			return nil
		case inner.Category == Identifier:
			p.ts.Next()
			p.push(newNode(idLabel(inner.Lexeme)))
			if err := p.parseVl(); err != nil {
				return err
			}
			return p.consume(")")
		default:
			return expectedErr(inner, "identifier or ')'")
		}

	default:
		return expectedErr(tok, "identifier or '('")
	}
}

func (p *parser) parseVl() error {
	count := 0
	for p.peek().Lexeme == "," {
		if err := p.consume(","); err != nil {
			return err
		}
		tok := p.peek()
		if tok.Category != Identifier {
			return expectedErr(tok, "identifier")
		}
		p.ts.Next()
		p.push(newNode(idLabel(tok.Lexeme)))
		count++
	}
	if count > 0 {
		return p.build(",", count+1)
	}
	return nil
}
