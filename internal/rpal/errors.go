package rpal

import "fmt"

// file errors.go collects the fatal error taxonomy from spec.md section 7
// into a single Diagnostic type. Every phase of the pipeline returns a
// *Diagnostic (never panics) on a fatal condition; internal/rpal never
// recovers from one itself -- that is the CLI driver's job (cmd/rpal), which
// maps every Kind uniformly to exit code 1 while still printing the precise
// one-line message this type renders.
//
// This mirrors two idioms from the teacher repo: the parser's own
// line/position-carrying SyntaxError, and the separate split of a technical
// Error() string from a human-facing message that internal/tqerrors used for
// runtime-level failures. Diagnostic folds both into one type tagged with a
// Kind so callers don't need two different error shapes.
type Kind int

const (
	KindIO Kind = iota
	KindLex
	KindSyntax
	KindRuntime
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindLex:
		return "lexical error"
	case KindSyntax:
		return "syntax error"
	case KindRuntime:
		return "runtime error"
	case KindInternal:
		return "internal error"
	default:
		return "error"
	}
}

// Diagnostic is a fatal, one-line error produced by any phase of the
// pipeline. Line is 0 when the error has no associated source position (for
// example an I/O error or an internal invariant violation).
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
}

func (d *Diagnostic) Error() string {
	switch d.Kind {
	case KindSyntax:
		return fmt.Sprintf("Syntax error on line %d: %s", d.Line, d.Message)
	default:
		if d.Line > 0 {
			return fmt.Sprintf("%s: line %d: %s", d.Kind, d.Line, d.Message)
		}
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
}

func syntaxErrorf(line int, format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: KindSyntax, Line: line, Message: fmt.Sprintf(format, a...)}
}

func runtimeErrorf(format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: KindRuntime, Message: fmt.Sprintf(format, a...)}
}

func internalErrorf(format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: KindInternal, Message: fmt.Sprintf(format, a...)}
}
