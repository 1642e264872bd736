package rpal

import "fmt"

// Value is anything the CSE machine stack can hold. It is a closed sum type:
// IntValue, StrValue, BoolValue, TupleValue, LambdaClosure, EtaClosure,
// BuiltinValue, and YStar mirror the set of Python runtime objects pushed
// onto the stack in original_source/src/cse_runtime.py (int, str, bool,
// tuple, LambdaClosure, EtaClosure, a builtin's bare name, and the literal
// string "Y*"); DummyValue and the stack-only envMarkerValue complete the
// set of implementations.
type Value interface {
	valueTag()
}

type IntValue int64

func (IntValue) valueTag() {}

type StrValue string

func (StrValue) valueTag() {}

type BoolValue bool

func (BoolValue) valueTag() {}

type TupleValue []Value

func (TupleValue) valueTag() {}

// LambdaClosure is a lambda paired with the environment it closed over.
// Rule 2 sets Env to the current environment at the point the closure is
// pushed.
type LambdaClosure struct {
	Index int
	Vars  string
	Env   int
}

func (LambdaClosure) valueTag() {}

// EtaClosure is the self-referential closure produced by applying Y* to a
// LambdaClosure (Rule 12), unfolded back into a fresh LambdaClosure the next
// time it is applied (Rule 13).
type EtaClosure struct {
	Index int
	Vars  string
	Env   int
}

func (EtaClosure) valueTag() {}

// BuiltinValue names one of the built-in functions (builtinNameSet), looked up
// by identifier lookup instead of by environment binding.
type BuiltinValue string

func (BuiltinValue) valueTag() {}

// YStar is the singleton value of the literal "<Y*>" control item.
type YStar struct{}

func (YStar) valueTag() {}

// DummyValue is RPAL's unit value, produced by the literal "<dummy>"
// leaf. The original lookup function has no case for it at all (a bare
// "dummy" literal falls through to an implicit None), so there is no
// ground-truth behavior to copy; dummy is otherwise only ever used as a
// throwaway binding (e.g. "let dummy = f x in ...") so it is represented as
// its own empty marker type rather than reusing the empty tuple.
type DummyValue struct{}

func (DummyValue) valueTag() {}

// envMarkerValue is pushed onto the value stack alongside its matching
// control-list marker whenever Rule 4 opens a new environment, so Rule 5 can
// find the innermost still-open environment by scanning the stack instead of
// string-prefix-matching values (the original walks reversed(stack) for any
// str starting with "e_", which would also misfire on an ordinary RPAL
// string that happened to start that way).
type envMarkerValue int

func (envMarkerValue) valueTag() {}

// String renders a Value the way the interactive trace/debug output and
// tests want to see it; Format (format.go) renders the final program result.
func (v IntValue) String() string { return fmt.Sprintf("%d", int64(v)) }
func (v StrValue) String() string { return string(v) }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}
