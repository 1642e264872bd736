package rpal

import (
	"strconv"
	"strings"
)

// Format renders a machine result value to the exact textual conventions of
// spec.md section 4.7, grounded on the formatting tail of apply_rules in
// original_source/src/cse_runtime.py (the block that runs once, after the
// control list empties, directly on stack[0]).
func Format(v Value) string {
	switch t := v.(type) {
	case TupleValue:
		return formatTuple(t)
	default:
		return formatScalar(v)
	}
}

func formatClosure(vars string, index int) string {
	return "[lambda closure: " + vars + ": " + strconv.Itoa(index) + "]"
}

func formatTuple(t TupleValue) string {
	if len(t) == 1 {
		return "(" + formatScalar(t[0]) + ")"
	}
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = formatScalar(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatScalar renders a single non-tuple value. Strings never carry
// surrounding quotes at the value level (lookup strips them, builtins.go),
// so they naturally satisfy spec.md's "strings render without quotes" rule
// whether they appear alone or as a tuple element.
func formatScalar(v Value) string {
	switch t := v.(type) {
	case IntValue:
		return strconv.FormatInt(int64(t), 10)
	case StrValue:
		return string(t)
	case BoolValue:
		if t {
			return "true"
		}
		return "false"
	case TupleValue:
		return formatTuple(t)
	case LambdaClosure:
		return formatClosure(t.Vars, t.Index)
	case EtaClosure:
		return formatClosure(t.Vars, t.Index)
	case BuiltinValue:
		return string(t)
	case YStar:
		return "Y*"
	case DummyValue:
		return ""
	default:
		return ""
	}
}
