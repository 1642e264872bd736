package rpal

import "strconv"

// builtinNameSet lists the RPAL standard environment functions, grounded on
// builtInFunctions in original_source/src/cse_runtime.py. A lookup for one
// of these names resolves to a BuiltinValue instead of an environment
// binding, matching the original's "if label in builtInFunctions" shortcut.
var builtinNameSet = map[string]bool{
	"Order": true, "Print": true, "print": true, "Conc": true,
	"Stern": true, "Stem": true, "Isinteger": true, "Istruthvalue": true,
	"Isstring": true, "Istuple": true, "Isfunction": true, "ItoS": true,
}

func isBuiltinName(name string) bool { return builtinNameSet[name] }

// callBuiltin implements Rule 4's builtin dispatch branch, grounded on
// built_in in cse_runtime.py. arg is the value the builtin was applied to
// (stack_symbol_2 in the original).
func (m *Machine) callBuiltin(name string, arg Value) error {
	switch name {
	case "Order":
		t, ok := arg.(TupleValue)
		if !ok {
			return runtimeErrorf("Order requires a tuple")
		}
		m.push(IntValue(len(t)))
		return nil

	case "Print", "print":
		// Print does not emit anything itself: it expands escapes, pushes
		// its argument back, and flags the machine so the driver emits the
		// final value once the control list empties.
		m.printed = true
		m.push(unescapePrintable(arg))
		return nil

	case "Conc":
		// Conc is curried: "Conc s1 s2" compiles to nested gamma nodes, but
		// rather than let the outer gamma dispatch separately, the original
		// grabs the second operand straight off the stack and discards the
		// still-pending outer "gamma" control item here, in the same step
		// that handles the first.
		if len(m.stack) < 1 {
			return internalErrorf("Conc needs a second operand on the stack")
		}
		s2 := m.pop()
		if len(m.control) < 1 {
			return internalErrorf("Conc needs a pending gamma to discard")
		}
		m.control = m.control[:len(m.control)-1]

		s1, ok1 := arg.(StrValue)
		s2v, ok2 := s2.(StrValue)
		if !ok1 || !ok2 {
			return runtimeErrorf("Conc requires two strings")
		}
		m.push(s1 + s2v)
		return nil

	case "Stern":
		s, ok := arg.(StrValue)
		if !ok || len(s) == 0 {
			return runtimeErrorf("Stern requires a non-empty string")
		}
		m.push(s[1:])
		return nil

	case "Stem":
		s, ok := arg.(StrValue)
		if !ok || len(s) == 0 {
			return runtimeErrorf("Stem requires a non-empty string")
		}
		m.push(s[0:1])
		return nil

	case "Isinteger":
		_, ok := arg.(IntValue)
		m.push(BoolValue(ok))
		return nil

	case "Istruthvalue":
		_, ok := arg.(BoolValue)
		m.push(BoolValue(ok))
		return nil

	case "Isstring":
		_, ok := arg.(StrValue)
		m.push(BoolValue(ok))
		return nil

	case "Istuple":
		_, ok := arg.(TupleValue)
		m.push(BoolValue(ok))
		return nil

	case "Isfunction":
		// Holds only for the built-in function names, not for user lambdas.
		// The original is inconsistent about pushing its result to the
		// stack (a latent bug: its false branch never pushes a value).
		// Standardized here to always push a Boolean, per the documented
		// deviation.
		_, ok := arg.(BuiltinValue)
		m.push(BoolValue(ok))
		return nil

	case "ItoS":
		n, ok := arg.(IntValue)
		if !ok {
			return runtimeErrorf("ItoS function can only accept integers")
		}
		m.push(StrValue(strconv.FormatInt(int64(n), 10)))
		return nil

	default:
		return internalErrorf("unrecognized builtin %q", name)
	}
}

// unescapePrintable expands the literal two-character sequences \n and \t
// inside a string value into real newline/tab bytes before it is recorded as
// the program's printed output, matching Print/print's escape handling in
// the original.
func unescapePrintable(v Value) Value {
	s, ok := v.(StrValue)
	if !ok {
		return v
	}
	out := make([]byte, 0, len(s))
	text := string(s)
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			switch text[i+1] {
			case 'n':
				out = append(out, '\n')
				i++
				continue
			case 't':
				out = append(out, '\t')
				i++
				continue
			}
		}
		out = append(out, text[i])
	}
	return StrValue(out)
}

func parseIntLiteral(text string) (Value, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, internalErrorf("malformed integer literal %q", text)
	}
	return IntValue(n), nil
}

func unquoteRPALString(quoted string) string {
	if len(quoted) >= 2 && quoted[0] == '\'' && quoted[len(quoted)-1] == '\'' {
		return quoted[1 : len(quoted)-1]
	}
	return quoted
}
