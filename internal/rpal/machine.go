package rpal

// Machine executes a ControlStore, implementing the thirteen CSE rules of
// spec.md section 4.6 and grounded on apply_rules in
// original_source/src/cse_runtime.py. Unlike the Python original, which kept
// control/stack/environments/current_environment as module globals, every
// field lives on Machine so a program can be run more than once (and
// concurrently) without cross-contaminating state.
type Machine struct {
	store   ControlStore
	control []ControlItem
	stack   []Value
	envs    []*environment
	curEnv  int
	printed bool
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "**": true,
	"gr": true, "ge": true, "ls": true, "le": true, "eq": true, "ne": true,
	"or": true, "&": true, "aug": true,
}

var unaryOps = map[string]bool{"neg": true, "not": true}

// Run compiles and executes root's control structures to completion,
// returning the machine's final value (the bottom of the halted stack). If
// Print or print was invoked at any point during execution, printed reports
// true; the caller emits the formatted final value once, at the very end of
// the run, and never before.
func Run(root *Node) (result Value, printed bool, err error) {
	store := Compile(root)
	m := newMachine(store)
	if err := m.run(); err != nil {
		return nil, false, err
	}
	if len(m.stack) == 0 {
		return nil, false, internalErrorf("machine halted with an empty stack")
	}
	return m.stack[0], m.printed, nil
}

func newMachine(store ControlStore) *Machine {
	m := &Machine{store: store, curEnv: 0}
	root := newEnvironment(0, -1)
	m.envs = []*environment{root}
	return m
}

func (m *Machine) run() error {
	m.control = append(m.control, envMarkerItem(0))
	m.control = append(m.control, m.store[0]...)
	m.stack = append(m.stack, envMarkerValue(0))

	for len(m.control) > 0 {
		item := m.control[len(m.control)-1]
		m.control = m.control[:len(m.control)-1]

		if err := m.step(item); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) step(item ControlItem) error {
	switch item.Kind {
	case ItemLambda:
		// Rule 2: a lambda literal becomes a closure over the current
		// environment the instant it is pushed.
		m.push(LambdaClosure{Index: item.Index, Vars: item.Vars, Env: m.curEnv})
		return nil

	case ItemTuple:
		// Rule 9: pop n values and push them as one tuple. The first popped
		// value becomes element 0, which is source order: the compiler emits
		// tuple elements left to right, so the leftmost one is evaluated
		// last and sits on top of the stack here.
		n := item.N
		if len(m.stack) < n {
			return internalErrorf("tuple construction needs %d values, stack has %d", n, len(m.stack))
		}
		elems := make(TupleValue, n)
		for i := 0; i < n; i++ {
			elems[i] = m.pop()
		}
		m.push(elems)
		return nil

	case ItemDelta:
		// A bare delta only ever reaches step() as one of the two operands
		// to "beta"; it is never popped off control on its own.
		return internalErrorf("internal: delta item reached top-level control execution")

	case ItemEnvMarker:
		return m.ruleExitEnvironment(item.Index)
	}

	label := item.Label
	switch {
	case isTagged(label):
		v, err := m.lookup(label)
		if err != nil {
			return err
		}
		m.push(v)
		return nil

	case label == "gamma":
		return m.ruleGamma()

	case label == "beta":
		return m.ruleBeta()

	case binaryOps[label]:
		return m.ruleBinary(label)

	case unaryOps[label]:
		return m.ruleUnary(label)

	default:
		return internalErrorf("unrecognized control item %q", label)
	}
}

func (m *Machine) push(v Value) { m.stack = append(m.stack, v) }

func (m *Machine) pop() Value {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

func isTagged(label string) bool {
	return len(label) >= 2 && label[0] == '<' && label[len(label)-1] == '>'
}

// ruleGamma is Rule 4 (function application/dispatch): depending on what the
// applied-to value turns out to be, it also performs the work of Rules 10
// (tuple indexing), 12 (Y* combinator) and 13 (eta-closure unfolding), and
// dispatch to a builtin -- exactly the five-way branch apply_rules uses.
func (m *Machine) ruleGamma() error {
	fn := m.pop()
	arg := m.pop()

	switch f := fn.(type) {
	case LambdaClosure:
		return m.enterLambda(f, arg)

	case TupleValue:
		idx, ok := arg.(IntValue)
		if !ok {
			return runtimeErrorf("tuple index must be an integer")
		}
		i := int(idx)
		if i < 1 || i > len(f) {
			return runtimeErrorf("tuple index %d out of range (tuple has %d elements)", i, len(f))
		}
		m.push(f[i-1])
		return nil

	case YStar:
		closure, ok := arg.(LambdaClosure)
		if !ok {
			return runtimeErrorf("Y* must be applied to a lambda")
		}
		m.push(EtaClosure{Index: closure.Index, Vars: closure.Vars, Env: closure.Env})
		return nil

	case EtaClosure:
		// Unfold: push fn back as a LambdaClosure, re-apply gamma twice so
		// the closure both receives arg and recreates its own Y* binding.
		unfolded := LambdaClosure{Index: f.Index, Vars: f.Vars, Env: f.Env}
		m.control = append(m.control, labelItem("gamma"), labelItem("gamma"))
		m.push(arg)
		m.push(f)
		m.push(unfolded)
		return nil

	case BuiltinValue:
		return m.callBuiltin(string(f), arg)

	default:
		return runtimeErrorf("cannot apply a non-function value")
	}
}

// enterLambda is the function-application branch of Rule 4: it opens a new
// environment that inherits f's closed-over environment's bindings, binds
// the argument(s) (Rule 11 for tuple-pattern parameters), and switches
// control onto the closure's body.
func (m *Machine) enterLambda(f LambdaClosure, arg Value) error {
	newID := len(m.envs)
	m.curEnv = newID

	parent := m.envs[f.Env]
	child := newEnvironment(newID, f.Env)
	for k, v := range parent.bindings {
		child.bindings[k] = v
	}
	m.envs = append(m.envs, child)

	names := splitVars(f.Vars)
	if len(names) > 1 {
		argTuple, ok := arg.(TupleValue)
		if !ok || len(argTuple) != len(names) {
			return runtimeErrorf("lambda expects a %d-tuple argument", len(names))
		}
		for i, name := range names {
			child.bind(name, argTuple[i])
		}
	} else {
		child.bind(f.Vars, arg)
	}

	m.push(envMarkerValue(newID))
	m.control = append(m.control, envMarkerItem(newID))
	m.control = append(m.control, m.store[f.Index]...)
	return nil
}

func splitVars(vars string) []string {
	if vars == "" {
		return nil
	}
	var names []string
	start := 0
	for i := 0; i < len(vars); i++ {
		if vars[i] == ',' {
			names = append(names, vars[start:i])
			start = i + 1
		}
	}
	names = append(names, vars[start:])
	return names
}

// ruleExitEnvironment is Rule 5: the environment marker on both control and
// stack bracket a completed lambda body. Pop the body's result off the
// stack, discard the marker beneath it, and restore curEnv to the nearest
// still-open environment marker remaining on the stack.
func (m *Machine) ruleExitEnvironment(id int) error {
	if len(m.stack) < 2 {
		return internalErrorf("environment exit with fewer than two stack values")
	}
	result := m.pop()
	m.pop() // discard the matching marker value

	if m.curEnv != 0 {
		for i := len(m.stack) - 1; i >= 0; i-- {
			if marker, ok := m.stack[i].(envMarkerValue); ok {
				m.curEnv = int(marker)
				break
			}
		}
	}
	m.push(result)
	return nil
}

// ruleBeta is Rule 8: pop the condition, discard whichever of the two delta
// branches was not taken, and splice the taken branch's control structure in.
func (m *Machine) ruleBeta() error {
	cond := m.pop()
	b, ok := cond.(BoolValue)
	if !ok {
		return runtimeErrorf("condition of -> must be a boolean")
	}
	if len(m.control) < 2 {
		return internalErrorf("beta with fewer than two pending delta items")
	}
	elsePart := m.control[len(m.control)-1]
	thenPart := m.control[len(m.control)-2]
	m.control = m.control[:len(m.control)-2]

	if b {
		m.control = append(m.control, m.store[thenPart.Index]...)
	} else {
		m.control = append(m.control, m.store[elsePart.Index]...)
	}
	return nil
}

// lookup resolves a tagged leaf token (<ID:..>, <INT:..>, <STR:..>) or a
// bare keyword literal (true, false, nil, dummy) to a runtime Value, grounded
// on the lookup function in cse_runtime.py.
func (m *Machine) lookup(tagged string) (Value, error) {
	inner := tagged[1 : len(tagged)-1]
	kind, text, hasKind := cutTag(inner)
	if !hasKind {
		return m.lookupBareLiteral(text)
	}

	switch kind {
	case "INT":
		return parseIntLiteral(text)
	case "STR":
		return StrValue(unquoteRPALString(text)), nil
	case "ID":
		if isBuiltinName(text) {
			return BuiltinValue(text), nil
		}
		env := m.envs[m.curEnv]
		v, ok := env.bindings[text]
		if !ok {
			return nil, runtimeErrorf("Undeclared Identifier: %s", text)
		}
		return v, nil
	default:
		return m.lookupBareLiteral(text)
	}
}

func (m *Machine) lookupBareLiteral(text string) (Value, error) {
	switch text {
	case "Y*":
		return YStar{}, nil
	case "nil":
		return TupleValue{}, nil
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	case "dummy":
		return DummyValue{}, nil
	default:
		return nil, internalErrorf("unrecognized literal %q", text)
	}
}

func cutTag(inner string) (kind, text string, ok bool) {
	for i := 0; i < len(inner); i++ {
		if inner[i] == ':' {
			return inner[:i], inner[i+1:], true
		}
	}
	return "", inner, false
}
