package rpal

// file interpret.go is the orchestration layer that drives one source file
// through the whole scan/screen/parse/standardize/compile/run/format
// pipeline -- grounded on the shape of the teacher's own root Engine (its
// New constructor loading a resource, then one driving method), folded
// directly into this package rather than kept as a separate root package,
// since nothing here needs Engine's interactive-shell state (forceDirect,
// a running bufio.Writer loop): a batch interpreter runs once and exits.

// Result is everything a completed, non-tree-dump run produced, handed back
// to the CLI driver to render. Value is the machine's final value; Printed
// reports whether Print/print was invoked at any point, which is the sole
// condition under which the driver shows Value at all.
type Result struct {
	Printed bool
	Value   Value
}

// Interpret runs source through the full pipeline and returns its Result.
// cfg controls cache behavior; cachePath, if non-empty, is the source file's
// path on disk, used to key and locate a .rpalc sidecar per CacheKey. An
// empty cachePath (source read from something other than a plain file, e.g.
// stdin) simply skips caching.
func Interpret(source string, cfg Config, cachePath string) (Result, error) {
	tree, err := BuildTree(source)
	if err != nil {
		return Result{}, err
	}

	std := Standardize(tree)

	var store ControlStore
	key := CacheKey([]byte(source))

	if cfg.Output.Cache && cachePath != "" {
		if cached, ok := LoadCached(cachePath, key); ok {
			store = cached
		}
	}
	if store == nil {
		store = Compile(std)
		if cfg.Output.Cache && cachePath != "" {
			// Caching failures never block a run; they only cost a
			// recompile on the next invocation.
			_ = StoreCached(cachePath, key, store)
		}
	}

	final, printed, err := runStore(store)
	if err != nil {
		return Result{}, err
	}

	return Result{Printed: printed, Value: final}, nil
}

// BuildTree runs source through scan/screen/parse and returns the
// pre-standardization AST, the form -ast prints.
func BuildTree(source string) (*Node, error) {
	tokens, err := Scan(source)
	if err != nil {
		return nil, err
	}

	// Parse screens tokens itself (reserved-word promotion, invalid-token
	// detection); screening here too would just redo that idempotent pass.
	tree, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// runStore executes a compiled ControlStore directly, bypassing Run's own
// call to Compile -- used by Interpret once it already holds a (possibly
// cached) ControlStore.
func runStore(store ControlStore) (result Value, printed bool, err error) {
	m := newMachine(store)
	if err := m.run(); err != nil {
		return nil, false, err
	}
	if len(m.stack) == 0 {
		return nil, false, internalErrorf("machine halted with an empty stack")
	}
	return m.stack[0], m.printed, nil
}
