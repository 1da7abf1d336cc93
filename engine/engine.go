package engine

// Source is a named piece of JavaScript source.
type Source struct {
	// Name identifies the source in error messages, usually a file path.
	Name string

	// Code is the JavaScript source text.
	Code string
}

// Binding is a loaded engine library able to create execution contexts.
//
// Contract:
// - Concurrency: NewContext may be called from one goroutine at a time.
// - Errors: failures evaluating core sources return ScriptError.
// - Ownership: the returned Context is owned by the caller, who must Close it.
type Binding interface {
	// Name returns the binding name the factory was registered under.
	Name() string

	// NewContext creates a fresh context and evaluates core in order.
	NewContext(core ...Source) (Context, error)
}

// Context is a single JavaScript execution context.
//
// Contract:
// - Concurrency: not safe for concurrent use; calls are synchronous.
// - Errors: evaluation failures return ScriptError wrapping the engine error.
// - Ownership: values passed to Set are shared with the script, not copied.
// - Nil/zero: Get of an undefined global reports false.
type Context interface {
	// Eval evaluates source and returns its completion value exported to Go.
	Eval(source string) (any, error)

	// EvalNamed evaluates source, using name in error locations.
	EvalNamed(name, source string) (any, error)

	// Set binds value to a global name. Go functions become callable and
	// struct pointers expose their exported methods.
	Set(name string, value any) error

	// Get returns the exported value of a global.
	Get(name string) (any, bool)

	// Call invokes the global function name with args.
	Call(name string, args ...any) (any, error)

	// Close releases the context. Further calls return ErrContextClosed.
	Close() error
}

// Factory creates a binding instance.
type Factory func() (Binding, error)

// ProbeSource is evaluated by Probe to check that a binding can run code.
const ProbeSource = `(function(){return;})()`

// Probe creates a throwaway context on b and evaluates ProbeSource.
func Probe(b Binding) error {
	ctx, err := b.NewContext()
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()
	_, err = ctx.Eval(ProbeSource)
	return err
}
