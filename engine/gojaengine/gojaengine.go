// Package gojaengine provides an engine binding backed by goja, a pure Go
// ECMAScript 5.1 implementation. Because goja needs no native library, one
// factory serves every platform binding name.
package gojaengine

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/jonwraymond/zenbridge/engine"
	"github.com/jonwraymond/zenbridge/platform"
)

// Binding creates goja-backed contexts.
type Binding struct {
	name string
}

// New returns a binding that reports name from Name.
func New(name string) *Binding {
	return &Binding{name: name}
}

// Factory returns an engine.Factory producing a binding named name.
func Factory(name string) engine.Factory {
	return func() (engine.Binding, error) {
		return New(name), nil
	}
}

// Register adds the goja factory to reg under each of names, or under every
// platform binding name when names is empty.
func Register(reg *engine.Registry, names ...string) error {
	if len(names) == 0 {
		names = platform.BindingNames()
	}
	for _, name := range names {
		if err := reg.Register(name, Factory(name)); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the binding name.
func (b *Binding) Name() string {
	return b.name
}

// NewContext creates a goja runtime and evaluates core in order.
// Go struct methods and fields are exposed with lower-camel names.
func (b *Binding) NewContext(core ...engine.Source) (engine.Context, error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	c := &Context{vm: vm}
	for _, src := range core {
		if _, err := c.EvalNamed(src.Name, src.Code); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

// Context is a goja runtime implementing engine.Context.
type Context struct {
	vm *goja.Runtime
}

// Eval evaluates source.
func (c *Context) Eval(source string) (any, error) {
	return c.EvalNamed("", source)
}

// EvalNamed evaluates source as the script name.
func (c *Context) EvalNamed(name, source string) (any, error) {
	if c.vm == nil {
		return nil, engine.ErrContextClosed
	}
	v, err := c.vm.RunScript(name, source)
	if err != nil {
		return nil, scriptError(name, err)
	}
	return export(v), nil
}

// Set binds value to the global name.
func (c *Context) Set(name string, value any) error {
	if c.vm == nil {
		return engine.ErrContextClosed
	}
	return c.vm.Set(name, value)
}

// Get returns the exported global name.
func (c *Context) Get(name string) (any, bool) {
	if c.vm == nil {
		return nil, false
	}
	v := c.vm.Get(name)
	if v == nil || goja.IsUndefined(v) {
		return nil, false
	}
	return export(v), true
}

// Call invokes the global function name. When name is not a function the
// TypeError message is built by the host and the error wraps
// engine.ErrNotCallable.
func (c *Context) Call(name string, args ...any) (any, error) {
	if c.vm == nil {
		return nil, engine.ErrContextClosed
	}
	fn, ok := goja.AssertFunction(c.vm.Get(name))
	if !ok {
		return nil, &engine.ScriptError{
			Message: fmt.Sprintf("TypeError: %s is not a function", name),
			Source:  name,
			Err:     engine.ErrNotCallable,
		}
	}

	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = c.vm.ToValue(a)
	}
	res, err := fn(goja.Undefined(), vals...)
	if err != nil {
		return nil, scriptError(name, err)
	}
	return export(res), nil
}

// Close interrupts any running script and drops the runtime.
func (c *Context) Close() error {
	if c.vm == nil {
		return engine.ErrContextClosed
	}
	c.vm.Interrupt("context closed")
	c.vm = nil
	return nil
}

func export(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

func scriptError(name string, err error) error {
	se := &engine.ScriptError{Message: err.Error(), Source: name, Err: err}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		if v := exc.Value(); v != nil {
			se.Message = v.String()
		}
		se.Stack = exc.String()
	}
	return se
}
