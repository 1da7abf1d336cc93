package engine

import (
	"errors"
	"sync"
)

// mockBinding implements Binding for testing.
type mockBinding struct {
	mu sync.Mutex

	name       string
	newErr     error
	evalErr    error
	newCalls   int
	lastCore   []Source
	closeCalls int
}

func (m *mockBinding) Name() string { return m.name }

func (m *mockBinding) NewContext(core ...Source) (Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newCalls++
	m.lastCore = append([]Source(nil), core...)
	if m.newErr != nil {
		return nil, m.newErr
	}
	return &mockContext{binding: m, evalErr: m.evalErr, globals: map[string]any{}}, nil
}

// mockContext implements Context for testing.
type mockContext struct {
	binding *mockBinding
	evalErr error
	globals map[string]any
	evals   []string
	closed  bool
}

func (c *mockContext) Eval(source string) (any, error) {
	return c.EvalNamed("", source)
}

func (c *mockContext) EvalNamed(_, source string) (any, error) {
	if c.closed {
		return nil, ErrContextClosed
	}
	c.evals = append(c.evals, source)
	if c.evalErr != nil {
		return nil, c.evalErr
	}
	return nil, nil
}

func (c *mockContext) Set(name string, value any) error {
	c.globals[name] = value
	return nil
}

func (c *mockContext) Get(name string) (any, bool) {
	v, ok := c.globals[name]
	return v, ok
}

func (c *mockContext) Call(name string, _ ...any) (any, error) {
	if _, ok := c.globals[name]; !ok {
		return nil, &ScriptError{Message: name + " is not a function"}
	}
	return nil, nil
}

func (c *mockContext) Close() error {
	if c.closed {
		return ErrContextClosed
	}
	c.closed = true
	c.binding.mu.Lock()
	c.binding.closeCalls++
	c.binding.mu.Unlock()
	return nil
}

var errBoom = errors.New("boom")
