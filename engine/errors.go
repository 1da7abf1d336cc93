package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrEngineLoad indicates the engine binding is missing or broken.
	ErrEngineLoad = errors.New("engine load error")

	// ErrScriptEvaluation indicates a failure raised while running script
	// code, such as a syntax error or an uncaught exception.
	ErrScriptEvaluation = errors.New("script evaluation error")

	// ErrNotCallable is wrapped by the ScriptError returned when Call names a
	// global that is not a function.
	ErrNotCallable = errors.New("not a function")

	// ErrContextClosed is returned by operations on a closed Context.
	ErrContextClosed = errors.New("context closed")
)

// LoadError reports a binding that could not be loaded.
type LoadError struct {
	// Binding is the binding name that failed.
	Binding string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: binding %q: %v", ErrEngineLoad, e.Binding, e.Err)
	}
	return fmt.Sprintf("%s: binding %q", ErrEngineLoad, e.Binding)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEngineLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrEngineLoad
}

// ScriptError represents an error raised by the engine while running script
// code. Message is the engine's message, unchanged.
type ScriptError struct {
	// Message describes the error as reported by the engine.
	Message string

	// Source names the evaluated source, if known.
	Source string

	// Stack is the engine's stack trace text, if available.
	Stack string

	// Err is the underlying engine error.
	Err error
}

// Error returns the error message, including the source name if available.
func (e *ScriptError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// ScriptError matches ErrScriptEvaluation to allow sentinel-style checking.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScriptEvaluation
}
