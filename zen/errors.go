package zen

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("manager closed")
)
