// Package engine defines the embedded JavaScript engine abstraction used by
// the zen context manager.
//
// # Architecture
//
// The package separates two lifetimes:
//
//   - [Binding]: the loaded engine library for a platform. It is resolved
//     once, at startup, through a [Registry] of [Factory] functions keyed by
//     binding name (see package platform).
//
//   - [Context]: one execution context created from a Binding. Core sources
//     passed to [Binding.NewContext] are evaluated before the context is
//     returned, so a context can be thrown away and rebuilt cheaply.
//
// # Errors
//
// Loading failures are reported as [LoadError] and match [ErrEngineLoad].
// Script failures are reported as [ScriptError] and match
// [ErrScriptEvaluation]; the engine's own message is kept verbatim.
package engine
