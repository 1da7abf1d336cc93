// Package extension scans a user extension directory.
//
// A directory is walked recursively in lexical order. Names are matched
// case-insensitively:
//
//   - *.js: collected as a [Script] to evaluate in the script context
//   - snippets.json: decoded into [Bundle].Snippets
//   - preferences.json: decoded into [Bundle].Preferences
//
// Everything else is ignored. Malformed JSON fails the whole scan with a
// [ParseError] matching [ErrJSONParse], so callers can keep their previous
// state intact.
package extension
