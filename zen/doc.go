// Package zen manages the embedded script context that runs the zencoding
// JavaScript core.
//
// zen sits on top of platform, engine and extension: it resolves the engine
// binding for the running platform, loads the core sources once, and owns a
// single execution context that is created lazily and thrown away whenever
// the extension directory changes.
//
// # Lifecycle
//
//	m, err := zen.New(zen.Config{BasePath: "/opt/zen", ExtensionPath: "~/.zen"})
//	if err != nil {
//	    return err // unsupported platform, missing binding or core file
//	}
//	defer m.Close()
//
//	out, err := m.Call("expandAbbreviation", "ul>li*3", "html")
//
// [Manager.SetExtensionPath] scans the new directory before touching the
// live context. A failed scan (for example [extension.ErrJSONParse]) leaves
// the previous context and data in place.
//
// # Script Globals
//
// Every context gets, before extension scripts run:
//
//   - log(...): forwards messages to the configured [Logger]
//   - zenFile: a [file.Helper] for host file access
//   - each entry of [Config].Contrib
//
// Snippets and preferences are then pushed through the wrapper hooks named
// by [Config].SnippetsHook and [Config].PreferencesHook, called as
// hook(extensionData, userOverrides).
//
// # Concurrency
//
// A Manager is single-threaded. All calls are synchronous and must not be
// made concurrently.
package zen
