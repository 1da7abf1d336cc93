// Package platform resolves the running operating system to the engine
// binding built for it.
//
// Every supported platform has a binding subdirectory under the bindings
// root of an install (for example bindings/osx). Resolution is a pure
// lookup: [Detect] reports the current [ID] and [Resolve] maps an ID to its
// [Binding], failing with [ErrUnsupportedPlatform] when nothing was built
// for it.
//
// # Search Path
//
// [SearchPath] is an ordered, duplicate-free list of directories used to
// locate core script files. Callers add the platform binding directory
// before the install root so platform-specific files take precedence:
//
//	sp := platform.NewSearchPath()
//	sp.Add(filepath.Join(base, b.Dir))
//	sp.Add(base)
//	path, err := sp.Find("zencoding.js")
package platform
