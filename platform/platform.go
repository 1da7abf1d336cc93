package platform

import (
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
)

// ErrUnsupportedPlatform is returned when no engine binding exists for the
// requested platform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// BindingRoot is the directory, relative to an install base, that holds one
// subdirectory per platform binding.
const BindingRoot = "bindings"

// ID identifies an operating system family as the bindings are built.
type ID string

// Supported platform identifiers.
const (
	Darwin    ID = "Darwin"
	Linux     ID = "Linux"
	Windows   ID = "Windows"
	Windows64 ID = "Windows64"
)

var bindingNames = map[ID]string{
	Darwin:    "osx",
	Linux:     "linux",
	Windows:   "win32",
	Windows64: "win64",
}

// Binding describes where the engine binding for a platform lives.
type Binding struct {
	// Platform is the identifier the binding was resolved from.
	Platform ID

	// Name is the binding subdirectory name (e.g. "osx", "win64").
	// Engine factories are registered under this name.
	Name string

	// Dir is the slash-separated directory relative to the install base.
	Dir string
}

// UnsupportedPlatformError reports a platform with no engine binding.
type UnsupportedPlatformError struct {
	Platform ID
}

// Error returns the error message.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s: no engine binding built for %q", ErrUnsupportedPlatform, string(e.Platform))
}

// Is reports whether target is ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// Detect returns the identifier of the running platform.
func Detect() ID {
	return FromGOOS(runtime.GOOS, runtime.GOARCH)
}

// FromGOOS maps a GOOS/GOARCH pair to a platform identifier. Windows on a
// 64-bit architecture maps to Windows64. Unknown systems are returned
// verbatim so that Resolve can report them.
func FromGOOS(goos, goarch string) ID {
	switch goos {
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	case "windows":
		if is64Bit(goarch) {
			return Windows64
		}
		return Windows
	default:
		return ID(goos)
	}
}

func is64Bit(goarch string) bool {
	switch goarch {
	case "amd64", "arm64", "ppc64", "ppc64le", "mips64", "mips64le", "riscv64", "s390x", "loong64":
		return true
	}
	return false
}

// Resolve returns the binding for id.
// Returns *UnsupportedPlatformError if no binding is built for id.
func Resolve(id ID) (Binding, error) {
	name, ok := bindingNames[id]
	if !ok {
		return Binding{}, &UnsupportedPlatformError{Platform: id}
	}
	return Binding{
		Platform: id,
		Name:     name,
		Dir:      path.Join(BindingRoot, name),
	}, nil
}

// Supported returns the supported identifiers sorted for deterministic output.
func Supported() []ID {
	out := make([]ID, 0, len(bindingNames))
	for id := range bindingNames {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BindingNames returns every binding subdirectory name, sorted.
func BindingNames() []string {
	out := make([]string, 0, len(bindingNames))
	for _, name := range bindingNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
