package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SearchPath is an ordered list of directories searched for script files.
// Each cleaned directory appears at most once.
//
// Contract:
// - Concurrency: not safe for concurrent mutation.
// - Ownership: Dirs returns a copy.
type SearchPath struct {
	dirs []string
	seen map[string]struct{}
}

// NewSearchPath returns an empty search path.
func NewSearchPath() *SearchPath {
	return &SearchPath{seen: make(map[string]struct{})}
}

// Add appends dir unless an equal path was already added.
// It reports whether dir was appended.
func (s *SearchPath) Add(dir string) bool {
	if dir == "" {
		return false
	}
	dir = filepath.Clean(dir)
	if _, ok := s.seen[dir]; ok {
		return false
	}
	s.seen[dir] = struct{}{}
	s.dirs = append(s.dirs, dir)
	return true
}

// Dirs returns the directories in search order.
func (s *SearchPath) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Find returns the first dir/name that exists as a regular file.
// Absolute names are returned as-is when they exist.
func (s *SearchPath) Find(name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return filepath.Clean(name), nil
		}
		return "", &fs.PathError{Op: "find", Path: name, Err: fs.ErrNotExist}
	}
	for _, dir := range s.dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", &fs.PathError{
		Op:   "find",
		Path: name,
		Err:  fmt.Errorf("%w in %d search dirs", fs.ErrNotExist, len(s.dirs)),
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
