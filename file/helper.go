package file

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Helper gives scripts access to the host file system.
//
// Contract:
// - Errors: methods returning error raise a script exception on failure.
// - Nil/zero: a zero Helper is ready to use.
type Helper struct{}

// NewHelper returns a Helper.
func NewHelper() *Helper {
	return &Helper{}
}

// Read returns the decoded contents of path. When size is positive at most
// size bytes are read, minus any character the limit cuts in half.
func (h *Helper) Read(path string, size int) (string, error) {
	if size <= 0 {
		return ReadText(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(size)))
	if err != nil {
		return "", err
	}
	if len(buf) == size {
		buf = trimPartial(buf)
	}
	text, _, err := Decode(buf)
	return text, err
}

// trimPartial drops a trailing incomplete character left by a byte limit.
func trimPartial(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		data = data[:len(data)&^1]
		if n := len(data); n >= 4 {
			u := uint16(data[n-2])<<8 | uint16(data[n-1])
			if data[0] == 0xFF {
				u = uint16(data[n-1])<<8 | uint16(data[n-2])
			}
			if u >= 0xD800 && u < 0xDC00 {
				data = data[:n-2]
			}
		}
		return data
	case utf8.Valid(data):
		return data
	}

	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if !utf8.FullRune(data[i:]) && utf8.Valid(data[:i]) {
			return data[:i]
		}
		break
	}
	return data
}

// LocateFile finds fileName relative to the file being edited. A name
// starting with a slash or backslash is looked up in every ancestor
// directory of editorFile, nearest first; other names are resolved against
// editorFile's directory.
// It returns "" when nothing exists.
func (h *Helper) LocateFile(editorFile, fileName string) string {
	if editorFile == "" || fileName == "" {
		return ""
	}

	if !strings.HasPrefix(fileName, "/") && !strings.HasPrefix(fileName, `\`) {
		candidate := h.CreatePath(editorFile, fileName)
		if exists(candidate) {
			return candidate
		}
		return ""
	}

	prev := ""
	parent := filepath.Dir(editorFile)
	for parent != "" && parent != prev && exists(parent) {
		candidate := filepath.Join(parent, strings.TrimLeft(fileName, `/\`))
		if exists(candidate) {
			return candidate
		}
		prev = parent
		parent = filepath.Dir(parent)
	}
	return ""
}

// CreatePath joins fileName onto parent. When parent is an existing file its
// directory is used instead.
func (h *Helper) CreatePath(parent, fileName string) string {
	if info, err := os.Stat(parent); err == nil && !info.IsDir() {
		parent = filepath.Dir(parent)
	}
	return filepath.Join(parent, fileName)
}

// Save writes content to path, creating parent directories as needed.
func (h *Helper) Save(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// GetExt returns the lower-case extension of path without the dot.
func (h *Helper) GetExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
