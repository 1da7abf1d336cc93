package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/zenbridge/file"
)

// Recognised file names, lower case.
const (
	SnippetsFile    = "snippets.json"
	PreferencesFile = "preferences.json"
	ScriptExt       = ".js"
)

// ErrJSONParse indicates a snippets or preferences file is not a JSON object.
var ErrJSONParse = errors.New("json parse error")

// ParseError reports a malformed snippets or preferences file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Offset is the byte offset of the syntax error, or zero if unknown.
	Offset int64

	// Err is the underlying decoder error.
	Err error
}

// Error returns the error message, including the offset if known.
func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: %s (offset %d): %v", ErrJSONParse, e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrJSONParse, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrJSONParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrJSONParse
}

// Script is an extension JavaScript file.
type Script struct {
	Path   string
	Source string
}

// Bundle is the result of scanning an extension directory.
type Bundle struct {
	// Dir is the scanned directory.
	Dir string

	// Scripts are the .js files in walk order.
	Scripts []Script

	// Snippets is the decoded snippets.json, or nil if absent.
	Snippets map[string]any

	// Preferences is the decoded preferences.json, or nil if absent.
	Preferences map[string]any
}

// Scan walks dir and loads every recognised file.
// When several snippets.json or preferences.json files exist, the last one
// in walk order wins.
func Scan(dir string) (*Bundle, error) {
	b := &Bundle{Dir: dir}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := strings.ToLower(d.Name())
		switch {
		case filepath.Ext(name) == ScriptExt:
			src, err := file.ReadText(path)
			if err != nil {
				return err
			}
			b.Scripts = append(b.Scripts, Script{Path: path, Source: src})
		case name == SnippetsFile:
			m, err := readObject(path)
			if err != nil {
				return err
			}
			b.Snippets = m
		case name == PreferencesFile:
			m, err := readObject(path)
			if err != nil {
				return err
			}
			b.Preferences = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func readObject(path string) (map[string]any, error) {
	text, err := file.ReadText(path)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			pe.Offset = syn.Offset
		}
		var typ *json.UnmarshalTypeError
		if errors.As(err, &typ) {
			pe.Offset = typ.Offset
		}
		return nil, pe
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
