package zen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonwraymond/zenbridge/platform"
)

const testCore = `var zen_coding = { snippets: {}, preferences: {}, calls: 0 };`

const testWrapper = `function zenSetUserSnippets(ext, user) {
	zen_coding.calls++;
	zen_coding.snippets = {};
	for (var k in ext) zen_coding.snippets[k] = ext[k];
	for (var k in user) zen_coding.snippets[k] = user[k];
}
function zenSetUserPreferences(ext, user) {
	zen_coding.preferences = {};
	for (var k in ext) zen_coding.preferences[k] = ext[k];
	for (var k in user) zen_coding.preferences[k] = user[k];
}
function expandAbbreviation(abbr) {
	return zen_coding.snippets[abbr] || abbr;
}`

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newBase returns an install directory holding the default core files.
func newBase(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "zencoding.js"), testCore)
	writeFile(t, filepath.Join(base, "go-wrapper.js"), testWrapper)
	return base
}

// newExtDir returns an extension directory with the given files.
func newExtDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

// newManager creates a Manager on a fresh base for the Linux binding.
func newManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	if cfg.BasePath == "" {
		cfg.BasePath = newBase(t)
	}
	if cfg.Platform == "" {
		cfg.Platform = platform.Linux
	}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// evalString evaluates source and requires a string result.
func evalString(t *testing.T, m *Manager, source string) string {
	t.Helper()
	v, err := m.Eval(source)
	if err != nil {
		t.Fatalf("Eval(%q) error = %v", source, err)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("Eval(%q) = %#v, want string", source, v)
	}
	return s
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger implements Logger for testing.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func (l *recordingLogger) has(level, msg string) bool {
	for _, m := range l.messages(level) {
		if m == msg {
			return true
		}
	}
	return false
}

func (l *recordingLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fmt.Sprint(l.entries)
}
