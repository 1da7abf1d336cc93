package zen

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonwraymond/zenbridge/engine"
	"github.com/jonwraymond/zenbridge/extension"
	"github.com/jonwraymond/zenbridge/file"
	"github.com/jonwraymond/zenbridge/platform"
)

// Manager owns the script context running the zencoding core.
//
// Contract:
// - Concurrency: not safe for concurrent use.
// - Errors: construction failures are fatal; script failures propagate as engine.ScriptError.
// - Ownership: the Context returned by Context is invalidated by Reset, SetExtensionPath and Close.
type Manager struct {
	cfg        Config
	logger     Logger
	target     platform.Binding
	binding    engine.Binding
	searchPath *platform.SearchPath
	core       []engine.Source
	helper     *file.Helper

	ctx   engine.Context
	ctxID string

	extPath         string
	scripts         []extension.Script
	snippets        map[string]any
	preferences     map[string]any
	userSnippets    map[string]any
	userPreferences map[string]any

	closed bool
}

// New resolves the engine binding for the configured platform, reads the
// core sources and applies cfg.ExtensionPath.
// Returns ErrConfiguration, platform.ErrUnsupportedPlatform or
// engine.ErrEngineLoad on failure.
func New(cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	id := cfg.Platform
	if id == "" {
		id = platform.Detect()
	}
	target, err := platform.Resolve(id)
	if err != nil {
		logger.Error("platform not supported", "platform", id, "error", err)
		return nil, err
	}

	base, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: base path: %v", ErrConfiguration, err)
	}
	sp := platform.NewSearchPath()
	sp.Add(filepath.Join(base, filepath.FromSlash(target.Dir)))
	sp.Add(base)

	binding, err := cfg.Registry.Load(target.Name)
	if err != nil {
		logger.Error("engine binding failed to load", "binding", target.Name, "error", err)
		return nil, err
	}

	names := append(append([]string(nil), cfg.CoreFiles...), cfg.Files...)
	core, err := readCore(sp, target.Name, names)
	if err != nil {
		logger.Error("core sources failed to load", "binding", target.Name, "error", err)
		return nil, err
	}

	m := &Manager{
		cfg:        cfg,
		logger:     logger,
		target:     target,
		binding:    binding,
		searchPath: sp,
		core:       core,
		helper:     file.NewHelper(),
	}
	logger.Info("engine binding loaded",
		"platform", target.Platform,
		"binding", target.Name,
		"core_files", len(core))

	if cfg.ExtensionPath != "" {
		if err := m.SetExtensionPath(cfg.ExtensionPath); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func readCore(sp *platform.SearchPath, binding string, names []string) ([]engine.Source, error) {
	core := make([]engine.Source, 0, len(names))
	for _, name := range names {
		path, err := sp.Find(name)
		if err != nil {
			return nil, &engine.LoadError{Binding: binding, Err: fmt.Errorf("core file: %w", err)}
		}
		src, err := file.ReadText(path)
		if err != nil {
			return nil, &engine.LoadError{Binding: binding, Err: fmt.Errorf("core file: %w", err)}
		}
		core = append(core, engine.Source{Name: path, Code: src})
	}
	return core, nil
}

// Platform returns the resolved platform binding.
func (m *Manager) Platform() platform.Binding {
	return m.target
}

// SearchDirs returns the directories searched for core files.
func (m *Manager) SearchDirs() []string {
	return m.searchPath.Dirs()
}

// ExtensionPath returns the normalized extension directory, or "".
func (m *Manager) ExtensionPath() string {
	return m.extPath
}

// SetExtensionPath switches to the extension directory at path.
//
// The path is expanded ("~"), made absolute and cleaned. Setting the current
// path again does nothing. Otherwise the directory is scanned first; a scan
// error is returned with the previous context and data untouched. On
// success the live context is reset and the scanned scripts, snippets and
// preferences replace the previous ones. A path that is empty or not a
// directory records no extension data.
func (m *Manager) SetExtensionPath(path string) error {
	if m.closed {
		return ErrClosed
	}
	norm, err := normalizePath(path)
	if err != nil {
		return fmt.Errorf("%w: extension path: %v", ErrConfiguration, err)
	}
	if norm == m.extPath {
		return nil
	}

	bundle := &extension.Bundle{Dir: norm}
	if norm != "" && isDir(norm) {
		m.logger.Info("loading extensions", "path", norm)
		bundle, err = extension.Scan(norm)
		if err != nil {
			m.logger.Error("extension scan failed", "path", norm, "error", err)
			return err
		}
	}

	m.Reset()
	m.extPath = norm
	m.scripts = bundle.Scripts
	m.snippets = bundle.Snippets
	m.preferences = bundle.Preferences
	m.logger.Info("extension path set",
		"path", norm,
		"scripts", len(bundle.Scripts),
		"snippets", len(bundle.Snippets),
		"preferences", len(bundle.Preferences))
	return nil
}

// Context returns the active script context, creating it on first use.
//
// A new context has the core sources evaluated, the log callback, file
// helper and contributions bound, the extension scripts evaluated, and the
// snippets and preferences replayed through the wrapper hooks. If any step
// fails the partial context is closed and none becomes active.
func (m *Manager) Context() (engine.Context, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if m.ctx != nil {
		return m.ctx, nil
	}

	ctx, err := m.binding.NewContext(m.core...)
	if err != nil {
		m.logger.Error("script context creation failed", "error", err)
		return nil, err
	}
	id := uuid.NewString()
	if err := m.populate(ctx, id); err != nil {
		_ = ctx.Close()
		m.logger.Error("script context setup failed", "context", id, "error", err)
		return nil, err
	}

	m.ctx, m.ctxID = ctx, id
	m.logger.Info("script context created",
		"context", id,
		"binding", m.binding.Name(),
		"scripts", len(m.scripts))
	return ctx, nil
}

func (m *Manager) populate(ctx engine.Context, id string) error {
	for _, b := range m.globals(id) {
		if err := ctx.Set(b.name, b.value); err != nil {
			return fmt.Errorf("bind %s: %w", b.name, err)
		}
	}
	for _, s := range m.scripts {
		if _, err := ctx.EvalNamed(s.Path, s.Source); err != nil {
			return err
		}
	}
	if _, err := ctx.Call(m.cfg.SnippetsHook, orEmpty(m.snippets), orEmpty(m.userSnippets)); err != nil {
		return err
	}
	if _, err := ctx.Call(m.cfg.PreferencesHook, orEmpty(m.preferences), orEmpty(m.userPreferences)); err != nil {
		return err
	}
	return nil
}

type global struct {
	name  string
	value any
}

// globals returns the registration table for a new context: the reserved
// bindings first, then contributions sorted by name.
func (m *Manager) globals(id string) []global {
	out := []global{
		{LogBinding, m.scriptLog(id)},
		{FileBinding, m.helper},
	}
	names := make([]string, 0, len(m.cfg.Contrib))
	for name := range m.cfg.Contrib {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, global{name, m.cfg.Contrib[name]})
	}
	return out
}

func (m *Manager) scriptLog(id string) func(args ...any) {
	return func(args ...any) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		m.logger.Info(strings.Join(parts, " "), "source", "script", "context", id)
	}
}

// ContextID returns the id of the active context, or "" when none is active.
func (m *Manager) ContextID() string {
	return m.ctxID
}

// Eval evaluates source in the active context.
func (m *Manager) Eval(source string) (any, error) {
	ctx, err := m.Context()
	if err != nil {
		return nil, err
	}
	return ctx.Eval(source)
}

// EvalFile reads the file at path and evaluates it in the active context.
func (m *Manager) EvalFile(path string) (any, error) {
	src, err := file.ReadText(path)
	if err != nil {
		return nil, err
	}
	ctx, err := m.Context()
	if err != nil {
		return nil, err
	}
	return ctx.EvalNamed(path, src)
}

// Call invokes the global function name in the active context.
func (m *Manager) Call(name string, args ...any) (any, error) {
	ctx, err := m.Context()
	if err != nil {
		return nil, err
	}
	return ctx.Call(name, args...)
}

// SetSnippets pushes user snippets, alongside the extension snippets, into
// the active context. They are replayed whenever the context is rebuilt.
func (m *Manager) SetSnippets(user map[string]any) error {
	return m.push(m.cfg.SnippetsHook, &m.userSnippets, m.snippets, user)
}

// SetPreferences pushes user preferences, alongside the extension
// preferences, into the active context. They are replayed whenever the
// context is rebuilt.
func (m *Manager) SetPreferences(user map[string]any) error {
	return m.push(m.cfg.PreferencesHook, &m.userPreferences, m.preferences, user)
}

func (m *Manager) push(hook string, slot *map[string]any, ext, user map[string]any) error {
	if m.closed {
		return ErrClosed
	}
	*slot = maps.Clone(user)
	if m.ctx == nil {
		// A new context replays the stored values.
		_, err := m.Context()
		return err
	}
	_, err := m.ctx.Call(hook, orEmpty(ext), orEmpty(*slot))
	return err
}

// Snippets returns a copy of the extension snippets.
func (m *Manager) Snippets() map[string]any {
	return maps.Clone(m.snippets)
}

// Preferences returns a copy of the extension preferences.
func (m *Manager) Preferences() map[string]any {
	return maps.Clone(m.preferences)
}

// Reset tears down the active context, if any. The next call needing a
// context creates a new one.
func (m *Manager) Reset() {
	if m.ctx == nil {
		return
	}
	if err := m.ctx.Close(); err != nil {
		m.logger.Warn("script context close failed", "context", m.ctxID, "error", err)
	}
	m.logger.Info("script context reset", "context", m.ctxID)
	m.ctx, m.ctxID = nil, ""
}

// Close resets the Manager and rejects further use.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.Reset()
	m.closed = true
	return nil
}

func normalizePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// orEmpty returns a shallow copy of m so scripts cannot mutate stored data.
func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m)
}
