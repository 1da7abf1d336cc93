package zen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/zenbridge/engine"
	"github.com/jonwraymond/zenbridge/engine/gojaengine"
	"github.com/jonwraymond/zenbridge/platform"
)

// Default configuration values.
const (
	DefaultSnippetsHook    = "zenSetUserSnippets"
	DefaultPreferencesHook = "zenSetUserPreferences"

	// LogBinding and FileBinding are the reserved global names of the
	// logging callback and the file helper.
	LogBinding  = "log"
	FileBinding = "zenFile"
)

// DefaultCoreFiles are loaded, in order, into every context.
var DefaultCoreFiles = []string{"zencoding.js", "go-wrapper.js"}

// Config holds the configuration for a Manager.
type Config struct {
	// BasePath is the install directory holding the core files and the
	// bindings root.
	// Required.
	BasePath string `yaml:"base_path"`

	// CoreFiles are the core script names, looked up first in the platform
	// binding directory, then in BasePath. Defaults to DefaultCoreFiles.
	CoreFiles []string `yaml:"core_files"`

	// Files are additional core scripts loaded after CoreFiles.
	Files []string `yaml:"files"`

	// ExtensionPath is the initial extension directory. Optional.
	ExtensionPath string `yaml:"extension_path"`

	// Platform overrides platform detection when set.
	Platform platform.ID `yaml:"platform"`

	// Contrib holds extra globals bound into every context. Values may be
	// plain data or Go functions.
	Contrib map[string]any `yaml:"contrib"`

	// SnippetsHook and PreferencesHook name the wrapper functions that
	// receive snippets and preferences.
	SnippetsHook    string `yaml:"snippets_hook"`
	PreferencesHook string `yaml:"preferences_hook"`

	// LogLevel and LogFormat build a stderr slog logger when Logger is nil
	// and LogLevel is set.
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Registry supplies engine factories. Defaults to a registry with the
	// goja binding registered for every platform.
	Registry *engine.Registry `yaml:"-"`

	// Logger is an optional logger for observability.
	Logger Logger `yaml:"-"`
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if the configuration is unusable.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("%w: missing required fields: BasePath", ErrConfiguration)
	}

	var reserved []string
	for name := range c.Contrib {
		if name == LogBinding || name == FileBinding || name == "" {
			reserved = append(reserved, fmt.Sprintf("%q", name))
		}
	}
	if len(reserved) > 0 {
		sort.Strings(reserved)
		return fmt.Errorf("%w: reserved contrib names: %s",
			ErrConfiguration, strings.Join(reserved, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() error {
	if len(c.CoreFiles) == 0 {
		c.CoreFiles = append([]string(nil), DefaultCoreFiles...)
	}
	if c.SnippetsHook == "" {
		c.SnippetsHook = DefaultSnippetsHook
	}
	if c.PreferencesHook == "" {
		c.PreferencesHook = DefaultPreferencesHook
	}
	if c.Registry == nil {
		reg := engine.NewRegistry()
		if err := gojaengine.Register(reg); err != nil {
			return err
		}
		c.Registry = reg
	}
	if c.Logger == nil && c.LogLevel != "" {
		c.Logger = NewLogger(c.LogLevel, c.LogFormat, os.Stderr)
	}
	return nil
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file. Relative BasePath and
// ExtensionPath values are resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.BasePath != "" && !filepath.IsAbs(cfg.BasePath) {
		cfg.BasePath = filepath.Join(dir, cfg.BasePath)
	}
	if cfg.ExtensionPath != "" && !filepath.IsAbs(cfg.ExtensionPath) && !strings.HasPrefix(cfg.ExtensionPath, "~") {
		cfg.ExtensionPath = filepath.Join(dir, cfg.ExtensionPath)
	}
	return cfg, nil
}
