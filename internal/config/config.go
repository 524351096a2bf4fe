// Package config loads the a11ytree configuration.
//
// The file lives at $XDG_CONFIG_HOME/a11ytree/config.yaml (usually
// ~/.config/a11ytree/config.yaml); A11YTREE_CONFIG points elsewhere.
// A11YTREE_SOURCE overrides the configured source.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"a11ytree/internal/application"
	"a11ytree/internal/logger"
)

const DefaultSource = "."

// LogConfig controls the file logger
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"`
	Level   string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Config is the top-level configuration.
type Config struct {
	Source          string            `yaml:"source,omitempty"`
	Database        string            `yaml:"database,omitempty"` // tree store used by import
	InsertToggle    bool              `yaml:"insert_toggle"`
	ToggleMarker    string            `yaml:"toggle_marker,omitempty"`
	FocusOnCollapse bool              `yaml:"focus_on_collapse"`
	Watch           bool              `yaml:"watch"`
	Editor          string            `yaml:"editor,omitempty"`
	Keys            map[string]string `yaml:"keys,omitempty"` // key -> command, "" unbinds
	Log             LogConfig         `yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source:          DefaultSource,
		InsertToggle:    true,
		FocusOnCollapse: true,
		Watch:           true,
		Keys:            make(map[string]string),
		Log:             LogConfig{Level: "info"},
	}
}

// ConfigDir returns the XDG config directory for a11ytree.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "a11ytree")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "a11ytree")
}

// ConfigPath returns the config file path, honouring A11YTREE_CONFIG.
func ConfigPath() string {
	if env := os.Getenv("A11YTREE_CONFIG"); env != "" {
		return expandHome(env)
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		applyEnv(&cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.Keys == nil {
		cfg.Keys = make(map[string]string)
	}
	applyEnv(&cfg)

	cfg.Source = expandHome(cfg.Source)
	cfg.Database = expandHome(cfg.Database)
	cfg.Log.Dir = expandHome(cfg.Log.Dir)

	if _, err := cfg.KeyMap(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := os.Getenv("A11YTREE_SOURCE"); env != "" {
		cfg.Source = env
	}
}

// KeyMap returns the default bindings with the configured keys applied
func (c Config) KeyMap() (application.KeyMap, error) {
	return application.DefaultKeyMap().Merge(c.Keys)
}

// EngineOptions returns the renderer options set in the config
func (c Config) EngineOptions() []application.Option {
	return []application.Option{
		application.WithInsertToggle(c.InsertToggle),
		application.WithToggleMarker(c.ToggleMarker),
	}
}

// LoggerOptions converts the log section for logger.Init. Each binary
// passes its own program name so their daily files stay apart.
func (c Config) LoggerOptions(program string) logger.Options {
	return logger.Options{
		Enabled: c.Log.Enabled,
		LogDir:  c.Log.Dir,
		Level:   logger.ParseLevel(c.Log.Level),
		Program: program,
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
