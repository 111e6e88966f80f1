// Package config loads tool configuration from a TOML file with
// environment-variable overrides. Every setting has a working default so a
// fresh install runs with no config file at all.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"proflow/core/errors"
	"proflow/internal/logging"
)

// EnvPrefix namespaces the override variables.
const EnvPrefix = "PROFLOW_"

// Config is the tool configuration.
type Config struct {
	// LibraryPath is the presentation library directory documents are
	// generated into and indexed from.
	LibraryPath string `toml:"library_path"`
	// TemplatePath is searched for template skeletons before the library
	// directory itself.
	TemplatePath string `toml:"template_path"`
	// BibleDataPath holds the per-translation JSON data files.
	BibleDataPath string `toml:"bible_data_path"`
	// Translation is the default translation for scripture generation.
	Translation string `toml:"translation"`

	Log LogConfig `toml:"log"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "proflow", "config.toml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LibraryPath:   detectLibraryPath(),
		BibleDataPath: filepath.Join(dataHome(), "proflow", "bibles"),
		Translation:   "ESV",
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration: defaults, then the TOML file (the given path
// or DefaultPath; a missing file is fine), then PROFLOW_* environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(raw, &cfg); err != nil {
				return cfg, &errors.ParseError{Format: "config", Path: path, Offset: -1,
					Message: "bad TOML", Err: err}
			}
			logging.Debug("config loaded", "path", path)
		case os.IsNotExist(err):
			// Defaults only.
		default:
			return cfg, errors.NewIO("read", path, err)
		}
	}

	applyEnv(&cfg)
	if cfg.TemplatePath == "" {
		cfg.TemplatePath = cfg.LibraryPath
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	set("LIBRARY_PATH", &cfg.LibraryPath)
	set("TEMPLATE_PATH", &cfg.TemplatePath)
	set("BIBLE_DATA_PATH", &cfg.BibleDataPath)
	set("TRANSLATION", &cfg.Translation)
	set("LOG_LEVEL", &cfg.Log.Level)
	set("LOG_FORMAT", &cfg.Log.Format)
}

// detectLibraryPath guesses the presentation library location for the
// current platform. The result is a guess; config or env can always
// override it.
func detectLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	switch runtime.GOOS {
	case "darwin", "windows":
		return filepath.Join(home, "Documents", "ProPresenter", "Libraries", "Default")
	default:
		return filepath.Join(home, ".local", "share", "proflow", "library")
	}
}

func dataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// LogLevel maps the configured level to the logging package's type.
func (c Config) LogLevel() logging.Level {
	switch c.Log.Level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// LogFormat maps the configured format to the logging package's type.
func (c Config) LogFormat() logging.Format {
	if c.Log.Format == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}
