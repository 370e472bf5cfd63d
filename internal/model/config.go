package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appDirName = "project-tracker"

// Default values applied when neither the config file, the environment nor
// a flag sets a key.
const (
	DefaultLocale   = "es"
	DefaultLogLevel = "info"
)

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Locale selects the message catalog ("es", "en", ...).
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// LogConfig controls the structured logger. An empty File disables logging,
// since the terminal itself is owned by the UI.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db":        "database.path",
	"locale":    "display.locale",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/project-tracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", appDirName, "config.yaml")
}

// DefaultDatabasePath returns ~/.local/share/project-tracker/tracker.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tracker.db")
	}
	return filepath.Join(home, ".local", "share", appDirName, "tracker.db")
}

// DefaultLogPath returns ~/.local/state/project-tracker/tracker.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tracker.log")
	}
	return filepath.Join(home, ".local", "state", appDirName, "tracker.log")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		Display:  DisplayConfig{Locale: DefaultLocale},
		Log:      LogConfig{Level: DefaultLogLevel, File: DefaultLogPath()},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error: defaults apply. Values are resolved in the
// order flags (when set), TRACKER_* environment variables, file, defaults.
// flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("display.locale", def.Display.Locale)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Display.Locale) == "" {
		cfg.Display.Locale = DefaultLocale
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
