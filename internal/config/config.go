// Package config loads mathplay settings from defaults, an optional YAML
// file and MATHPLAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB string `mapstructure:"db"`

	// StorageKey is the key of the progress document.
	StorageKey string `mapstructure:"storage_key"`

	// Seed makes question streams reproducible. 0 picks a random seed.
	Seed int64 `mapstructure:"seed"`

	// Timer enables per-question deadlines.
	Timer bool `mapstructure:"timer"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// File is the log destination. Empty means store.DefaultLogPath;
	// "-" means stderr.
	File string `mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StorageKey: "mathplay-progress-v1",
		Timer:      true,
		Log:        LogConfig{Level: "info"},
	}
}

var envBindings = map[string]string{
	"db":          "MATHPLAY_DB",
	"storage_key": "MATHPLAY_STORAGE_KEY",
	"seed":        "MATHPLAY_SEED",
	"timer":       "MATHPLAY_TIMER",
	"log.level":   "MATHPLAY_LOG_LEVEL",
	"log.file":    "MATHPLAY_LOG_FILE",
}

// Load reads configuration. An explicit path must exist and parse; without
// one, $XDG_CONFIG_HOME/mathplay/config.yaml is read if present.
func Load(path string) (*Config, error) {
	vip := viper.New()

	def := DefaultConfig()
	vip.SetDefault("storage_key", def.StorageKey)
	vip.SetDefault("timer", def.Timer)
	vip.SetDefault("log.level", def.Log.Level)
	vip.SetDefault("db", "")
	vip.SetDefault("seed", 0)
	vip.SetDefault("log.file", "")

	for key, env := range envBindings {
		if err := vip.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := defaultConfigDir(); err == nil {
		vip.SetConfigName("config")
		vip.SetConfigType("yaml")
		vip.AddConfigPath(dir)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be caught by decoding.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("storage_key must not be empty")
	}
	return nil
}

// SlogLevel returns the configured level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	l, err := ParseLevel(c.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: want debug, info, warn or error", s)
	}
	return l, nil
}

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mathplay"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "mathplay"), nil
}
