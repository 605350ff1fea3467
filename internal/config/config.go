// Package config loads rolodex settings from config.yaml in the config
// directory, then overlays ROLODEX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the settings file inside the config directory.
	FileName = "config.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ROLODEX_"
)

// Keys in config.yaml.
const (
	KeyBackend     = "backend"
	KeyDataDir     = "data_dir"
	KeyDSN         = "dsn"
	KeyRedisAddr   = "redis_addr"
	KeyRedisPrefix = "redis_prefix"
	KeyLogLevel    = "log_level"
	KeyMetricsFile = "metrics_file"
	KeyLocale      = "locale"
)

// Defaults.
const (
	DefaultBackend  = types.BackendSQLite
	DefaultLogLevel = "warn"
)

// Settings is the merged configuration. DataDir has no environment
// override here; paths.ResolveDataDir applies ROLODEX_DATA_DIR with its own
// precedence.
type Settings struct {
	Backend     string `yaml:"backend" env:"BACKEND"`
	DataDir     string `yaml:"data_dir,omitempty"`
	DSN         string `yaml:"dsn,omitempty" env:"DSN"`
	RedisAddr   string `yaml:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPrefix string `yaml:"redis_prefix,omitempty" env:"REDIS_PREFIX"`
	LogLevel    string `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	MetricsFile string `yaml:"metrics_file,omitempty" env:"METRICS_FILE"`
	Locale      string `yaml:"locale,omitempty" env:"LOCALE"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{Backend: DefaultBackend, LogLevel: DefaultLogLevel}
}

// Load reads config.yaml from configDir and applies environment overrides.
// A missing directory or file is not an error.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Backend:     v.GetString(KeyBackend),
		DataDir:     v.GetString(KeyDataDir),
		DSN:         v.GetString(KeyDSN),
		RedisAddr:   v.GetString(KeyRedisAddr),
		RedisPrefix: v.GetString(KeyRedisPrefix),
		LogLevel:    v.GetString(KeyLogLevel),
		MetricsFile: v.GetString(KeyMetricsFile),
		Locale:      v.GetString(KeyLocale),
	}
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// KV returns the backend configuration for the resolved data directory.
func (s Settings) KV(dataDir string) types.Config {
	return types.Config{
		Backend:     s.Backend,
		DataDir:     dataDir,
		DSN:         s.DSN,
		RedisAddr:   s.RedisAddr,
		RedisPrefix: s.RedisPrefix,
	}
}

// WriteDefault creates configDir and writes s to config.yaml unless the file
// already exists. It reports whether a file was written.
func WriteDefault(configDir string, s Settings) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
