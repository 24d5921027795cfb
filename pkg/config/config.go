// Package config loads and validates the kvfs configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (KVFS_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/kvfs/internal/bytesize"
	"github.com/marmos91/kvfs/pkg/vfs/kv/badger"
	"github.com/marmos91/kvfs/pkg/vfs/kv/sqlite"
)

// Config represents the kvfs configuration.
type Config struct {
	// Name identifies the filesystem in logs and metrics.
	Name string `mapstructure:"name" validate:"required" yaml:"name"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Store selects and configures the key-value backend.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Server configures the HTTP gateway.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Metrics controls Prometheus metrics exposure.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN or ERROR.
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR" yaml:"level"`

	// Format is the output format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is "stdout", "stderr", or a file path.
	Output string `mapstructure:"output" yaml:"output"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	// Type is one of "memory", "badger" or "sqlite".
	Type string `mapstructure:"type" validate:"required,oneof=memory badger sqlite" yaml:"type"`

	// Badger holds BadgerDB-specific settings.
	Badger badger.Config `mapstructure:"badger" yaml:"badger"`

	// Sqlite holds SQLite-specific settings.
	Sqlite sqlite.Config `mapstructure:"sqlite" yaml:"sqlite"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	// Listen is the address the gateway binds to.
	Listen string `mapstructure:"listen" validate:"required" yaml:"listen"`

	// RequestTimeout bounds each request's handling time.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0" yaml:"request_timeout"`

	// MaxBodySize caps uploaded file payloads, e.g. "32Mi". Zero disables
	// the limit.
	MaxBodySize bytesize.ByteSize `mapstructure:"max_body_size" yaml:"max_body_size"`
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns the registry and the /metrics endpoint on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Load loads configuration from file, environment, and defaults. An empty
// configPath falls back to the default location; a missing file yields the
// default configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("KVFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// decodeHooks converts config strings into the custom field types: byte
// sizes like "32Mi" and durations like "30s".
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.Parse(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			// YAML numbers often arrive as float64.
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// Validate checks the configuration against its struct tags.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// Save writes the configuration to path in YAML form.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file location:
// $XDG_CONFIG_HOME/kvfs/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.yaml")
}

func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kvfs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "kvfs")
}
