// Package config provides YAML-based configuration loading for
// meillionen tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	// AppName optional logical name of the application
	AppName string `mapstructure:"app_name"`

	// DataDir base directory for generated artifacts
	DataDir string `mapstructure:"data_dir"`

	// Log holds logging configuration
	Log LogConfig `mapstructure:"log"`

	// Descriptor controls descriptor generation and decoding limits
	Descriptor DescriptorConfig `mapstructure:"descriptor"`

	// Dispatch holds request dispatch options
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: list of outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`

	// Rotation controls file rotation when writing to files
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DescriptorConfig bounds descriptor handling.
type DescriptorConfig struct {
	// MaxBytes caps descriptor buffers accepted from disk or peers
	MaxBytes int `mapstructure:"max_bytes"`
	// Dir is where generated descriptors are written
	Dir string `mapstructure:"dir"`
}

// DispatchConfig holds request dispatch options.
type DispatchConfig struct {
	// DefaultFormat: json, cbor, or proto
	DefaultFormat string `mapstructure:"default_format"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		AppName: "meillionen",
		DataDir: "./data",
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Outputs:     []string{"stdout"},
			Development: true,
			Rotation: RotationConfig{
				Enable:     false,
				Filename:   "logs/meillionen.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
		Descriptor: DescriptorConfig{
			MaxBytes: 1 << 20,
			Dir:      "./descriptors",
		},
		Dispatch: DispatchConfig{DefaultFormat: "cbor"},
	}
}

// Load reads configuration from the provided path (if non-empty),
// otherwise it searches common locations and supports environment
// overrides. Environment variables use the prefix MEILLIONEN and
// `.`/`-` are replaced with `_`. Example: MEILLIONEN_LOG_LEVEL=debug
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MEILLIONEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults for viper so env-only configs work
	v.SetDefault("app_name", cfg.AppName)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
	v.SetDefault("descriptor.max_bytes", cfg.Descriptor.MaxBytes)
	v.SetDefault("descriptor.dir", cfg.Descriptor.Dir)
	v.SetDefault("dispatch.default_format", cfg.Dispatch.DefaultFormat)

	// Choose config file
	if path == "" {
		// Allow override via env var
		if envPath := os.Getenv("MEILLIONEN_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search common locations with base name `meillionen`
		v.SetConfigName("meillionen")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".meillionen"))
		}
	}

	// Read config file if present; if not found, continue with defaults/env
	if err := v.ReadInConfig(); err != nil {
		var viperConfigFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &viperConfigFileNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
		// ok
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}

	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stdout"}
	}
	if c.Descriptor.MaxBytes <= 0 {
		c.Descriptor.MaxBytes = 1 << 20
	}
	if strings.TrimSpace(c.Descriptor.Dir) == "" {
		c.Descriptor.Dir = "./descriptors"
	}
	switch strings.ToLower(strings.TrimSpace(c.Dispatch.DefaultFormat)) {
	case "":
		c.Dispatch.DefaultFormat = "cbor"
	case "json", "cbor", "proto", "protobuf":
		// ok
	default:
		return fmt.Errorf("invalid dispatch.default_format: %q", c.Dispatch.DefaultFormat)
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
