package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Launcher LauncherConfig `mapstructure:"launcher"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LauncherConfig contains the poll loop settings.
// The scanned directory is always the working directory and is not configurable.
type LauncherConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "vlaunch"))
	}
	v.AddConfigPath("/etc/vlaunch")

	setDefaults(v)

	// VLAUNCH_LAUNCHER_POLL_INTERVAL, VLAUNCH_LOGGING_LEVEL, ...
	v.SetEnvPrefix("VLAUNCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Logging.File = expandPath(cfg.Logging.File)

	return &cfg, nil
}

// Validate rejects settings the launcher cannot run with
func (c *Config) Validate() error {
	if c.Launcher.PollInterval <= 0 {
		return fmt.Errorf("invalid launcher.poll_interval %s: must be positive", c.Launcher.PollInterval)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("launcher.poll_interval", time.Second)

	// warn keeps a healthy run silent; loop progress is logged at debug
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.color", "auto")
	v.SetDefault("logging.file", "")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}
