package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/sndbq/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string         `mapstructure:"state_dir" yaml:"state_dir"`
	Database      DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Console       ConsoleConfig  `mapstructure:"console" yaml:"console"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// Environment overrides for the database address, applied when both are set.
const (
	EnvServer   = "SndbServer"
	EnvDatabase = "SndbDatabase"
)

// DatabaseConfig selects and addresses the nest database.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver" yaml:"driver"`
	Server         string `mapstructure:"server" yaml:"server"`
	Database       string `mapstructure:"database" yaml:"database"`
	Path           string `mapstructure:"path" yaml:"path"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// LoggingConfig controls where logs go while the console owns the terminal.
type LoggingConfig struct {
	File        string `mapstructure:"file" yaml:"file"`
	Level       string `mapstructure:"level" yaml:"level"`
	Remote      bool   `mapstructure:"remote" yaml:"remote"`
	RemoteLevel string `mapstructure:"remote_level" yaml:"remote_level"`
	App         string `mapstructure:"app" yaml:"app"`
}

// ConsoleConfig controls the interactive console.
type ConsoleConfig struct {
	Theme                  schema.ThemeName `mapstructure:"theme" yaml:"theme"`
	PollIntervalMillis     int              `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	HistoryKeep            int              `mapstructure:"history_keep" yaml:"history_keep"`
	ShutdownTimeoutSeconds int              `mapstructure:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(home, ".sndbq"),
		Database: DatabaseConfig{
			Driver:         "sqlserver",
			Server:         "",
			Database:       "SNDBase",
			Path:           filepath.Join(home, ".sndbq", "sndb.db"),
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			File:        filepath.Join(home, ".sndbq", "sndbq.log"),
			Level:       "info",
			Remote:      false,
			RemoteLevel: "warn",
			App:         "sndbq",
		},
		Console: ConsoleConfig{
			Theme:                  schema.DefaultTheme,
			PollIntervalMillis:     100,
			HistoryKeep:            3,
			ShutdownTimeoutSeconds: 5,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sndbq", "config.yaml"), nil
}
