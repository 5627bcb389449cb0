package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pkt.systems/sndbq/schema"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("database.driver", cfg.Database.Driver)
	v.SetDefault("database.server", cfg.Database.Server)
	v.SetDefault("database.database", cfg.Database.Database)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout_seconds", cfg.Database.TimeoutSeconds)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.remote", cfg.Logging.Remote)
	v.SetDefault("logging.remote_level", cfg.Logging.RemoteLevel)
	v.SetDefault("logging.app", cfg.Logging.App)
	v.SetDefault("console.theme", string(cfg.Console.Theme))
	v.SetDefault("console.poll_interval_ms", cfg.Console.PollIntervalMillis)
	v.SetDefault("console.history_keep", cfg.Console.HistoryKeep)
	v.SetDefault("console.shutdown_timeout_seconds", cfg.Console.ShutdownTimeoutSeconds)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Database.Driver)) {
	case "sqlserver":
		if strings.TrimSpace(cfg.Database.Server) == "" {
			return fmt.Errorf("database.server is required for the sqlserver driver (or set %s and %s)", EnvServer, EnvDatabase)
		}
	case "sqlite3", "sqlite":
		cfg.Database.Driver = "sqlite3"
		if strings.TrimSpace(cfg.Database.Path) == "" {
			return fmt.Errorf("database.path is required for the sqlite3 driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver)
	}
	theme, ok := schema.NormalizeThemeName(string(cfg.Console.Theme))
	if !ok {
		return fmt.Errorf("unsupported console.theme %q", cfg.Console.Theme)
	}
	cfg.Console.Theme = theme
	if cfg.Console.PollIntervalMillis <= 0 {
		return fmt.Errorf("console.poll_interval_ms must be positive")
	}
	if cfg.Console.HistoryKeep < 1 {
		return fmt.Errorf("console.history_keep must be at least 1")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	server, okServer := os.LookupEnv(EnvServer)
	database, okDatabase := os.LookupEnv(EnvDatabase)
	if !okServer || !okDatabase {
		return
	}
	cfg.Database.Driver = "sqlserver"
	cfg.Database.Server = server
	cfg.Database.Database = database
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.Database.Server = expandEnv(cfg.Database.Server)
	cfg.Database.Path = expandEnv(cfg.Database.Path)
	cfg.Logging.File = expandEnv(cfg.Logging.File)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
