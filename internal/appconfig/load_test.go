package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
database:
  driver: sqlite3
  path: /tmp/sndb.db
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRejectsUnsupportedDriver(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
database:
  driver: oracle
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported database.driver") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestLoadRequiresSQLServerAddress(t *testing.T) {
	t.Setenv(EnvServer, "")
	os.Unsetenv(EnvServer)
	path := writeConfig(t, `
config_version: 1
database:
  driver: sqlserver
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "database.server") {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestLoadSQLite(t *testing.T) {
	t.Setenv("SNDB_DIR", "/data")
	path := writeConfig(t, `
config_version: 1
database:
  driver: sqlite
  path: $SNDB_DIR/sndb.db
console:
  theme: tokyo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Fatalf("expected normalized driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/data/sndb.db" {
		t.Fatalf("expected expanded path, got %q", cfg.Database.Path)
	}
	if cfg.Console.Theme != "tokyo-midnight" {
		t.Fatalf("expected normalized theme, got %q", cfg.Console.Theme)
	}
	if cfg.Console.HistoryKeep != 3 {
		t.Fatalf("expected default history_keep, got %d", cfg.Console.HistoryKeep)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvServer, `nestdb\SIGMANEST`)
	t.Setenv(EnvDatabase, "SNDBaseTest")
	path := writeConfig(t, `
config_version: 1
database:
  driver: sqlite3
  path: /tmp/sndb.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlserver" || cfg.Database.Server != `nestdb\SIGMANEST` || cfg.Database.Database != "SNDBaseTest" {
		t.Fatalf("expected env override, got %+v", cfg.Database)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvServer, "nestdb")
	t.Setenv(EnvDatabase, "SNDBase")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected default version, got %d", cfg.ConfigVersion)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$UID/$GID/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if strings.Contains(value, "$UID") || strings.Contains(value, "$GID") {
		t.Fatalf("expected UID/GID expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
