package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"pkt.systems/sndbq/schema"
)

const sqliteSelect = `SELECT ProgramName, Status, Timestamp, SheetName, MaterialMaster,
	HeatNumber, PoNumber, Wbs, Operator
	FROM program_status WHERE %s = ? ORDER BY Timestamp DESC, id DESC LIMIT 1`

const sqliteStatusInsert = `INSERT INTO program_status
	(ProgramName, PartName, Status, Timestamp, SheetName, MaterialMaster, HeatNumber, PoNumber, Wbs, Operator)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

var sqliteDialect = dialect{
	driver: "sqlite3",
	lookups: map[schema.LookupKind]string{
		schema.LookupProgram:  fmt.Sprintf(sqliteSelect, "ProgramName"),
		schema.LookupPart:     fmt.Sprintf(sqliteSelect, "PartName"),
		schema.LookupSheet:    fmt.Sprintf(sqliteSelect, "SheetName"),
		schema.LookupMaterial: fmt.Sprintf(sqliteSelect, "MaterialMaster"),
	},
	logInsert:    "INSERT INTO log(timestamp, app, level, message) VALUES (?, ?, ?, ?)",
	statusInsert: sqliteStatusInsert,
	dsn:          sqliteDSN,
	prepare:      migrateSQLite,
}

func sqliteDSN(cfg Config) (string, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return "", fmt.Errorf("database.path is required for sqlite3")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL", nil
}

type migration struct {
	Version int
	Name    string
	Up      string
}

var sqliteMigrations = []migration{
	{
		Version: 1,
		Name:    "program status and log tables",
		Up: `
			CREATE TABLE IF NOT EXISTS program_status (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				ProgramName TEXT NOT NULL,
				PartName TEXT,
				Status TEXT NOT NULL,
				Timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				SheetName TEXT NOT NULL,
				MaterialMaster TEXT NOT NULL,
				HeatNumber TEXT,
				PoNumber TEXT,
				Wbs TEXT,
				Operator TEXT
			);
			CREATE TABLE IF NOT EXISTS log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp DATETIME NOT NULL,
				app TEXT NOT NULL,
				level TEXT NOT NULL,
				message TEXT NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "lookup indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_program_status_program ON program_status(ProgramName);
			CREATE INDEX IF NOT EXISTS idx_program_status_part ON program_status(PartName);
			CREATE INDEX IF NOT EXISTS idx_program_status_sheet ON program_status(SheetName);
			CREATE INDEX IF NOT EXISTS idx_program_status_material ON program_status(MaterialMaster);
		`,
	},
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for _, m := range sqliteMigrations {
		if m.Version <= current {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
