// Package store executes lookups against the nest database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pkt.systems/sndbq/schema"
	"pkt.systems/pslog"
)

// ErrUnsupportedDriver indicates a driver name with no dialect.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config selects and addresses the backing database.
type Config struct {
	// Driver is "sqlserver" or "sqlite3".
	Driver   string
	Server   string
	Database string
	// Path is the database file for sqlite3.
	Path    string
	Timeout time.Duration
	AppName string
}

type dialect struct {
	driver    string
	lookups   map[schema.LookupKind]string
	logInsert string
	// statusInsert is empty for stores that are read-only to sndbq.
	statusInsert string
	dsn          func(Config) (string, error)
	prepare      func(context.Context, *sql.DB) error
}

var dialects = map[string]dialect{
	"sqlserver": sqlServerDialect,
	"sqlite3":   sqliteDialect,
}

// SQL is a database/sql backed store. It holds a single connection so
// statements against it are serialized.
type SQL struct {
	db      *sql.DB
	dialect dialect
	timeout time.Duration
	log     pslog.Logger
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*SQL, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(cfg.Driver))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	dsn, err := d.dsn(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQL{
		db:      db,
		dialect: d,
		timeout: cfg.Timeout,
		log:     pslog.Ctx(ctx).With("driver", d.driver),
	}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if d.prepare != nil {
		if err := d.prepare(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	s.log.Debug("store open", "server", cfg.Server, "database", cfg.Database, "path", cfg.Path)
	return s, nil
}

// Driver returns the database/sql driver name.
func (s *SQL) Driver() string {
	return s.dialect.driver
}

// Ping checks that the database is reachable.
func (s *SQL) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", s.dialect.driver, err)
	}
	return nil
}

// Lookup runs the lookup for req and converts the first returned row.
// found is false when the lookup returns no rows.
func (s *SQL) Lookup(ctx context.Context, req schema.LookupRequest) (program schema.Program, found bool, err error) {
	query, ok := s.dialect.lookups[req.Kind]
	if !ok {
		return schema.Program{}, false, fmt.Errorf("no lookup for kind %q", req.Kind)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, req.Identifier)
	if err != nil {
		return schema.Program{}, false, fmt.Errorf("query %s: %w", req.Kind, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if !rows.Next() {
		return schema.Program{}, false, rows.Err()
	}
	row, err := scanRow(rows)
	if err != nil {
		return schema.Program{}, false, err
	}
	program, err = ReadProgram(row, s.log)
	if err != nil {
		return schema.Program{}, false, err
	}
	return program, true, nil
}

// InsertLog writes one log entry into the log table.
func (s *SQL) InsertLog(ctx context.Context, entry schema.LogEntry) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.dialect.logInsert, entry.Timestamp, entry.App, entry.Level, entry.Message); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// Close releases the connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
