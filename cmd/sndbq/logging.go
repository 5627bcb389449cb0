package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/pslog"

	"pkt.systems/sndbq/internal/appconfig"
	"pkt.systems/sndbq/internal/dblog"
	"pkt.systems/sndbq/internal/store"
)

// sessionLogging is the logger used while the console owns the terminal.
// Output goes to the log file and, when enabled, to the remote log table.
type sessionLogging struct {
	logger   pslog.Logger
	file     *os.File
	sink     *dblog.Sink
	sinkDB   *store.SQL
	shutdown time.Duration
}

func openSessionLogging(ctx context.Context, cfg appconfig.Config) (*sessionLogging, error) {
	path := strings.TrimSpace(cfg.Logging.File)
	if path == "" {
		return nil, fmt.Errorf("logging.file is required while the console is running")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := &sessionLogging{
		file:     file,
		shutdown: shutdownTimeout(cfg),
	}
	var out io.Writer = file
	if cfg.Logging.Remote {
		db, err := store.Open(ctx, storeConfig(cfg))
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("open remote log store: %w", err)
		}
		l.sinkDB = db
		l.sink = dblog.New(db, dblog.Options{
			App:      cfg.Logging.App,
			MinLevel: cfg.Logging.RemoteLevel,
			Fallback: file,
		})
		out = io.MultiWriter(file, l.sink)
	}
	l.logger = pslog.NewWithOptions(out, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: parseLevel(cfg.Logging.Level),
	})
	return l, nil
}

// Close flushes the remote sink, bounded by the shutdown timeout, and closes
// the file.
func (l *sessionLogging) Close() error {
	var firstErr error
	if l.sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), l.shutdown)
		if err := l.sink.Close(ctx); err != nil {
			firstErr = fmt.Errorf("flush remote log: %w", err)
		}
		cancel()
		inserted, failed, dropped := l.sink.Stats()
		if failed > 0 || dropped > 0 {
			_, _ = fmt.Fprintf(l.file, "remote log: inserted=%d failed=%d dropped=%d\n", inserted, failed, dropped)
		}
	}
	if l.sinkDB != nil {
		if err := l.sinkDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := l.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func parseLevel(level string) pslog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pslog.TraceLevel
	case "debug":
		return pslog.DebugLevel
	case "warn", "warning":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}

func storeConfig(cfg appconfig.Config) store.Config {
	return store.Config{
		Driver:   cfg.Database.Driver,
		Server:   cfg.Database.Server,
		Database: cfg.Database.Database,
		Path:     cfg.Database.Path,
		Timeout:  time.Duration(cfg.Database.TimeoutSeconds) * time.Second,
		AppName:  cfg.Logging.App,
	}
}

func shutdownTimeout(cfg appconfig.Config) time.Duration {
	if cfg.Console.ShutdownTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.Console.ShutdownTimeoutSeconds) * time.Second
}
