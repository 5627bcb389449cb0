// Package dblog ships structured log lines into the database log table.
package dblog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/sndbq/schema"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("log sink closed")

// Inserter stores one log entry.
type Inserter interface {
	InsertLog(ctx context.Context, entry schema.LogEntry) error
}

// Options configures a Sink.
type Options struct {
	App string
	// MinLevel drops entries below this level ("trace" .. "panic").
	MinLevel string
	// Buffer is the queue depth; entries beyond it are dropped.
	Buffer int
	// InsertTimeout bounds each insert.
	InsertTimeout time.Duration
	// Fallback receives insert failures, since they cannot be logged
	// through the logger that feeds this sink.
	Fallback io.Writer
}

type messageKind int

const (
	messageEntry messageKind = iota
	messageShutdown
)

// message is either a log entry or the request to stop the writer.
type message struct {
	kind  messageKind
	entry schema.LogEntry
}

// Sink is an io.Writer for pslog JSON output. Entries are queued and
// inserted by one writer goroutine.
type Sink struct {
	ins      Inserter
	app      string
	minLevel int
	timeout  time.Duration
	fallback io.Writer

	mu     sync.RWMutex
	closed bool
	ch     chan message
	done   chan struct{}

	dropped  atomic.Int64
	failed   atomic.Int64
	inserted atomic.Int64
}

// New starts a sink writing through ins.
func New(ins Inserter, opts Options) *Sink {
	if opts.Buffer <= 0 {
		opts.Buffer = 256
	}
	if opts.InsertTimeout <= 0 {
		opts.InsertTimeout = 5 * time.Second
	}
	if opts.Fallback == nil {
		opts.Fallback = io.Discard
	}
	minLevel, ok := levelRank(opts.MinLevel)
	if !ok {
		minLevel, _ = levelRank("warn")
	}
	s := &Sink{
		ins:      ins,
		app:      opts.App,
		minLevel: minLevel,
		timeout:  opts.InsertTimeout,
		fallback: opts.Fallback,
		ch:       make(chan message, opts.Buffer),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Write parses newline-delimited JSON log records and queues those at or
// above the minimum level. It never blocks on the database.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	for _, line := range bytes.Split(p, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		entry, ok := s.parse(line)
		if !ok {
			continue
		}
		select {
		case s.ch <- message{kind: messageEntry, entry: entry}:
		default:
			s.dropped.Add(1)
		}
	}
	return len(p), nil
}

// Close stops accepting entries, asks the writer to finish the queue and
// waits for it. It returns ctx.Err() if the writer does not finish in time.
func (s *Sink) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.closed = true
	s.mu.Unlock()

	select {
	case s.ch <- message{kind: messageShutdown}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if n := s.dropped.Load(); n > 0 {
		_, _ = fmt.Fprintf(s.fallback, "dblog: dropped %d entries\n", n)
	}
	return nil
}

// Stats reports inserted, failed and dropped entry counts.
func (s *Sink) Stats() (inserted, failed, dropped int64) {
	return s.inserted.Load(), s.failed.Load(), s.dropped.Load()
}

func (s *Sink) run() {
	defer close(s.done)
	for msg := range s.ch {
		switch msg.kind {
		case messageShutdown:
			return
		case messageEntry:
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			err := s.ins.InsertLog(ctx, msg.entry)
			cancel()
			if err != nil {
				s.failed.Add(1)
				_, _ = fmt.Fprintf(s.fallback, "dblog: %v\n", err)
				continue
			}
			s.inserted.Add(1)
		}
	}
}

func (s *Sink) parse(line []byte) (schema.LogEntry, bool) {
	record := map[string]any{}
	if err := json.Unmarshal(line, &record); err != nil {
		return schema.LogEntry{Timestamp: time.Now(), App: s.app, Level: "info", Message: string(line)}, s.minLevel <= rankInfo
	}
	level := firstString(record, "lvl", "level")
	rank, ok := levelRank(level)
	if !ok {
		rank = rankInfo
	}
	if rank < s.minLevel {
		return schema.LogEntry{}, false
	}
	msg := firstString(record, "msg", "message")
	fields := make([]string, 0, len(record))
	for key, value := range record {
		switch key {
		case "lvl", "level", "msg", "message", "ts", "time":
			continue
		}
		fields = append(fields, fmt.Sprintf("%s=%v", key, value))
	}
	if len(fields) > 0 {
		sort.Strings(fields)
		msg = msg + " " + strings.Join(fields, " ")
	}
	ts := time.Now()
	if raw := firstString(record, "ts", "time"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			ts = parsed
		}
	}
	return schema.LogEntry{Timestamp: ts, App: s.app, Level: canonicalLevel(rank), Message: msg}, true
}

func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := record[key].(string); ok {
			return v
		}
	}
	return ""
}
