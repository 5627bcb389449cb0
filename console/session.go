package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/internal/logx"
	"pkt.systems/sndbq/schema"
)

// DefaultPollInterval bounds how long the loop waits without any event.
const DefaultPollInterval = 100 * time.Millisecond

// UpdateQueue is the update stream the session drains. The controller and
// the lookup worker push into it.
type UpdateQueue interface {
	UpdateSink
	Out() <-chan schema.Update
}

// Options configures a session.
type Options struct {
	Theme        schema.ThemeName
	PollInterval time.Duration
	HistoryKeep  int
	Clipboard    Clipboard
}

// Session ties terminal input, updates and redraws together. It is the only
// writer to the terminal.
type Session struct {
	id       schema.SessionID
	term     Terminal
	screen   *screen
	ctl      *Controller
	renderer *Renderer
	updates  UpdateQueue
	poll     time.Duration
	ctx      context.Context

	width  int
	height int
	dirty  bool
}

// NewSession prepares a session on term. Lookup requests go to requests and
// results are read back from updates.
func NewSession(term Terminal, requests RequestSink, updates UpdateQueue, opts Options) *Session {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Session{
		id:       schema.SessionID(uuid.NewString()),
		term:     term,
		screen:   newScreen(term),
		ctl:      NewController(requests, updates, opts.HistoryKeep, nil),
		renderer: NewRenderer(opts.Theme, opts.Clipboard, nil),
		updates:  updates,
		poll:     poll,
		ctx:      context.Background(),
	}
}

// ID returns the session id used in logs.
func (s *Session) ID() schema.SessionID {
	return s.id
}

func (s *Session) log() pslog.Logger {
	return pslog.Ctx(s.ctx)
}

// Run drives the console until the operator quits, ctx is cancelled or the
// terminal fails. The terminal is restored on every return path, after which
// the final table is printed to the normal screen.
func (s *Session) Run(ctx context.Context) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logx.ContextWithSessionLogger(ctx, s.id)
	s.ctx = ctx
	s.ctl.log = pslog.Ctx(ctx)
	s.renderer.log = pslog.Ctx(ctx)

	restore, err := s.term.MakeRaw()
	if err != nil {
		return err
	}
	defer func() {
		if exitErr := s.screen.ExitAltScreen(); exitErr != nil && err == nil {
			err = fmt.Errorf("leave alternate screen: %w", exitErr)
		}
		if restoreErr := restore(); restoreErr != nil {
			s.log().Warn("tui restore failed", "err", restoreErr)
			if err == nil {
				err = fmt.Errorf("restore terminal: %w", restoreErr)
			}
		}
		if err == nil {
			s.printFinal()
		}
		s.log().Info("tui session end", "rows", s.renderer.Rows())
	}()
	if err := s.screen.EnterAltScreen(); err != nil {
		return fmt.Errorf("enter alternate screen: %w", err)
	}

	s.refreshSize()
	if err := s.render(); err != nil {
		return err
	}
	s.log().Info("tui session start", "width", s.width, "height", s.height)

	keys := make(chan key, 16)
	stopKeys := make(chan struct{})
	defer close(stopKeys)
	go readKeys(s.term, keys, stopKeys)

	resize, stopResize := watchResize()
	defer stopResize()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	updates := s.updates.Out()
	for {
		select {
		case <-ctx.Done():
			s.log().Info("tui exit", "reason", "context done")
			return nil
		case k, ok := <-keys:
			if !ok {
				s.log().Info("tui exit", "reason", "input closed")
				return nil
			}
			if s.ctl.HandleKey(k) {
				return nil
			}
			s.dirty = true
		case u, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			s.renderer.Apply(u)
			s.dirty = true
		case <-resize:
			if s.refreshSize() {
				s.log().Debug("tui resize", "width", s.width, "height", s.height)
			}
			s.dirty = true
		case <-ticker.C:
			if s.refreshSize() {
				s.dirty = true
			}
		}

		if s.dirty {
			if err := s.render(); err != nil {
				return err
			}
			s.dirty = false
		}
	}
}

// refreshSize reports whether the terminal size changed.
func (s *Session) refreshSize() bool {
	width, height, err := s.term.Size()
	if err != nil || width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	if width == s.width && height == s.height {
		return false
	}
	s.width = width
	s.height = height
	return true
}

func (s *Session) render() error {
	lines, row, col := frame(s.renderer, s.ctl, s.width, s.height)
	if err := s.screen.Render(lines, row, col); err != nil {
		return fmt.Errorf("render console: %w", err)
	}
	return nil
}

func (s *Session) printFinal() {
	var b strings.Builder
	if s.renderer.Rows() > 0 {
		b.WriteString(s.renderer.Table())
		b.WriteString("\n")
	}
	b.WriteString("Goodbye...\n")
	if _, err := io.WriteString(s.term, b.String()); err != nil {
		s.log().Warn("tui final print failed", "err", err)
	}
}
