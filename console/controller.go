package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pkt.systems/pslog"

	"pkt.systems/sndbq/core"
	"pkt.systems/sndbq/internal/classify"
	"pkt.systems/sndbq/internal/command"
	"pkt.systems/sndbq/schema"
)

// Mode is the input mode of the prompt.
type Mode int

const (
	// ModePrompt accepts identifiers.
	ModePrompt Mode = iota
	// ModeCommand accepts a ':' command.
	ModeCommand
)

func (m Mode) String() string {
	if m == ModeCommand {
		return "command"
	}
	return "prompt"
}

// RequestSink accepts lookup requests without blocking.
type RequestSink interface {
	Push(schema.LookupRequest) bool
}

// UpdateSink accepts console updates without blocking.
type UpdateSink interface {
	Push(schema.Update) bool
}

// Controller is the input state machine. It owns the buffer history.
type Controller struct {
	history  *core.History
	mode     Mode
	tips     bool
	keep     int
	requests RequestSink
	updates  UpdateSink
	log      pslog.Logger
}

// NewController returns a controller in Prompt mode with tips hidden.
// keep is the number of buffers :reset retains.
func NewController(requests RequestSink, updates UpdateSink, keep int, log pslog.Logger) *Controller {
	if keep < 1 {
		keep = core.DefaultHistoryKeep
	}
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Controller{
		history:  core.NewHistory(),
		keep:     keep,
		requests: requests,
		updates:  updates,
		log:      log,
	}
}

// Mode returns the current input mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// TipsVisible reports whether the tips panel is open.
func (c *Controller) TipsVisible() bool {
	return c.mode == ModePrompt && c.tips
}

// History exposes the buffer history for rendering.
func (c *Controller) History() *core.History {
	return c.history
}

// Hint returns the dimmed prefix carried over from the previous submission.
func (c *Controller) Hint() string {
	if c.mode != ModePrompt {
		return ""
	}
	buf := c.history.Current()
	if buf.Len() == 0 {
		return ""
	}
	prev, ok := c.history.PreviousPrefix()
	if !ok {
		return ""
	}
	return buf.TrimPrefix(prev)
}

// HandleKey applies k and reports whether the session should end.
func (c *Controller) HandleKey(k key) bool {
	buf := c.history.Current()
	switch k.kind {
	case keyCtrlC:
		c.log.Info("tui exit", "reason", "ctrl-c")
		return true
	case keyEscape:
		switch {
		case c.mode == ModeCommand:
			c.leaveCommand()
		case c.tips:
			c.tips = false
		default:
			c.log.Info("tui exit", "reason", "escape")
			return true
		}
	case keyEnter:
		return c.handleEnter()
	case keyBackspace:
		buf.Backspace()
	case keyDelete:
		buf.DeleteForward()
	case keyLeft:
		buf.Seek(-1, io.SeekCurrent)
	case keyRight:
		buf.Seek(1, io.SeekCurrent)
	case keyHome:
		buf.Seek(0, io.SeekStart)
	case keyEnd:
		buf.Seek(0, io.SeekEnd)
	case keyUp:
		if c.mode == ModePrompt {
			c.history.Switch(-1)
		}
	case keyDown:
		if c.mode == ModePrompt {
			c.history.Switch(1)
		}
	case keyPaste:
		buf.Insert(k.text)
	case keyRune:
		c.handleRune(buf, k.r)
	}
	return false
}

func (c *Controller) handleRune(buf *core.EditBuffer, r rune) {
	switch {
	case r == ':' && c.mode == ModePrompt:
		c.mode = ModeCommand
		c.tips = false
		c.history.PushCommand().Insert(":")
	case r == ':' || r == '?':
		if c.mode == ModePrompt {
			c.tips = !c.tips
		}
	default:
		buf.Insert(string(r))
	}
}

func (c *Controller) handleEnter() bool {
	buf := c.history.Current()
	if c.mode == ModeCommand {
		line := buf.String()
		c.leaveCommand()
		if strings.TrimSpace(line) != "" {
			c.dispatch(line)
		}
		return false
	}
	if buf.Len() == 0 {
		c.log.Info("tui exit", "reason", "blank enter")
		return true
	}
	c.submit()
	return false
}

func (c *Controller) submit() {
	tokens := c.history.Submit()
	c.log.Debug("tui submit", "tokens", len(tokens))
	for _, token := range tokens {
		req, err := classify.Classify(token)
		if err != nil {
			var classifyErr *classify.Error
			if errors.As(err, &classifyErr) {
				c.log.Debug("tui unclassified token", "token", classifyErr.Token)
			}
			c.updates.Push(schema.MessageUpdate(err.Error()))
			continue
		}
		if !c.requests.Push(req) {
			c.log.Warn("lookup request dropped", "kind", req.Kind, "id", req.Identifier)
		}
	}
}

func (c *Controller) dispatch(line string) {
	cmd, ok := command.Parse(line)
	if !ok {
		cmd = command.Command{Raw: strings.ToLower(strings.TrimSpace(line))}
	}
	c.log.Debug("tui command", "command", cmd.Raw)
	switch cmd.Name {
	case command.Reset:
		c.history.Reset(c.keep)
		c.updates.Push(schema.Update{Type: schema.UpdateRedraw})
	case command.Clear:
		c.updates.Push(schema.Update{Type: schema.UpdateClearTable})
	case command.Print:
		c.updates.Push(schema.Update{Type: schema.UpdateCopyTable})
	default:
		msg := fmt.Sprintf("unrecognized command `:%s`", cmd.Raw)
		if suggestion, ok := command.Suggest(cmd.Raw); ok {
			msg += fmt.Sprintf(", did you mean `:%s`?", suggestion)
		}
		c.updates.Push(schema.MessageUpdate(msg))
	}
}

// leaveCommand returns to Prompt(false) and discards the command buffer.
func (c *Controller) leaveCommand() {
	c.history.DropCommand()
	c.mode = ModePrompt
	c.tips = false
}
