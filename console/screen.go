package console

import (
	"fmt"
	"io"
	"strings"
)

type screen struct {
	out io.Writer
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

// EnterAltScreen switches to the alternate buffer and enables bracketed paste.
func (s *screen) EnterAltScreen() error {
	_, err := io.WriteString(s.out, "\x1b[?1049h\x1b[?2004h\x1b[H\x1b[2J")
	return err
}

// ExitAltScreen undoes EnterAltScreen and shows the cursor.
func (s *screen) ExitAltScreen() error {
	_, err := io.WriteString(s.out, "\x1b[?2004l\x1b[?1049l\x1b[?25h")
	return err
}

// Render repaints the whole pane and parks the cursor at the 1-based position.
func (s *screen) Render(lines []string, cursorRow, cursorCol int) error {
	if cursorRow < 1 {
		cursorRow = 1
	}
	if cursorCol < 1 {
		cursorCol = 1
	}
	var b strings.Builder
	b.WriteString("\x1b[?25l")
	b.WriteString("\x1b[H\x1b[J")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(line)
	}
	b.WriteString(fmt.Sprintf("\x1b[%d;%dH", cursorRow, cursorCol))
	b.WriteString("\x1b[?25h")
	_, err := io.WriteString(s.out, b.String())
	return err
}
