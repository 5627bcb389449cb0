package console

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const bannerText = "Sigmanest Database  ? instructions  : commands  Esc quit"

const tipsText = `Instructions
Query the database for the status of programs, parts, sheets and material.

* Type one or more identifiers and press Enter to look them up
* Up/Down switches between earlier inputs, which can be edited and resubmitted
* To exit, press Escape or submit a blank input
* The prefix (text before the first - or _) of the last input completes
  the current one, as shown by the dimmed text
* Type : for command mode; :reset clears the prefix completion

press Escape or ? to close`

const commandsText = `Commands
:c, :clear   clear the table
:r, :reset   reset the input history
:p, :print   write the table to the system clipboard`

const (
	promptLabel  = "Program > "
	commandLabel = "Command > "
)

// frame lays out a full pane for the given size. It returns the lines and
// the 1-based cursor position. Every line but the prompt is cut to width; a
// prompt longer than width wraps and the rows it needs are reserved.
func frame(r *Renderer, c *Controller, width, height int) ([]string, int, int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	st := r.styles
	lines := []string{st.banner.Render(fitWidth(bannerText, width))}
	if r.Rows() > 0 {
		lines = append(lines, fitLines(r.Table(), width)...)
	}
	if notice, ok := r.Notice(); notice != "" {
		notice = fitWidth(notice, width)
		if ok {
			lines = append(lines, st.ok.Render(notice))
		} else {
			lines = append(lines, st.err.Render(notice))
		}
	}
	switch {
	case c.Mode() == ModeCommand:
		lines = append(lines, fitLines(st.panel.Render(commandsText), width)...)
	case c.TipsVisible():
		lines = append(lines, fitLines(st.panel.Render(tipsText), width)...)
	}

	prompt, col := promptLine(r, c)
	offset := col - 1
	promptRows := (ansi.StringWidth(prompt) + width - 1) / width
	if promptRows < offset/width+1 {
		promptRows = offset/width + 1
	}
	avail := height - promptRows
	if avail < 0 {
		avail = 0
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	lines = append(lines, prompt)
	return lines, len(lines) + offset/width, offset%width + 1
}

func fitWidth(line string, width int) string {
	if ansi.StringWidth(line) <= width {
		return line
	}
	return truncate.StringWithTail(line, uint(width), "…")
}

func fitLines(block string, width int) []string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = fitWidth(line, width)
	}
	return lines
}

// promptLine renders the input line and returns the cursor column.
func promptLine(r *Renderer, c *Controller) (string, int) {
	st := r.styles
	label := promptLabel
	if c.Mode() == ModeCommand {
		label = commandLabel
	}
	buf := c.History().Current()
	hint := c.Hint()
	line := st.label.Render(label)
	if hint != "" {
		line += st.hint.Render(hint)
	}
	line += buf.String()
	col := runewidth.StringWidth(label+hint+buf.BeforeCursor()) + 1
	return line, col
}
