package console

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/internal/format"
	"pkt.systems/sndbq/schema"
)

// Renderer holds the result table and the notice line. Only the session
// goroutine touches it.
type Renderer struct {
	rows      [][]string
	notice    string
	noticeOK  bool
	clipboard Clipboard
	styles    styles
	log       pslog.Logger
}

// NewRenderer returns an empty renderer using the named theme.
func NewRenderer(theme schema.ThemeName, clip Clipboard, log pslog.Logger) *Renderer {
	if clip == nil {
		clip = SystemClipboard{}
	}
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Renderer{
		clipboard: clip,
		styles:    newStyles(themeForName(theme)),
		log:       log,
	}
}

// Apply merges one update into the model.
func (r *Renderer) Apply(u schema.Update) {
	switch u.Type {
	case schema.UpdateResult:
		r.rows = append(r.rows, format.Row(u.Program))
		r.notice = ""
	case schema.UpdateMessage:
		r.notice = u.Text
		r.noticeOK = u.OK
	case schema.UpdateClearTable:
		r.rows = nil
		r.setNotice("table cleared", true)
	case schema.UpdateCopyTable:
		r.copyTable()
	case schema.UpdateRedraw:
	}
}

// Rows returns the number of result rows.
func (r *Renderer) Rows() int {
	return len(r.rows)
}

// Notice returns the current notice and whether it is a success notice.
func (r *Renderer) Notice() (string, bool) {
	return r.notice, r.noticeOK
}

// Table renders the header and every row.
func (r *Renderer) Table() string {
	rows := r.rows
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.border).
		Headers(format.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.header
			}
			if col == format.StatusColumn && row >= 0 && row < len(rows) {
				if style, ok := r.styles.status[schema.StatusKind(rows[row][col])]; ok {
					return style
				}
			}
			return r.styles.cell
		})
	return t.String()
}

// PlainTable renders the table without styling.
func (r *Renderer) PlainTable() string {
	return ansi.Strip(r.Table())
}

func (r *Renderer) copyTable() {
	if err := r.clipboard.WriteAll(r.PlainTable()); err != nil {
		r.log.Warn("clipboard write failed", "err", err)
		r.setNotice("failed to write table to clipboard", false)
		return
	}
	r.log.Debug("clipboard write", "rows", len(r.rows))
	r.setNotice("table written to clipboard", true)
}

func (r *Renderer) setNotice(text string, ok bool) {
	r.notice = text
	r.noticeOK = ok
}
