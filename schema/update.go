package schema

// UpdateType identifies the console update payload.
type UpdateType string

const (
	// UpdateResult carries a lookup result row.
	UpdateResult UpdateType = "result"
	// UpdateMessage replaces the console notice.
	UpdateMessage UpdateType = "message"
	// UpdateClearTable resets the result table.
	UpdateClearTable UpdateType = "clear"
	// UpdateCopyTable writes the result table to the clipboard.
	UpdateCopyTable UpdateType = "copy"
	// UpdateRedraw forces a repaint without a model change.
	UpdateRedraw UpdateType = "redraw"
)

// Update is a UI-facing event consumed by the console renderer.
type Update struct {
	Type    UpdateType
	Program Program
	Text    string
	// OK selects the success style for UpdateMessage.
	OK bool
}

// ResultUpdate wraps a lookup result.
func ResultUpdate(program Program) Update {
	return Update{Type: UpdateResult, Program: program}
}

// MessageUpdate returns an error-styled notice.
func MessageUpdate(text string) Update {
	return Update{Type: UpdateMessage, Text: text}
}

// NoticeUpdate returns a success-styled notice.
func NoticeUpdate(text string) Update {
	return Update{Type: UpdateMessage, Text: text, OK: true}
}
