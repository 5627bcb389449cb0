package core

import "strings"

// DefaultHistoryKeep is how many buffers Reset keeps by default.
const DefaultHistoryKeep = 3

// History is the ordered list of edit buffers behind the prompt. The last
// buffer is the one being typed; earlier ones are prior submissions that can
// be revisited and edited in place. It is never empty.
type History struct {
	buffers []*EditBuffer
	current int
	// saved is the index to return to when the command buffer is dropped.
	saved int
}

// NewHistory returns a history holding one empty buffer.
func NewHistory() *History {
	return &History{buffers: []*EditBuffer{{}}}
}

// Len returns the number of buffers.
func (h *History) Len() int {
	return len(h.buffers)
}

// Index returns the current buffer index.
func (h *History) Index() int {
	return h.current
}

// Current returns the buffer at the current index.
func (h *History) Current() *EditBuffer {
	return h.buffers[h.current]
}

// Switch moves the current index by delta, clamped to the buffer range.
func (h *History) Switch(delta int) {
	h.current = clampIndex(h.current+delta, len(h.buffers))
}

// PreviousPrefix returns the prefix of the buffer before the current one
// when the current buffer is the newest.
func (h *History) PreviousPrefix() (string, bool) {
	if h.current == 0 || h.current != len(h.buffers)-1 {
		return "", false
	}
	return h.buffers[h.current-1].Prefix(), true
}

// Submit carries the previous prefix into the current buffer, starts a fresh
// buffer and returns the submitted whitespace-separated tokens in order.
func (h *History) Submit() []string {
	buf := h.Current()
	if prev, ok := h.PreviousPrefix(); ok {
		buf.ApplyPrefix(prev)
	}
	tokens := strings.Fields(buf.String())
	h.push()
	return tokens
}

// PushCommand appends a scratch buffer for command input and makes it current.
func (h *History) PushCommand() *EditBuffer {
	h.saved = h.current
	h.push()
	return h.Current()
}

// DropCommand discards the scratch buffer pushed by PushCommand and returns
// to the buffer that was current before it.
func (h *History) DropCommand() {
	if len(h.buffers) > 1 {
		h.buffers = h.buffers[:len(h.buffers)-1]
	}
	h.current = clampIndex(h.saved, len(h.buffers))
}

// Reset keeps the newest keep buffers and moves to the first of them.
func (h *History) Reset(keep int) {
	if keep < 1 {
		keep = 1
	}
	if len(h.buffers) > keep {
		h.buffers = append([]*EditBuffer(nil), h.buffers[len(h.buffers)-keep:]...)
	}
	h.current = 0
	h.saved = 0
}

func (h *History) push() {
	h.buffers = append(h.buffers, &EditBuffer{})
	h.current = len(h.buffers) - 1
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
