package core

import (
	"io"
	"strings"
	"unicode/utf8"
)

// EditBuffer is a single line of UTF-8 text with a byte-offset cursor.
// The cursor always rests on a code point boundary in [0, Len()].
type EditBuffer struct {
	buf    []byte
	cursor int
}

// NewEditBuffer returns a buffer holding text with the cursor at the end.
func NewEditBuffer(text string) *EditBuffer {
	b := &EditBuffer{}
	b.Insert(text)
	return b
}

func (b *EditBuffer) String() string {
	return string(b.buf)
}

// Len returns the buffer length in bytes.
func (b *EditBuffer) Len() int {
	return len(b.buf)
}

// Cursor returns the cursor byte offset.
func (b *EditBuffer) Cursor() int {
	return b.cursor
}

// BeforeCursor returns the text left of the cursor.
func (b *EditBuffer) BeforeCursor() string {
	return string(b.buf[:b.cursor])
}

// Insert splices text at the cursor and moves the cursor past it.
// Invalid UTF-8 sequences are dropped.
func (b *EditBuffer) Insert(text string) {
	text = strings.ToValidUTF8(text, "")
	if text == "" {
		return
	}
	tail := append([]byte(text), b.buf[b.cursor:]...)
	b.buf = append(b.buf[:b.cursor], tail...)
	b.cursor += len(text)
}

// Write inserts p at the cursor.
func (b *EditBuffer) Write(p []byte) (int, error) {
	b.Insert(string(p))
	return len(p), nil
}

// DeleteForward removes the code point under the cursor.
func (b *EditBuffer) DeleteForward() {
	if b.cursor >= len(b.buf) {
		return
	}
	_, size := utf8.DecodeRune(b.buf[b.cursor:])
	b.buf = append(b.buf[:b.cursor], b.buf[b.cursor+size:]...)
}

// Backspace removes the code point left of the cursor.
func (b *EditBuffer) Backspace() {
	if b.cursor <= 0 {
		return
	}
	_, size := utf8.DecodeLastRune(b.buf[:b.cursor])
	b.buf = append(b.buf[:b.cursor-size], b.buf[b.cursor:]...)
	b.cursor -= size
}

// Seek moves the cursor and returns the new offset. io.SeekStart and
// io.SeekEnd take byte offsets, io.SeekCurrent moves by code points.
// Out-of-range targets are clamped and snapped back to a code point start.
func (b *EditBuffer) Seek(offset int, whence int) int {
	switch whence {
	case io.SeekStart:
		b.cursor = b.snap(offset)
	case io.SeekEnd:
		b.cursor = b.snap(len(b.buf) + offset)
	case io.SeekCurrent:
		for ; offset > 0 && b.cursor < len(b.buf); offset-- {
			_, size := utf8.DecodeRune(b.buf[b.cursor:])
			b.cursor += size
		}
		for ; offset < 0 && b.cursor > 0; offset++ {
			_, size := utf8.DecodeLastRune(b.buf[:b.cursor])
			b.cursor -= size
		}
	}
	return b.cursor
}

func (b *EditBuffer) snap(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(b.buf) {
		return len(b.buf)
	}
	for pos > 0 && !utf8.RuneStart(b.buf[pos]) {
		pos--
	}
	return pos
}

// Prefix returns the text before the first '-' or '_', or the whole buffer.
func (b *EditBuffer) Prefix() string {
	text := string(b.buf)
	if idx := strings.IndexAny(text, "-_"); idx >= 0 {
		return text[:idx]
	}
	return text
}

// TrimPrefix returns the leading part of other that this buffer's prefix
// does not already cover: other shortened by len(Prefix()) bytes. It is empty
// when other is not longer than the prefix.
func (b *EditBuffer) TrimPrefix(other string) string {
	n := len(other) - len(b.Prefix())
	if n <= 0 {
		return ""
	}
	for n > 0 && n < len(other) && !utf8.RuneStart(other[n]) {
		n--
	}
	return other[:n]
}

// ApplyPrefix prepends TrimPrefix(other) and keeps the cursor on the same
// character it was on.
func (b *EditBuffer) ApplyPrefix(other string) {
	head := b.TrimPrefix(other)
	if head == "" {
		return
	}
	pos, before := b.cursor, len(b.buf)
	b.cursor = 0
	b.Insert(head)
	b.cursor = pos + len(b.buf) - before
}
