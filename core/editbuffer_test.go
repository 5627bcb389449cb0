package core

import (
	"io"
	"math/rand"
	"testing"
	"unicode/utf8"
)

func TestEditBufferInsertAtCursor(t *testing.T) {
	b := NewEditBuffer("abcde")
	b.Seek(-2, io.SeekCurrent)
	b.Insert("0")
	if b.String() != "abc0de" {
		t.Fatalf("expected abc0de, got %q", b.String())
	}
	if b.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", b.Cursor())
	}
	b.Insert("")
	if b.String() != "abc0de" || b.Cursor() != 4 {
		t.Fatalf("empty insert changed buffer: %q@%d", b.String(), b.Cursor())
	}
}

func TestEditBufferDeleteAtEndIsNoop(t *testing.T) {
	b := NewEditBuffer("abc")
	b.DeleteForward()
	if b.String() != "abc" {
		t.Fatalf("expected abc, got %q", b.String())
	}
	b.Seek(0, io.SeekStart)
	b.Backspace()
	if b.String() != "abc" || b.Cursor() != 0 {
		t.Fatalf("backspace at start changed buffer: %q@%d", b.String(), b.Cursor())
	}
	b.DeleteForward()
	if b.String() != "bc" || b.Cursor() != 0 {
		t.Fatalf("expected bc@0, got %q@%d", b.String(), b.Cursor())
	}
}

func TestEditBufferMultibyte(t *testing.T) {
	b := NewEditBuffer("aéb")
	b.Seek(-1, io.SeekCurrent)
	if b.Cursor() != 3 {
		t.Fatalf("expected cursor 3, got %d", b.Cursor())
	}
	b.Backspace()
	if b.String() != "ab" || b.Cursor() != 1 {
		t.Fatalf("expected ab@1, got %q@%d", b.String(), b.Cursor())
	}
	b = NewEditBuffer("aéb")
	if got := b.Seek(2, io.SeekStart); got != 1 {
		t.Fatalf("expected seek into rune to snap to 1, got %d", got)
	}
	b.DeleteForward()
	if b.String() != "ab" {
		t.Fatalf("expected ab, got %q", b.String())
	}
}

func TestEditBufferSeekClamps(t *testing.T) {
	b := NewEditBuffer("abc")
	if got := b.Seek(10, io.SeekStart); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := b.Seek(-10, io.SeekEnd); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := b.Seek(-5, io.SeekCurrent); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := b.Seek(7, io.SeekCurrent); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestEditBufferPrefix(t *testing.T) {
	cases := map[string]string{
		"ab_d":    "ab",
		"abcd":    "abcd",
		"12345-1": "12345",
		"-2":      "",
		"":        "",
	}
	for in, want := range cases {
		if got := NewEditBuffer(in).Prefix(); got != want {
			t.Fatalf("prefix(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestEditBufferApplyPrefix(t *testing.T) {
	b := NewEditBuffer("abcd-1")
	b.Seek(-3, io.SeekEnd)
	if b.Cursor() != 3 {
		t.Fatalf("expected cursor 3, got %d", b.Cursor())
	}
	b.ApplyPrefix("12345")
	if b.String() != "1abcd-1" {
		t.Fatalf("expected 1abcd-1, got %q", b.String())
	}
	if b.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", b.Cursor())
	}

	b.ApplyPrefix("789")
	if b.String() != "1abcd-1" || b.Cursor() != 4 {
		t.Fatalf("expected no-op, got %q@%d", b.String(), b.Cursor())
	}

	b.Seek(0, io.SeekEnd)
	b.ApplyPrefix("9xxxxx")
	if b.String() != "91abcd-1" {
		t.Fatalf("expected 91abcd-1, got %q", b.String())
	}
	if b.Cursor() != b.Len() {
		t.Fatalf("expected cursor at end, got %d", b.Cursor())
	}
}

func TestEditBufferApplyPrefixIdempotent(t *testing.T) {
	for _, tc := range []struct{ buf, other string }{
		{"abcd-1", "12345"},
		{"-2", "12345"},
		{"7_x", "10042"},
		{"", "abc"},
	} {
		once := NewEditBuffer(tc.buf)
		once.ApplyPrefix(tc.other)
		twice := NewEditBuffer(tc.buf)
		twice.ApplyPrefix(tc.other)
		twice.ApplyPrefix(tc.other)
		if once.String() != twice.String() || once.Cursor() != twice.Cursor() {
			t.Fatalf("apply twice %q/%q: %q@%d vs %q@%d", tc.buf, tc.other, once.String(), once.Cursor(), twice.String(), twice.Cursor())
		}
	}
}

func TestEditBufferTrimPrefix(t *testing.T) {
	b := NewEditBuffer("-2")
	if got := b.TrimPrefix("12345"); got != "12345" {
		t.Fatalf("expected full carry, got %q", got)
	}
	b = NewEditBuffer("abcdef")
	if got := b.TrimPrefix("123"); got != "" {
		t.Fatalf("expected empty for shorter other, got %q", got)
	}
	b = NewEditBuffer("abc-1")
	if got := b.TrimPrefix("éé"); got != "" {
		t.Fatalf("expected cut inside rune to back off, got %q", got)
	}
	b = NewEditBuffer("ab-1")
	if got := b.TrimPrefix("éé"); got != "é" {
		t.Fatalf("expected é, got %q", got)
	}
}

func TestEditBufferCursorInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pieces := []string{"a", "é", "世", "-", "_", "12", "🙂", "xy"}
	b := &EditBuffer{}
	for i := 0; i < 5000; i++ {
		switch rng.Intn(8) {
		case 0, 1:
			b.Insert(pieces[rng.Intn(len(pieces))])
		case 2:
			b.DeleteForward()
		case 3:
			b.Backspace()
		case 4:
			b.Seek(rng.Intn(20)-10, io.SeekCurrent)
		case 5:
			b.Seek(rng.Intn(30), io.SeekStart)
		case 6:
			b.Seek(-rng.Intn(30), io.SeekEnd)
		case 7:
			b.ApplyPrefix(pieces[rng.Intn(len(pieces))] + pieces[rng.Intn(len(pieces))])
		}
		c := b.Cursor()
		if c < 0 || c > b.Len() {
			t.Fatalf("step %d: cursor %d out of [0,%d]", i, c, b.Len())
		}
		if c < b.Len() && !utf8.RuneStart(b.buf[c]) {
			t.Fatalf("step %d: cursor %d inside a rune of %q", i, c, b.String())
		}
		if !utf8.Valid(b.buf) {
			t.Fatalf("step %d: invalid utf-8 %q", i, b.String())
		}
		if b.Len() > 200 {
			b = &EditBuffer{}
		}
	}
}

func TestEditBufferWriteInvalidUTF8(t *testing.T) {
	b := &EditBuffer{}
	n, err := b.Write([]byte{'a', 0xff, 'b'})
	if err != nil || n != 3 {
		t.Fatalf("unexpected write result %d %v", n, err)
	}
	if b.String() != "ab" {
		t.Fatalf("expected invalid byte dropped, got %q", b.String())
	}
}
