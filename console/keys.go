package console

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyDelete
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyUp
	keyDown
	keyEscape
	keyCtrlC
	keyPaste
)

type key struct {
	kind keyKind
	r    rune
	text string
}

var pasteEnd = []byte("\x1b[201~")

// keySender delivers decoded keys until done is closed.
type keySender struct {
	ch      chan<- key
	done    <-chan struct{}
	stopped bool
}

func (s *keySender) send(k key) {
	if s.stopped {
		return
	}
	select {
	case s.ch <- k:
	case <-s.done:
		s.stopped = true
	}
}

// readKeys decodes terminal input into keys until r fails or done is closed.
// Control and Alt combinations other than Ctrl-C are swallowed here.
func readKeys(r io.Reader, ch chan<- key, done <-chan struct{}) {
	defer close(ch)
	out := &keySender{ch: ch, done: done}
	br := bufio.NewReader(r)
	lastWasCR := false
	for !out.stopped {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		if lastWasCR {
			lastWasCR = false
			if b == '\n' {
				continue
			}
		}
		switch b {
		case 0x1b:
			if br.Buffered() == 0 {
				out.send(key{kind: keyEscape})
				continue
			}
			readEscape(br, out)
		case '\r':
			out.send(key{kind: keyEnter})
			lastWasCR = true
		case '\n':
			out.send(key{kind: keyEnter})
		case 0x7f, 0x08:
			out.send(key{kind: keyBackspace})
		case 0x03:
			out.send(key{kind: keyCtrlC})
		default:
			if b < 0x20 {
				continue
			}
			if b < utf8.RuneSelf {
				out.send(key{kind: keyRune, r: rune(b)})
				continue
			}
			_ = br.UnreadByte()
			rn, _, err := br.ReadRune()
			if err != nil {
				return
			}
			if rn == utf8.RuneError {
				continue
			}
			out.send(key{kind: keyRune, r: rn})
		}
	}
}

func readEscape(br *bufio.Reader, out *keySender) {
	b, err := br.ReadByte()
	if err != nil {
		return
	}
	switch b {
	case '[':
		readCSI(br, out)
	case 'O':
		readSS3(br, out)
	case 0x1b:
		out.send(key{kind: keyEscape})
		_ = br.UnreadByte()
	}
}

func readCSI(br *bufio.Reader, out *keySender) {
	seq := []byte{}
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		seq = append(seq, b)
		if b == '~' || unicode.IsLetter(rune(b)) {
			break
		}
		if len(seq) > 8 {
			return
		}
	}
	switch string(seq) {
	case "A":
		out.send(key{kind: keyUp})
	case "B":
		out.send(key{kind: keyDown})
	case "C":
		out.send(key{kind: keyRight})
	case "D":
		out.send(key{kind: keyLeft})
	case "H", "1~", "7~":
		out.send(key{kind: keyHome})
	case "F", "4~", "8~":
		out.send(key{kind: keyEnd})
	case "3~":
		out.send(key{kind: keyDelete})
	case "200~":
		text, ok := readPaste(br)
		if !ok {
			return
		}
		out.send(key{kind: keyPaste, text: text})
	}
}

func readSS3(br *bufio.Reader, out *keySender) {
	b, err := br.ReadByte()
	if err != nil {
		return
	}
	switch b {
	case 'A':
		out.send(key{kind: keyUp})
	case 'B':
		out.send(key{kind: keyDown})
	case 'C':
		out.send(key{kind: keyRight})
	case 'D':
		out.send(key{kind: keyLeft})
	case 'H':
		out.send(key{kind: keyHome})
	case 'F':
		out.send(key{kind: keyEnd})
	}
}

// readPaste collects a bracketed paste body up to the closing marker.
func readPaste(br *bufio.Reader) (string, bool) {
	var body []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", false
		}
		body = append(body, b)
		if bytes.HasSuffix(body, pasteEnd) {
			return sanitizePaste(string(body[:len(body)-len(pasteEnd)])), true
		}
	}
}

// sanitizePaste turns line breaks and tabs into spaces and drops other
// control characters.
func sanitizePaste(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, text)
}
