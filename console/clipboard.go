package console

import "github.com/atotto/clipboard"

// Clipboard receives the plain-text table on :print.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardSupported reports whether a clipboard backend was found.
func ClipboardSupported() bool {
	return !clipboard.Unsupported
}
