package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("console requires an interactive terminal")

// Terminal is the physical surface the console drives.
type Terminal interface {
	io.Reader
	io.Writer
	// MakeRaw switches to raw mode and returns the function restoring the
	// previous mode.
	MakeRaw() (restore func() error, err error)
	Size() (width, height int, err error)
}

// StdTerminal drives the process terminal through stdin and stdout.
type StdTerminal struct {
	in  *os.File
	out *os.File
}

// NewStdTerminal returns the process terminal, or ErrNotTerminal.
func NewStdTerminal() (*StdTerminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	return &StdTerminal{in: os.Stdin, out: os.Stdout}, nil
}

func (t *StdTerminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *StdTerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// MakeRaw puts stdin into raw mode.
func (t *StdTerminal) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	return func() error {
		return term.Restore(fd, state)
	}, nil
}

// Size returns the stdout window size.
func (t *StdTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}
