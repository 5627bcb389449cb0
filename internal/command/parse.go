// Package command parses the ':'-prefixed commands typed into the console.
package command

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Name is a canonical console command.
type Name string

const (
	// Clear removes every row from the result table.
	Clear Name = "clear"
	// Reset trims the input history back to its newest buffers.
	Reset Name = "reset"
	// Print copies the result table to the clipboard.
	Print Name = "print"
)

var aliases = map[string]Name{
	"c":     Clear,
	"clear": Clear,
	"r":     Reset,
	"reset": Reset,
	"p":     Print,
	"print": Print,
}

var names = []string{string(Clear), string(Reset), string(Print)}

// Command represents a parsed console command.
type Command struct {
	Name Name
	Raw  string
}

// Parse parses a line and returns a Command if it starts with ":".
// Name is empty unless the text after ':' is exactly a known command; only
// whitespace around the whole line is ignored.
func Parse(input string) (Command, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, ":") {
		return Command{}, false
	}
	raw := strings.ToLower(trimmed[1:])
	return Command{Name: aliases[raw], Raw: raw}, true
}

// Suggest returns the known command closest to raw, if any scores.
func Suggest(raw string) (Name, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	matches := fuzzy.Find(raw, names)
	if len(matches) == 0 {
		return "", false
	}
	return Name(matches[0].Str), true
}
