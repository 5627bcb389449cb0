package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"pkt.systems/sndbq/internal/format"
	"pkt.systems/sndbq/schema"
)

func testProgram(name string, kind schema.StatusKind) schema.Program {
	return schema.Program{
		Name: name,
		State: schema.ProgramState{
			Kind:      kind,
			Timestamp: time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
			Operator:  "jdoe",
		},
		Sheet: schema.Sheet{Name: "S00012", MaterialMaster: "50-1234", HeatNumber: "H1", PONumber: "PO9"},
	}
}

func TestRendererResultClearsNotice(t *testing.T) {
	r := NewRenderer("", &fakeClipboard{}, nil)
	r.Apply(schema.MessageUpdate("Program `1` not found"))
	r.Apply(schema.ResultUpdate(testProgram("12345-A", schema.StatusActive)))
	if r.Rows() != 1 {
		t.Fatalf("expected 1 row, got %d", r.Rows())
	}
	if notice, _ := r.Notice(); notice != "" {
		t.Fatalf("expected notice cleared, got %q", notice)
	}
}

func TestRendererClearKeepsHeader(t *testing.T) {
	r := NewRenderer("", &fakeClipboard{}, nil)
	r.Apply(schema.ResultUpdate(testProgram("12345-A", schema.StatusActive)))
	r.Apply(schema.ResultUpdate(testProgram("12345-B", schema.StatusDeleted)))
	r.Apply(schema.Update{Type: schema.UpdateClearTable})
	if r.Rows() != 0 {
		t.Fatalf("expected no rows, got %d", r.Rows())
	}
	plain := r.PlainTable()
	for _, column := range format.Header {
		if !strings.Contains(plain, column) {
			t.Fatalf("expected header %q in %q", column, plain)
		}
	}
	if strings.Contains(plain, "12345-A") {
		t.Fatalf("expected rows removed, got %q", plain)
	}
	notice, ok := r.Notice()
	if notice != "table cleared" || !ok {
		t.Fatalf("expected ok notice, got %q ok=%v", notice, ok)
	}
}

func TestRendererCopyTable(t *testing.T) {
	clip := &fakeClipboard{}
	r := NewRenderer("gruvbox", clip, nil)
	r.Apply(schema.ResultUpdate(testProgram("12345-A", schema.StatusUpdated)))
	r.Apply(schema.Update{Type: schema.UpdateCopyTable})
	if !strings.Contains(clip.text, "12345-A") || !strings.Contains(clip.text, "jdoe") {
		t.Fatalf("expected table on clipboard, got %q", clip.text)
	}
	if clip.text != ansi.Strip(clip.text) {
		t.Fatalf("expected clipboard text without styling")
	}
	notice, ok := r.Notice()
	if notice != "table written to clipboard" || !ok {
		t.Fatalf("unexpected notice %q ok=%v", notice, ok)
	}
}

func TestRendererCopyTableFailure(t *testing.T) {
	r := NewRenderer("", &fakeClipboard{err: errors.New("no display")}, nil)
	r.Apply(schema.Update{Type: schema.UpdateCopyTable})
	notice, ok := r.Notice()
	if notice != "failed to write table to clipboard" || ok {
		t.Fatalf("unexpected notice %q ok=%v", notice, ok)
	}
}

func TestRendererMessageStyles(t *testing.T) {
	r := NewRenderer("", &fakeClipboard{}, nil)
	r.Apply(schema.NoticeUpdate("done"))
	if _, ok := r.Notice(); !ok {
		t.Fatalf("expected ok notice")
	}
	r.Apply(schema.MessageUpdate("Failed to get database result"))
	if notice, ok := r.Notice(); ok || notice != "Failed to get database result" {
		t.Fatalf("expected error notice, got %q ok=%v", notice, ok)
	}
	r.Apply(schema.Update{Type: schema.UpdateRedraw})
	if notice, _ := r.Notice(); notice != "Failed to get database result" {
		t.Fatalf("redraw must not change the notice")
	}
}
