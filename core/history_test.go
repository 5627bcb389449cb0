package core

import (
	"reflect"
	"testing"
)

func submit(h *History, text string) []string {
	h.Current().Insert(text)
	return h.Submit()
}

func TestHistorySubmitAppendsFreshBuffer(t *testing.T) {
	h := NewHistory()
	for _, text := range []string{"10001", "10002", "10003"} {
		submit(h, text)
	}
	if h.Len() != 4 {
		t.Fatalf("expected 4 buffers, got %d", h.Len())
	}
	if h.Index() != 3 {
		t.Fatalf("expected current 3, got %d", h.Index())
	}
	if h.Current().Len() != 0 {
		t.Fatalf("expected fresh buffer, got %q", h.Current().String())
	}
}

func TestHistorySubmitSplitsTokens(t *testing.T) {
	h := NewHistory()
	got := submit(h, "  12345-A  S00012\t50-1234 ")
	want := []string{"12345-A", "S00012", "50-1234"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHistoryPrefixCarry(t *testing.T) {
	h := NewHistory()
	submit(h, "12345-1")
	prefix, ok := h.PreviousPrefix()
	if !ok || prefix != "12345" {
		t.Fatalf("expected previous prefix 12345, got %q %v", prefix, ok)
	}
	got := submit(h, "-2")
	if !reflect.DeepEqual(got, []string{"12345-2"}) {
		t.Fatalf("expected carried token, got %v", got)
	}
	got = submit(h, "78-1")
	if !reflect.DeepEqual(got, []string{"12378-1"}) {
		t.Fatalf("expected partial carry, got %v", got)
	}
}

func TestHistoryPreviousPrefixOnlyAtNewest(t *testing.T) {
	h := NewHistory()
	if _, ok := h.PreviousPrefix(); ok {
		t.Fatalf("expected no prefix on first buffer")
	}
	submit(h, "12345-1")
	submit(h, "-2")
	h.Switch(-1)
	if _, ok := h.PreviousPrefix(); ok {
		t.Fatalf("expected no prefix on a historical buffer")
	}
	got := h.Submit()
	if !reflect.DeepEqual(got, []string{"12345-2"}) {
		t.Fatalf("expected historical buffer resubmitted, got %v", got)
	}
	if h.Len() != 4 || h.Index() != 3 {
		t.Fatalf("expected 4 buffers at index 3, got %d at %d", h.Len(), h.Index())
	}
}

func TestHistorySwitchClamps(t *testing.T) {
	h := NewHistory()
	submit(h, "1")
	submit(h, "2")
	h.Switch(-10)
	if h.Index() != 0 {
		t.Fatalf("expected 0, got %d", h.Index())
	}
	h.Switch(10)
	if h.Index() != 2 {
		t.Fatalf("expected 2, got %d", h.Index())
	}
}

func TestHistoryCommandBuffer(t *testing.T) {
	h := NewHistory()
	submit(h, "1")
	submit(h, "2")
	h.Switch(-1)
	cmd := h.PushCommand()
	cmd.Insert(":c")
	if h.Len() != 4 || h.Current() != cmd {
		t.Fatalf("expected command buffer current, got len %d", h.Len())
	}
	h.DropCommand()
	if h.Len() != 3 {
		t.Fatalf("expected command buffer dropped, got len %d", h.Len())
	}
	if h.Index() != 1 {
		t.Fatalf("expected return to index 1, got %d", h.Index())
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory()
	for _, text := range []string{"1", "2", "3", "4"} {
		submit(h, text)
	}
	h.PushCommand().Insert(":r")
	h.DropCommand()
	h.Reset(DefaultHistoryKeep)
	if h.Len() != 3 {
		t.Fatalf("expected 3 buffers, got %d", h.Len())
	}
	if h.Index() != 0 {
		t.Fatalf("expected current 0, got %d", h.Index())
	}
	if h.Current().String() != "3" {
		t.Fatalf("expected oldest kept buffer 3, got %q", h.Current().String())
	}

	short := NewHistory()
	short.Reset(DefaultHistoryKeep)
	if short.Len() != 1 || short.Index() != 0 {
		t.Fatalf("expected short history untouched, got len %d idx %d", short.Len(), short.Index())
	}
}
