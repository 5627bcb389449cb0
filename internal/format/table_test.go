package format

import (
	"reflect"
	"testing"
	"time"

	"pkt.systems/sndbq/schema"
)

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	if got := Timestamp(ts); got != " 5.Mar.2024  9:07 am" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	ts = time.Date(2024, time.November, 15, 14, 30, 0, 0, time.UTC)
	if got := Timestamp(ts); got != "15.Nov.2024 14:30 pm" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if got := Timestamp(time.Time{}); got != "" {
		t.Fatalf("expected empty zero timestamp, got %q", got)
	}
}

func TestRowUpdated(t *testing.T) {
	ts := time.Date(2024, time.November, 15, 14, 30, 0, 0, time.UTC)
	got := Row(schema.Program{
		Name:  "12345-A",
		State: schema.ProgramState{Kind: schema.StatusUpdated, Timestamp: ts, Operator: "jdoe"},
		Sheet: schema.Sheet{Name: "S00012", MaterialMaster: "50-1234", HeatNumber: "H1", PONumber: "4500012345"},
	})
	want := []string{"12345-A", "Updated", "15.Nov.2024 14:30 pm", "50-1234", "H1", "4500012345", "S00012", "jdoe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(got) != len(Header) {
		t.Fatalf("row width %d does not match header %d", len(got), len(Header))
	}
}

func TestRowActiveBlanksAuditCells(t *testing.T) {
	got := Row(schema.Program{
		Name:  "12345-A",
		State: schema.ProgramState{Kind: schema.StatusActive, Operator: "ignored"},
		Sheet: schema.Sheet{Name: "S00012", MaterialMaster: "50-1234", HeatNumber: "H1"},
	})
	if got[StatusColumn] != "Active" {
		t.Fatalf("expected status cell, got %q", got[StatusColumn])
	}
	if got[4] != "" || got[5] != "" || got[7] != "" {
		t.Fatalf("expected blank heat/po/operator, got %v", got)
	}
}
