package classify

import (
	"errors"
	"testing"

	"pkt.systems/sndbq/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		token string
		kind  schema.LookupKind
	}{
		{"12345-A", schema.LookupProgram},
		{"12345", schema.LookupProgram},
		{"1234567_2-b", schema.LookupProgram},
		{"123A-1", schema.LookupPart},
		{"1200123B-M1-2", schema.LookupPart},
		{"S00012", schema.LookupSheet},
		{"X12345-1", schema.LookupSheet},
		{"W54321_a", schema.LookupSheet},
		{"50-1234", schema.LookupMaterial},
		{"9-HPS50WT2-0125B", schema.LookupMaterial},
		{"50F1-0500", schema.LookupMaterial},
		{"1200123A01-00001", schema.LookupMaterial},
		{"1200123A01-00001C", schema.LookupMaterial},
	}
	for _, tc := range cases {
		req, err := Classify(tc.token)
		if err != nil {
			t.Fatalf("classify %q: %v", tc.token, err)
		}
		if req.Kind != tc.kind {
			t.Fatalf("classify %q: expected %s, got %s", tc.token, tc.kind, req.Kind)
		}
		if req.Identifier != tc.token {
			t.Fatalf("classify %q: identifier changed to %q", tc.token, req.Identifier)
		}
	}
}

func TestClassifyRejects(t *testing.T) {
	for _, token := range []string{"???", "", "1234", "S0001", "50-12", "abc-1", "12345 "} {
		_, err := Classify(token)
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("classify %q: expected *Error, got %v", token, err)
		}
		if cerr.Token != token {
			t.Fatalf("expected token %q in error, got %q", token, cerr.Token)
		}
	}
}

func TestClassifyErrorMessage(t *testing.T) {
	_, err := Classify("???")
	if err == nil || err.Error() != "No query pattern matched for value `???`" {
		t.Fatalf("unexpected error %v", err)
	}
}
