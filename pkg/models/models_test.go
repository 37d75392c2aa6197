package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// ── Parse errors ──

func TestParseErrorUnwrap(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want error
	}{
		{KindDocumentTooShort, ErrDocumentTooShort},
		{KindMissingSection, ErrMissingSection},
		{KindUpstreamFetchFailure, ErrUpstreamFetch},
	}
	for _, tt := range tests {
		var err error = &ParseError{Kind: tt.kind, Message: "x"}
		wrapped := fmt.Errorf("parse: %w", err)
		if !errors.Is(wrapped, tt.want) {
			t.Errorf("%s: errors.Is(%v) = false", tt.kind, tt.want)
		}
		var perr *ParseError
		if !errors.As(wrapped, &perr) || perr.Kind != tt.kind {
			t.Errorf("%s: errors.As failed", tt.kind)
		}
	}
	if (&ParseError{Kind: "Other"}).Unwrap() != nil {
		t.Error("unknown kind should not unwrap")
	}
}

func TestNewTooShortError(t *testing.T) {
	text := strings.Repeat("a", 40)
	err := NewTooShortError(FormS4, text, 1000, 10)
	if err.Kind != KindDocumentTooShort {
		t.Errorf("Kind: got %s", err.Kind)
	}
	if err.RawText != strings.Repeat("a", 10) {
		t.Errorf("RawText: got %q", err.RawText)
	}
	if want := "DocumentTooShort: S-4 document has 40 characters, need at least 1000"; err.Error() != want {
		t.Errorf("Error: got %q, want %q", err.Error(), want)
	}

	b, _ := json.Marshal(err)
	var m map[string]string
	if jerr := json.Unmarshal(b, &m); jerr != nil {
		t.Fatal(jerr)
	}
	if m["kind"] != "DocumentTooShort" || m["raw_text"] == "" || m["error"] == "" {
		t.Errorf("JSON shape: got %s", b)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, "hello"},
		{"héllo", 2, "h"}, // é is two bytes; never split a rune
		{"héllo", 3, "hé"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

// ── Record helpers ──

func TestFilingSummaryHasItem(t *testing.T) {
	f := FilingSummary{Items: []string{"1.01", "9.01"}}
	if !f.HasItem("1.01") || f.HasItem("2.01") {
		t.Errorf("HasItem: wrong result for %v", f.Items)
	}
}

func TestCriticalFlagsCount(t *testing.T) {
	if n := (CriticalFlags{}).Count(); n != 0 {
		t.Errorf("empty: got %d", n)
	}
	c := CriticalFlags{Bankruptcy: true, MaterialWeakness: true, CybersecurityIncident: true}
	if n := c.Count(); n != 3 {
		t.Errorf("Count: got %d, want 3", n)
	}
}

func TestDealStructureHasPayment(t *testing.T) {
	d := DealStructure{PaymentStructure: []PaymentType{PaymentCash, PaymentStock}}
	if !d.HasPayment(PaymentStock) || d.HasPayment(PaymentMixed) {
		t.Errorf("HasPayment: wrong result for %v", d.PaymentStructure)
	}
}

func TestS4RecordAuthorities(t *testing.T) {
	r := &S4Record{Regulatory: []RegulatoryApproval{
		{Authority: AuthorityFTC, Required: true},
		{Authority: AuthorityEC, Required: false},
		{Authority: AuthorityShareholders, Required: true},
	}}
	got := r.Authorities()
	if len(got) != 2 || got[0] != AuthorityFTC || got[1] != AuthorityShareholders {
		t.Errorf("Authorities: got %v", got)
	}
}

func TestMAProbabilitySignal(t *testing.T) {
	p := &MAProbability{Signals: []SignalReading{{Name: "board_meetings", Score: 60}}}
	s, ok := p.Signal("board_meetings")
	if !ok || s.Score != 60 {
		t.Errorf("Signal: got %+v, %v", s, ok)
	}
	if _, ok := p.Signal("missing"); ok {
		t.Error("missing signal should not be found")
	}
}
