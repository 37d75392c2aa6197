package extract

import (
	"regexp"
	"strings"
	"testing"
)

// ── Pattern / AllPatterns ──

func TestPattern(t *testing.T) {
	re := regexp.MustCompile(`(?i)dated as of\s+` + DateExpr)
	tests := []struct {
		name string
		text string
		def  string
		want string
	}{
		{"match", "Agreement dated as of March 3, 2024 between", "", "March 3, 2024"},
		{"no match returns default", "no date here", "n/a", "n/a"},
		{"empty text", "", "x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pattern(tt.text, re, tt.def); got != tt.want {
				t.Errorf("Pattern: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPatternNilRegexp(t *testing.T) {
	if got := Pattern("anything", nil, "d"); got != "d" {
		t.Errorf("Pattern(nil): got %q, want %q", got, "d")
	}
}

func TestPatternWholeMatchWithoutGroup(t *testing.T) {
	re := regexp.MustCompile(`HSR Act`)
	if got := Pattern("under the HSR Act of 1976", re, ""); got != "HSR Act" {
		t.Errorf("Pattern: got %q, want %q", got, "HSR Act")
	}
}

func TestAllPatternsKeepsDuplicates(t *testing.T) {
	re := regexp.MustCompile(`Exhibit\s+(\d+\.\d+)`)
	text := "Exhibit 2.1 ... Exhibit 99.1 ... Exhibit 2.1"
	got := AllPatterns(text, re)
	want := []string{"2.1", "99.1", "2.1"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("AllPatterns: got %v, want %v", got, want)
	}
	if u := Unique(got); len(u) != 2 || u[0] != "2.1" || u[1] != "99.1" {
		t.Errorf("Unique: got %v", u)
	}
}

// ── Money normalization ──

func TestMoneyNormalization(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"aggregate consideration of approximately $1,500 million", 1500},
		{"a purchase price of $2.5 billion in cash", 2500},
		{"$ 750 million", 750},
		{"$12,345.5 Million", 12345.5},
		{"$1,000 billion", 1000000},
	}
	for _, tt := range tests {
		m := MoneyOf(tt.text)
		if m == nil {
			t.Fatalf("MoneyOf(%q): got nil", tt.text)
		}
		if m.Value != tt.want {
			t.Errorf("MoneyOf(%q): got %v, want %v", tt.text, m.Value, tt.want)
		}
		if m.Currency != "USD" {
			t.Errorf("Currency: got %q, want USD", m.Currency)
		}
	}
}

func TestMoneyWithoutUnit(t *testing.T) {
	if m := MoneyOf("a fee of $500 payable"); m != nil {
		t.Errorf("MoneyOf without unit: got %+v, want nil", m)
	}
}

func TestParseMoney(t *testing.T) {
	if v, ok := ParseMoney("1,500", "million"); !ok || v != 1500 {
		t.Errorf("ParseMoney million: got %v %v", v, ok)
	}
	if v, ok := ParseMoney("0.1", "billion"); !ok || v != 100 {
		t.Errorf("ParseMoney billion: got %v %v", v, ok)
	}
	if _, ok := ParseMoney("abc", "million"); ok {
		t.Error("ParseMoney: expected failure on bad number")
	}
	if _, ok := ParseMoney("10", "thousand"); ok {
		t.Error("ParseMoney: expected failure on unknown unit")
	}
}

// ── Rules ──

func TestRuleFirstPatternWins(t *testing.T) {
	r := NewRule("deal_value", KindMoney,
		`aggregate consideration[^$]{0,80}`+MoneyExpr,
		`purchase price[^$]{0,80}`+MoneyExpr,
	)
	text := "The purchase price of $900 million. The aggregate consideration of approximately $1,500 million."
	m := r.Money(text)
	if m == nil || m.Value != 1500 {
		t.Fatalf("Rule.Money: got %+v, want 1500", m)
	}
	if got := (Rule{}).Money(text); got != nil {
		t.Errorf("empty rule: got %+v, want nil", got)
	}
}

func TestRuleNumberAndFlag(t *testing.T) {
	premium := NewRule("premium", KindPercent, `premium of (?:approximately )?`+PercentExpr)
	if p := premium.Number("represents a premium of approximately 32.5% over"); p == nil || *p != 32.5 {
		t.Errorf("premium: got %v, want 32.5", p)
	}
	if p := premium.Number("no premium"); p != nil {
		t.Errorf("premium absent: got %v, want nil", *p)
	}
	goShop := NewRule("go_shop", KindFlag, `go[- ]shop`)
	if !goShop.Flag("a 45-day Go-Shop period") {
		t.Error("go_shop flag: expected true")
	}
}

func TestRulesGetAndFlags(t *testing.T) {
	rs := Rules{
		NewRule("a", KindFlag, `alpha`),
		NewRule("b", KindFlag, `beta`),
		NewRule("c", KindText, `gamma (\w+)`),
	}
	flags := rs.Flags("alpha only")
	if !flags["a"] || flags["b"] {
		t.Errorf("Flags: got %v", flags)
	}
	if _, ok := flags["c"]; ok {
		t.Error("Flags should skip non-flag rules")
	}
	if got := rs.Get("c").Text("gamma ray"); got != "ray" {
		t.Errorf("Get(c).Text: got %q, want %q", got, "ray")
	}
	if rs.Get("missing").Flag("alpha") {
		t.Error("missing rule should never match")
	}
}

func TestSummary(t *testing.T) {
	if got := Summary("a  b\n\nc", 100); got != "a b c" {
		t.Errorf("Summary: got %q", got)
	}
	if got := Summary(strings.Repeat("x", 20), 10); got != strings.Repeat("x", 10)+"..." {
		t.Errorf("Summary truncated: got %q", got)
	}
}
