package extract

import (
	"regexp"
	"strings"

	"github.com/seenimoa/alphavault/pkg/models"
)

// Kind is how a rule's capture is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindMoney
	KindPercent
	KindNumber
	KindDate
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMoney:
		return "money"
	case KindPercent:
		return "percent"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindFlag:
		return "flag"
	}
	return "unknown"
}

// Rule is a named field with candidate patterns tried in order; the first
// pattern that matches wins.
type Rule struct {
	Field    string
	Kind     Kind
	Patterns []*regexp.Regexp
}

// NewRule compiles exprs into a Rule. Expressions are case-insensitive.
// It panics on a bad expression, so rules belong in package-level tables.
func NewRule(field string, kind Kind, exprs ...string) Rule {
	r := Rule{Field: field, Kind: kind}
	for _, e := range exprs {
		r.Patterns = append(r.Patterns, regexp.MustCompile(`(?i)`+e))
	}
	return r
}

// Text returns the first capture of the first matching pattern, or "".
func (r Rule) Text(text string) string {
	for _, re := range r.Patterns {
		if v, ok := PatternOK(text, re); ok && v != "" {
			return CollapseSpace(strings.Trim(v, " ,;:\"“”"))
		}
	}
	return ""
}

// Money returns the first dollar amount matched by the rule, or nil.
func (r Rule) Money(text string) *models.Money {
	for _, re := range r.Patterns {
		if m := MoneyWith(text, re); m != nil {
			return m
		}
	}
	return nil
}

// Number returns the first numeric capture as a float, or nil. Percent
// rules return the percentage value (25% → 25).
func (r Rule) Number(text string) *float64 {
	for _, re := range r.Patterns {
		v, ok := PatternOK(text, re)
		if !ok {
			continue
		}
		if f, ok := ParseNumber(v); ok {
			return &f
		}
	}
	return nil
}

// Date returns the first captured long-form date, or "".
func (r Rule) Date(text string) string {
	return r.Text(text)
}

// Flag reports whether any pattern matches.
func (r Rule) Flag(text string) bool {
	return Any(text, r.Patterns...)
}

// Rules is a table of field rules.
type Rules []Rule

// Get returns the rule for field. The zero Rule matches nothing.
func (rs Rules) Get(field string) Rule {
	for _, r := range rs {
		if r.Field == field {
			return r
		}
	}
	return Rule{Field: field}
}

// Flags evaluates every KindFlag rule and returns the matched fields.
func (rs Rules) Flags(text string) map[string]bool {
	out := make(map[string]bool, len(rs))
	for _, r := range rs {
		if r.Kind == KindFlag {
			out[r.Field] = r.Flag(text)
		}
	}
	return out
}
