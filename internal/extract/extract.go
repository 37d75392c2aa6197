// Package extract provides the regex primitives every filing parser is built on:
// single and multi-match capture, money normalization, declarative field rules
// and 8-K item segmentation.
package extract

import (
	"regexp"
	"strings"
)

// Pattern returns the first capture group of re's first match in text,
// trimmed. If re has no capture group the whole match is used. def is
// returned when there is no match.
func Pattern(text string, re *regexp.Regexp, def string) string {
	if v, ok := PatternOK(text, re); ok {
		return v
	}
	return def
}

// PatternOK is Pattern with an explicit found flag.
func PatternOK(text string, re *regexp.Regexp) (string, bool) {
	if re == nil || text == "" {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(group(m)), true
}

// AllPatterns returns the first capture group of every match of re, in
// order of appearance. Duplicates are kept; see Unique.
func AllPatterns(text string, re *regexp.Regexp) []string {
	if re == nil || text == "" {
		return nil
	}
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(group(m)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Unique removes duplicates from in, keeping the first occurrence.
// Comparison is case-insensitive.
func Unique(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// Any reports whether any of the expressions matches text.
func Any(text string, res ...*regexp.Regexp) bool {
	for _, re := range res {
		if re != nil && re.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// CollapseSpace replaces runs of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Summary returns the first n bytes of s with whitespace collapsed.
func Summary(s string, n int) string {
	s = CollapseSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "..."
}

func group(m []string) string {
	if len(m) > 1 {
		for _, g := range m[1:] {
			if g != "" {
				return g
			}
		}
		return ""
	}
	return m[0]
}
